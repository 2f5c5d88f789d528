package main

// appVersion tags the console banner and every run report.
const appVersion = "v24"
