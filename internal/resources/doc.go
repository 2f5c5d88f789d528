// Package resources probes host memory and GPU availability and maps them to a
// model tier. Probes never fail; an unreadable facility reports the
// conservative value.
package resources
