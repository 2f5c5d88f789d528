// Package preflight provides readiness checks for the external tools and
// filesystem paths whisperbatch depends on.
//
// The CLI "whisperbatch deps" command prints CheckSystemDeps and RunAll, and
// the batch runner calls CheckSystemDeps before a run so a missing ffmpeg or
// uvx is reported once instead of failing every file.
package preflight
