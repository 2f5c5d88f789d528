// Package inventory discovers eligible media files in an input folder and
// measures their duration.
//
// Scan returns files in directory listing order, which becomes processing
// order. ProbeDuration never fails past its boundary: probe errors are carried
// inside DurationInfo so the batch runner can record them per file.
package inventory
