// Package watcher keeps an input folder under fsnotify observation and runs a
// batch whenever new media files have settled.
//
// Each batch only selects files not yet handled during the current watch
// session. Runs never overlap: events arriving during a run re-arm the settle
// timer and are picked up by the next batch.
package watcher
