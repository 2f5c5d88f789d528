// Package manifest records a run's outcomes in a SQLite database written into
// the run folder as _transcription.db.
//
// Each run gets a fresh database. Outcomes are inserted as files finish so a
// crashed run still leaves a partial manifest behind.
package manifest
