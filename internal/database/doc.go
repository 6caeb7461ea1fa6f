// Package database provides the SQLite-based local submission journal.
//
// The JournalDB records every submission that received a verdict from this
// machine: its kind, a content preview, the screenshot digest, the verdict,
// and the time it was received. It is an audit of what the operator sent,
// not a cache of backend data; history and stats are always read from the
// backend.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the journal
// is a single local file and the CGO-free driver keeps cross-compilation
// easy. WAL mode lets the journal command read while a watch console writes.
package database
