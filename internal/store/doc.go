// Package store persists enumeration runs in SQLite.
//
// A run records which shape was enumerated (by digest), the cardinality
// declared at creation, and the values emitted so far, each stamped with
// its 0-based position in the sequence. Enumeration order is deterministic
// and restartable, so a partial run can be resumed later: a fresh
// enumerator replays from the start and skips the persisted prefix with
// forward pulls. There is no random access into a sequence.
//
// Positions are logical sequence numbers, never wall-clock timestamps;
// reads order by seq so a dumped run reads back exactly as it was
// enumerated.
//
// The database runs in WAL mode with a single writer connection, matching
// the strictly sequential enumeration model.
package store
