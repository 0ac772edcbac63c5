// internal/revision/log.go
package revision

import (
	"sync"
	"time"

	"github.com/bethropolis/cutout/internal/logger"
)

const DefaultMaxRecords = 100

// Log is the append-only, session-scoped revision history. The cursor marks
// the boundary between undoable records (before it) and redoable records
// (after it). The log never applies anything itself; callers take the record
// returned by Undo/Redo and revert or reapply it against the store.
type Log struct {
	mu         sync.Mutex
	records    []*Record
	cursor     int // Index of the next record to Redo
	maxRecords int
	seq        uint64
}

// NewLog creates a revision log bounded to maxRecords entries.
func NewLog(maxRecords int) *Log {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Log{
		records:    make([]*Record, 0, maxRecords),
		cursor:     0,
		maxRecords: maxRecords,
	}
}

// Record appends rec at the cursor, discarding any redoable tail. The log
// assigns the order key and timestamp.
func (l *Log) Record(rec *Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor < len(l.records) {
		l.records = l.records[:l.cursor]
	}

	l.seq++
	rec.Seq = l.seq
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	l.records = append(l.records, rec)

	// FIFO eviction keeps the session history bounded.
	if len(l.records) > l.maxRecords {
		l.records = l.records[len(l.records)-l.maxRecords:]
	}
	l.cursor = len(l.records)

	logger.Debugf("Revision: Recorded %v on frame %d. Cursor: %d, Count: %d",
		rec.Kind, rec.Frame, l.cursor, len(l.records))
}

// Undo moves the cursor back one record and returns the record the caller
// must reverse-apply. Returns nil at the start of the log; that is a
// "nothing to do" signal, not an error.
func (l *Log) Undo() *Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor <= 0 {
		logger.Debugf("Revision: Nothing to undo.")
		return nil
	}
	l.cursor--
	rec := l.records[l.cursor]
	logger.Debugf("Revision: Undo %v (seq %d). Cursor: %d", rec.Kind, rec.Seq, l.cursor)
	return rec
}

// Redo moves the cursor forward one record and returns the record the caller
// must reapply. Returns nil at the end of the log.
func (l *Log) Redo() *Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor >= len(l.records) {
		logger.Debugf("Revision: Nothing to redo. Cursor: %d, Count: %d", l.cursor, len(l.records))
		return nil
	}
	rec := l.records[l.cursor]
	l.cursor++
	logger.Debugf("Revision: Redo %v (seq %d). Cursor: %d", rec.Kind, rec.Seq, l.cursor)
	return rec
}

// Reset discards all records and rewinds the cursor. Called on a confirmed
// clear-all; the sequence counter keeps counting so order keys stay unique
// across the session.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
	l.cursor = 0
	logger.Debugf("Revision: Log reset.")
}

// CanUndo returns true if there are records that can be undone.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor > 0
}

// CanRedo returns true if there are records that can be redone.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor < len(l.records)
}

// Len returns the number of records currently held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Cursor returns the current cursor position.
func (l *Log) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}
