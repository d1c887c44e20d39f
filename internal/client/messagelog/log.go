// Package messagelog holds the chat transcript: an append-only, ordered
// sequence of timestamped entries.
package messagelog

import (
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind tags where an entry came from
type Kind int

const (
	KindSystem Kind = iota
	KindReceived
	KindSent
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindReceived:
		return "received"
	case KindSent:
		return "sent"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// TimeFormat is the layout of Entry.Timestamp
const TimeFormat = "15:04:05"

// Entry is one line of the transcript. Entries are values; the log never
// hands out a reference into its own storage.
type Entry struct {
	ID        string
	Text      string
	Kind      Kind
	Timestamp string
	At        time.Time
}

// Log is the transcript. It is safe for concurrent use.
type Log struct {
	entries []Entry
	now     func() time.Time
	mu      sync.RWMutex
}

// Option configures a Log
type Option func(*Log)

// WithClock overrides the clock used to stamp entries
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// New creates an empty log
func New(opts ...Option) *Log {
	l := &Log{
		entries: []Entry{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append stamps a new entry and adds it to the end of the log
func (l *Log) Append(text string, kind Kind) Entry {
	id := uuid.NewString()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Stamp under the lock so append order and time order agree
	at := l.now()
	entry := Entry{
		ID:        id,
		Text:      text,
		Kind:      kind,
		Timestamp: at.Format(TimeFormat),
		At:        at,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of the full sequence in append order
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// All iterates the sequence in append order. Each call starts from the
// beginning and sees the entries present when it started.
func (l *Log) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		l.mu.RLock()
		snapshot := l.entries[:len(l.entries):len(l.entries)]
		l.mu.RUnlock()

		for i, e := range snapshot {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
