// Package history keeps the ordered log of completed calculations.
package history

import "strings"

// Entry is a completed calculation, e.g. {"3 * 4 = 12", "14:02:09"}.
type Entry struct {
	Expression string `json:"expression"`
	Timestamp  string `json:"timestamp"`
}

// Saver persists the full log. It is called after every mutation.
type Saver interface {
	SaveHistory([]Entry) error
}

// Log is an append-only list of entries, oldest first.
type Log struct {
	entries []Entry
	saver   Saver
}

// NewLog creates a log holding the given entries. saver may be nil.
func NewLog(saver Saver, entries []Entry) *Log {
	return &Log{
		entries: append([]Entry(nil), entries...),
		saver:   saver,
	}
}

// Append adds e at the end of the log and saves it.
func (l *Log) Append(e Entry) error {
	l.entries = append(l.entries, e)
	return l.save()
}

// Clear removes all entries and saves the empty log.
func (l *Log) Clear() error {
	l.entries = nil
	return l.save()
}

func (l *Log) save() error {
	if l.saver == nil {
		return nil
	}
	return l.saver.SaveHistory(l.Entries())
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	return append([]Entry{}, l.entries...)
}

// Recent returns a copy of the log, newest first.
func (l *Log) Recent() []Entry {
	r := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		r[len(r)-1-i] = e
	}
	return r
}

// separator joins the committed label and the result in stored entries.
const separator = " = "

// Split breaks stored entry text into the committed label and the
// expression. "3 * 4 = 12" yields ("3 * 4 =", "12"). Text without a
// separator is returned as the expression.
func Split(text string) (label, expr string) {
	i := strings.Index(text, separator)
	if i < 0 {
		return "", text
	}
	return text[:i+len(" =")], text[i+len(separator):]
}
