// Package status defines the narrow callback contracts through which camera
// operations report progress: a status sink receiving (message, severity)
// pairs and an output sink receiving raw gphoto2 text.
package status

import "sync"

// Severity classifies a status message.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Success
)

// String returns the color name the severity is displayed with.
func (s Severity) String() string {
	switch s {
	case Info:
		return "blue"
	case Warning:
		return "orange"
	case Error:
		return "red"
	case Success:
		return "green"
	default:
		return "unknown"
	}
}

// Func receives status messages. A nil Func discards them.
type Func func(message string, sev Severity)

// Report calls f if it is non-nil.
func (f Func) Report(message string, sev Severity) {
	if f != nil {
		f(message, sev)
	}
}

// Output receives raw text chunks from gphoto2. An empty chunk means
// "clear the display". A nil Output discards everything.
type Output func(chunk string)

// Write calls o if it is non-nil.
func (o Output) Write(chunk string) {
	if o != nil {
		o(chunk)
	}
}

// Clear asks the display to clear itself.
func (o Output) Clear() {
	o.Write("")
}

// Entry is one recorded status message.
type Entry struct {
	Message  string
	Severity Severity
}

// Recorder is a status sink that keeps every message it receives. It is
// safe for use from multiple goroutines. Next, when set, is called after
// recording so a Recorder can sit in front of another sink.
type Recorder struct {
	Next Func

	mu      sync.Mutex
	entries []Entry
}

// Func returns the recorder as a status sink.
func (r *Recorder) Func() Func {
	return func(message string, sev Severity) {
		r.mu.Lock()
		r.entries = append(r.entries, Entry{Message: message, Severity: sev})
		r.mu.Unlock()
		r.Next.Report(message, sev)
	}
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns the most recent entry; ok is false if nothing was recorded.
func (r *Recorder) Last() (entry Entry, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Reset forgets all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
