package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// writerIsTTY reports whether w is a terminal. Writers without an Fd method,
// such as *bytes.Buffer, are never terminals.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ShotBar tracks a time-lapse run.
// Example: [============>           ]  4/10 shots  20261017_143005.jpg
type ShotBar struct {
	total  int
	shot   int
	label  string
	width  int
	mu     sync.Mutex
	writer io.Writer
}

// NewShotBar creates a bar for total shots.
func NewShotBar(total int) *ShotBar {
	return &ShotBar{
		total:  total,
		width:  30,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer.
func (b *ShotBar) SetWriter(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writer = w
}

// Shot records that shot (1-based) finished and redraws. label is shown
// next to the counter, typically the saved file name.
func (b *ShotBar) Shot(shot int, label string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if shot > b.total {
		shot = b.total
	}
	b.shot = shot
	b.label = label
	b.render()
}

// Done ends the bar. On a terminal the cursor moves past the bar line.
func (b *ShotBar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if writerIsTTY(b.writer) {
		fmt.Fprintln(b.writer)
	}
}

// render draws the bar; b.mu must be held. Off a terminal every shot gets
// its own line since shots are seconds apart.
func (b *ShotBar) render() {
	counter := fmt.Sprintf("%*d/%d shots", len(fmt.Sprint(b.total)), b.shot, b.total)

	if !writerIsTTY(b.writer) {
		fmt.Fprintf(b.writer, "%s  %s\n", counter, b.label)
		return
	}

	filled := 0
	if b.total > 0 {
		filled = b.shot * b.width / b.total
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < b.width; i++ {
		switch {
		case i < filled-1:
			sb.WriteByte('=')
		case i == filled-1:
			sb.WriteByte('>')
		default:
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte(']')

	fmt.Fprintf(b.writer, "\r\033[K%s %s  %s", sb.String(), counter, b.label)
}

// Spinner shows an operation is running, with the elapsed time.
// Example: /  Capturing (4s)
type Spinner struct {
	message string
	running bool
	frames  []string
	mu      sync.Mutex
	writer  io.Writer
	ticker  *time.Ticker
	done    chan struct{}
	started time.Time
	elapsed bool
}

// NewSpinner creates a stopped spinner.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		frames:  []string{"|", "/", "-", "\\"},
		writer:  os.Stderr,
		done:    make(chan struct{}),
	}
}

// ShowElapsed adds the running time to the message. Call before Start.
func (s *Spinner) ShowElapsed() *Spinner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elapsed = true
	return s
}

// SetWriter sets the output writer.
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// Start begins the animation. Off a terminal the message is printed once
// and nothing animates.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.started = time.Now()

	if !writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "%s\n", s.message)
		return
	}

	s.ticker = time.NewTicker(100 * time.Millisecond)
	go s.spin()
}

func (s *Spinner) spin() {
	frame := 0
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			fmt.Fprintf(s.writer, "\r\033[K%s  %s", s.frames[frame], s.line())
			frame = (frame + 1) % len(s.frames)
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// line returns the message with the elapsed time; s.mu must be held.
func (s *Spinner) line() string {
	if !s.elapsed {
		return s.message
	}
	return fmt.Sprintf("%s (%ds)", s.message, int(time.Since(s.started).Seconds()))
}

// Stop halts the animation and erases the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)

	if writerIsTTY(s.writer) {
		fmt.Fprint(s.writer, "\r\033[K")
	}
}

// UpdateMessage replaces the message while the spinner runs.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}
