package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestShotBar_NonTTYLinePerShot(t *testing.T) {
	buf := &bytes.Buffer{}
	b := NewShotBar(10)
	b.SetWriter(buf)

	b.Shot(1, "a.jpg")
	b.Shot(2, "b.jpg")
	b.Done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per shot, got %q", buf.String())
	}
	if lines[0] != " 1/10 shots  a.jpg" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != " 2/10 shots  b.jpg" {
		t.Errorf("line 2 = %q", lines[1])
	}
	if strings.Contains(buf.String(), "\r") {
		t.Error("non-TTY output must not contain carriage returns")
	}
}

func TestShotBar_ClampsToTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	b := NewShotBar(3)
	b.SetWriter(buf)

	b.Shot(7, "x")
	if !strings.Contains(buf.String(), "3/3 shots") {
		t.Errorf("shot beyond total should clamp, got %q", buf.String())
	}
}

func TestShotBar_Concurrent(t *testing.T) {
	buf := &syncBuffer{}
	b := NewShotBar(100)
	b.SetWriter(buf)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b.Shot(n*10, "")
		}(i)
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Capturing")
	s.SetWriter(buf)

	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	if buf.String() != "Capturing\n" {
		t.Errorf("non-TTY spinner output = %q", buf.String())
	}
	if s.running {
		t.Error("spinner should not be running after Stop()")
	}
}

func TestSpinner_MultipleStartsAndStops(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	if strings.Count(buf.String(), "Test") != 1 {
		t.Errorf("second Start() should be a no-op, got %q", buf.String())
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := NewSpinner("never started")
	s.SetWriter(&bytes.Buffer{})
	s.Stop()
}

func TestSpinner_Line(t *testing.T) {
	s := NewSpinner("Capturing").ShowElapsed()
	s.started = time.Now().Add(-3 * time.Second)

	if got := s.line(); got != "Capturing (3s)" {
		t.Errorf("line() = %q", got)
	}

	s.UpdateMessage("Retrying")
	if got := s.line(); !strings.HasPrefix(got, "Retrying (") {
		t.Errorf("line() after UpdateMessage = %q", got)
	}

	plain := NewSpinner("Plain")
	if got := plain.line(); got != "Plain" {
		t.Errorf("line() without elapsed = %q", got)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
