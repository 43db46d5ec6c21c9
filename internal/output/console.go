// Package output renders tetherctl's terminal output: colored status lines,
// the raw gphoto2 text, camera and settings tables, a capture spinner and a
// time-lapse progress bar.
//
// Colors are emitted only on a terminal and only when NO_COLOR is unset.
// Every type here is safe for use from multiple goroutines.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/tetherctl/internal/status"
)

// ANSI color codes, one per status severity.
const (
	colorReset  = "\033[0m"
	colorBlue   = "\033[34m"
	colorOrange = "\033[38;5;208m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted on
// stdout: it is a terminal and NO_COLOR is unset.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func severityColor(sev status.Severity) string {
	switch sev {
	case status.Info:
		return colorBlue
	case status.Warning:
		return colorOrange
	case status.Error:
		return colorRed
	case status.Success:
		return colorGreen
	default:
		return ""
	}
}

// Console writes status messages and gphoto2 output to a terminal.
type Console struct {
	mu     sync.Mutex
	status io.Writer
	output io.Writer
	color  bool
	// quiet suppresses the raw gphoto2 text.
	quiet bool
	// dirty is set once output text has been written since the last clear.
	dirty bool
}

// NewConsole creates a Console that writes status lines to statusW and
// gphoto2 output to outputW. color enables ANSI colors.
func NewConsole(statusW, outputW io.Writer, color bool) *Console {
	return &Console{status: statusW, output: outputW, color: color}
}

// SetQuiet hides or shows the raw gphoto2 text.
func (c *Console) SetQuiet(quiet bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiet = quiet
}

// Status returns a sink printing one line per message, colored by severity.
func (c *Console) Status() status.Func {
	return func(message string, sev status.Severity) {
		c.mu.Lock()
		defer c.mu.Unlock()

		prefix := ""
		if writerIsTTY(c.status) {
			// Wipe whatever a spinner left on the line.
			prefix = "\r\033[K"
		}
		if c.color {
			if code := severityColor(sev); code != "" {
				fmt.Fprintf(c.status, "%s%s%s%s\n", prefix, code, message, colorReset)
				return
			}
		}
		fmt.Fprintf(c.status, "%s%s\n", prefix, message)
	}
}

// Output returns a sink for raw gphoto2 text. A terminal cannot be
// cleared the way a text pane can, so a clear request after some text
// prints a dim separator instead.
func (c *Console) Output() status.Output {
	return func(chunk string) {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.quiet {
			return
		}
		if chunk == "" {
			if c.dirty {
				c.writeDim(strings.Repeat("─", 40) + "\n")
				c.dirty = false
			}
			return
		}

		c.writeDim(chunk)
		if !strings.HasSuffix(chunk, "\n") {
			fmt.Fprintln(c.output)
		}
		c.dirty = true
	}
}

// writeDim writes s in gray when colors are on; c.mu must be held.
func (c *Console) writeDim(s string) {
	if c.color {
		fmt.Fprint(c.output, colorGray+s+colorReset)
		return
	}
	fmt.Fprint(c.output, s)
}
