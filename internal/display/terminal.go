package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// noticePrefix marks notice lines so they stand out from region redraws.
const noticePrefix = ">> "

// Terminal writes notices and region redraws to one output stream.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a Terminal that writes to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Notify writes a notice. Multi-line messages keep their line breaks and
// every line is prefixed.
func (t *Terminal) Notify(message string) {
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = noticePrefix + line
	}
	t.write(strings.Join(lines, "\n") + "\n")
}

// Printf writes free-form console output such as prompts and help text.
func (t *Terminal) Printf(format string, args ...any) {
	t.write(fmt.Sprintf(format, args...))
}

// Region creates a named region drawn on this terminal.
func (t *Terminal) Region(title string) *Region {
	return &Region{terminal: t, title: title}
}

func (t *Terminal) write(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.out, s) //nolint:errcheck // terminal output is best effort
}

// Region is a display area that is replaced wholesale on every Show.
type Region struct {
	terminal *Terminal
	title    string

	mu    sync.Mutex
	text  string
	drawn bool
}

// Show replaces the region content. The region is redrawn only when the
// content differs from what is currently shown.
func (r *Region) Show(content string) {
	r.mu.Lock()
	if r.drawn && r.text == content {
		r.mu.Unlock()
		return
	}
	r.text = content
	r.drawn = true
	r.mu.Unlock()

	r.terminal.write(fmt.Sprintf("--- %s ---\n%s\n", r.title, content))
}

// Text returns the content currently shown.
func (r *Region) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Title returns the region name.
func (r *Region) Title() string {
	return r.title
}
