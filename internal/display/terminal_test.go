package display

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// lockedBuffer is a bytes.Buffer safe for the race detector when read after
// concurrent writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestTerminalNotify tests notice rendering.
func TestTerminalNotify(t *testing.T) {
	t.Parallel()

	var buf lockedBuffer
	term := NewTerminal(&buf)
	term.Notify("Risk: High\nReason: Suspicious link")

	want := ">> Risk: High\n>> Reason: Suspicious link\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

// TestRegionShow tests region redraw behavior.
func TestRegionShow(t *testing.T) {
	t.Parallel()

	t.Run("draws content with title", func(t *testing.T) {
		t.Parallel()

		var buf lockedBuffer
		region := NewTerminal(&buf).Region("Stats")
		region.Show("Low: 1 | Medium: 0 | High: 0")

		if buf.String() != "--- Stats ---\nLow: 1 | Medium: 0 | High: 0\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
		if region.Text() != "Low: 1 | Medium: 0 | High: 0" {
			t.Errorf("unexpected text %q", region.Text())
		}
		if region.Title() != "Stats" {
			t.Errorf("unexpected title %q", region.Title())
		}
	})

	t.Run("unchanged content is not redrawn", func(t *testing.T) {
		t.Parallel()

		var buf lockedBuffer
		region := NewTerminal(&buf).Region("History")
		region.Show("No scans yet...")
		region.Show("No scans yet...")

		if n := strings.Count(buf.String(), "--- History ---"); n != 1 {
			t.Errorf("expected one draw, got %d", n)
		}
	})

	t.Run("changed content replaces previous", func(t *testing.T) {
		t.Parallel()

		var buf lockedBuffer
		region := NewTerminal(&buf).Region("History")
		region.Show("a")
		region.Show("b")

		if region.Text() != "b" {
			t.Errorf("expected b, got %q", region.Text())
		}
		if n := strings.Count(buf.String(), "--- History ---"); n != 2 {
			t.Errorf("expected two draws, got %d", n)
		}
	})

	t.Run("empty first content is drawn", func(t *testing.T) {
		t.Parallel()

		var buf lockedBuffer
		NewTerminal(&buf).Region("X").Show("")
		if buf.String() != "--- X ---\n\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

// TestTerminalConcurrentWrites tests that concurrent writes never interleave.
func TestTerminalConcurrentWrites(t *testing.T) {
	t.Parallel()

	var buf lockedBuffer
	term := NewTerminal(&buf)
	region := term.Region("Stats")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			term.Notify("line one\nline two")
		}()
		go func() {
			defer wg.Done()
			region.Show(strings.Repeat("x", i+1))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, line := range lines {
		if line == ">> line one" && (i+1 >= len(lines) || lines[i+1] != ">> line two") {
			t.Fatalf("notice interleaved at line %d: %q", i, lines)
		}
	}
}
