package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/riskscan/internal/display"
)

// newTestConsole returns a console without a controller, for commands that
// never reach the backend.
func newTestConsole() (*console, *bytes.Buffer, *display.Region, *display.Region) {
	var out bytes.Buffer
	terminal := display.NewTerminal(&out)
	history := terminal.Region(historyRegionTitle)
	stats := terminal.Region(statsRegionTitle)
	return newConsole(nil, terminal, history, stats), &out, history, stats
}

// TestConsoleDispatch tests commands handled without the backend.
func TestConsoleDispatch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		line     string
		wantMore bool
		wantOut  string
	}{
		{"blank line", "   ", true, ""},
		{"help", "help", true, "Commands:\n"},
		{"question mark", "?", true, "Commands:\n"},
		{"unknown verb", "scan now", true, `>> Unknown command "scan". Type "help" for commands.` + "\n"},
		{"quit", "quit", false, ""},
		{"exit is case-insensitive", "EXIT", false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, out, _, _ := newTestConsole()
			if got := c.dispatch(context.Background(), tc.line); got != tc.wantMore {
				t.Errorf("dispatch(%q) = %v, expected %v", tc.line, got, tc.wantMore)
			}
			c.inflight.Wait()

			if tc.wantOut == "" {
				if out.Len() != 0 {
					t.Errorf("expected no output, got %q", out.String())
				}
				return
			}
			if !strings.HasPrefix(out.String(), tc.wantOut) {
				t.Errorf("expected output to start with %q, got %q", tc.wantOut, out.String())
			}
		})
	}
}

// TestConsoleScreenshotReadFailure tests that an unreadable file is reported
// without a submission.
func TestConsoleScreenshotReadFailure(t *testing.T) {
	t.Parallel()

	c, out, _, _ := newTestConsole()
	c.readFile = func(string) ([]byte, error) {
		return nil, errors.New("permission denied")
	}

	if !c.dispatch(context.Background(), "screenshot /secret/shot.png") {
		t.Fatal("expected console to continue")
	}
	c.inflight.Wait()

	want := ">> Cannot read screenshot: permission denied\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

// TestConsoleShow tests reprinting the regions.
func TestConsoleShow(t *testing.T) {
	t.Parallel()

	c, out, history, stats := newTestConsole()

	c.dispatch(context.Background(), "show")
	if out.Len() != 0 {
		t.Fatalf("expected nothing before the first draw, got %q", out.String())
	}

	history.Show("No scans yet...")
	stats.Show("Low: 1 | Medium: 0 | High: 0")
	out.Reset()

	c.dispatch(context.Background(), "show")
	want := "--- History ---\nNo scans yet...\n--- Stats ---\nLow: 1 | Medium: 0 | High: 0\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

// TestConsoleServe tests that serve stops at quit.
func TestConsoleServe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, out, _, _ := newTestConsole()
	c.serve(ctx, strings.NewReader("help\nquit\nhelp\n"))

	if got := strings.Count(out.String(), "Commands:"); got != 1 {
		t.Errorf("expected help once, got %d times in %q", got, out.String())
	}
}
