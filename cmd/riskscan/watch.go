package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/controller"
	"github.com/nao1215/riskscan/internal/display"
)

// consoleHelp lists the watch console commands.
const consoleHelp = `Commands:
  screenshot <file>   submit a screenshot
  text <words...>     submit free text
  website <url>       submit a website URL
  refresh             refresh history and stats now
  show                reprint history and stats as last fetched
  help                show this help
  quit                leave the console
`

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Interactive console with automatic history and stats refresh",
		Long: `Watch opens a console that shows the backend's history and stats and
refreshes both every 10 seconds (see --interval). Regions are redrawn only
when their content changes.

Type one command per line. Each command runs in the background, so a slow
website analysis does not block the next submission.

` + consoleHelp + `
The console ends on "quit", end of input, or Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: runWatchCmd,
	}
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	s.terminal.Printf("riskscan watch: backend %s, refresh every %s. Type \"help\" for commands.\n",
		s.client.BaseURL(), s.controller.Interval())

	// Initial draw so the regions are not empty until the first tick.
	if err := s.controller.Refresh(ctx); err != nil {
		s.terminal.Notify("Backend unreachable: " + err.Error())
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	runDone := make(chan error, 1)
	go func() { runDone <- s.controller.Run(runCtx) }()

	c := newConsole(s.controller, s.terminal, s.history, s.stats)
	c.serve(ctx, cmd.InOrStdin())

	cancelRun()
	return <-runDone
}

// console dispatches operator commands to the controller.
type console struct {
	ctrl     *controller.Controller
	terminal *display.Terminal
	regions  []*display.Region

	// readFile loads screenshots; replaced in tests.
	readFile func(name string) ([]byte, error)

	inflight sync.WaitGroup
}

func newConsole(ctrl *controller.Controller, terminal *display.Terminal, regions ...*display.Region) *console {
	return &console{
		ctrl:     ctrl,
		terminal: terminal,
		regions:  regions,
		readFile: os.ReadFile,
	}
}

// serve reads commands from in until quit, end of input, or ctx is done.
// Every command runs on its own goroutine; serve waits for them before
// returning.
func (c *console) serve(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	defer c.inflight.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !c.dispatch(ctx, line) {
				return
			}
		}
	}
}

// dispatch starts one command. It returns false when the console should end.
func (c *console) dispatch(ctx context.Context, line string) bool {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "":
		return true
	case "quit", "exit":
		return false
	case "help", "?":
		c.terminal.Printf("%s", consoleHelp)
		return true
	case "text":
		c.background(func() { _, _ = c.ctrl.SubmitText(ctx, arg) }) //nolint:errcheck // announced by the controller
	case "website", "url":
		c.background(func() { _, _ = c.ctrl.SubmitWebsite(ctx, arg) }) //nolint:errcheck // announced by the controller
	case "screenshot", "image":
		c.background(func() { c.submitScreenshot(ctx, arg) })
	case "refresh":
		c.background(func() { _ = c.ctrl.Refresh(ctx) }) //nolint:errcheck // logged by the controller
	case "show":
		c.show()
	default:
		c.terminal.Notify(fmt.Sprintf("Unknown command %q. Type \"help\" for commands.", verb))
	}
	return true
}

// submitScreenshot loads path and submits it. An empty path is submitted as
// "no file selected".
func (c *console) submitScreenshot(ctx context.Context, path string) {
	if path == "" {
		_, _ = c.ctrl.SubmitScreenshot(ctx, "", nil) //nolint:errcheck // announced by the controller
		return
	}

	image, err := c.readFile(path)
	if err != nil {
		c.terminal.Notify("Cannot read screenshot: " + err.Error())
		return
	}
	_, _ = c.ctrl.SubmitScreenshot(ctx, filepath.Base(path), image) //nolint:errcheck // announced by the controller
}

// show reprints every region that has been drawn at least once.
func (c *console) show() {
	for _, r := range c.regions {
		text := r.Text()
		if text == "" {
			continue
		}
		c.terminal.Printf("--- %s ---\n%s\n", r.Title(), text)
	}
}

func (c *console) background(fn func()) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		fn()
	}()
}
