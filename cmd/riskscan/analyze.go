package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/model"
)

// stdinArg reads the submission from standard input.
const stdinArg = "-"

// NewScreenshotCmd creates the screenshot command.
func NewScreenshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screenshot [file]",
		Short: "Submit a screenshot for OCR-based risk analysis",
		Long: `Screenshot uploads an image to the backend, which extracts its text
with OCR and rates it.

Before uploading, the image is checked for identifying EXIF metadata such as
GPS coordinates or device serial numbers. A warning is printed when any is
found; the upload still proceeds. Disable the check with
"inspectMetadata: false" in the configuration file.

Examples:
  riskscan screenshot suspicious-sms.png
  riskscan -b http://10.0.0.2:5000 screenshot chat.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScreenshotCmd,
	}
}

// NewTextCmd creates the text command.
func NewTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text [words...]",
		Short: "Submit free text for risk analysis",
		Long: `Text submits a message, email body, or any other text for analysis.
All arguments are joined with spaces. Use "-" to read the text from
standard input.

Examples:
  riskscan text "Your account is locked, verify your password here"
  pbpaste | riskscan text -`,
		Args: cobra.ArbitraryArgs,
		RunE: runTextCmd,
	}
}

// NewWebsiteCmd creates the website command.
func NewWebsiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "website [url]",
		Short: "Submit a website URL for risk analysis",
		Long: `Website asks the backend to fetch and inspect a page. The URL is sent
as typed; the backend decides whether it can be reached.

Examples:
  riskscan website http://example.com/login`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWebsiteCmd,
	}
}

// runScreenshotCmd executes the screenshot command.
func runScreenshotCmd(cmd *cobra.Command, args []string) error {
	var filename string
	var image []byte

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read screenshot: %w", err)
		}
		filename = filepath.Base(args[0])
		image = data
	}

	return submit(cmd, model.NewScreenshotRequest(filename, image))
}

// runTextCmd executes the text command.
func runTextCmd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read text from stdin: %w", err)
		}
		text = string(data)
	}

	return submit(cmd, model.NewTextRequest(text))
}

// runWebsiteCmd executes the website command.
func runWebsiteCmd(cmd *cobra.Command, args []string) error {
	var websiteURL string
	if len(args) == 1 {
		websiteURL = args[0]
	}

	return submit(cmd, model.NewWebsiteRequest(websiteURL))
}

// submit sends req through a controller bound to the terminal. The verdict,
// then the refreshed history and stats, are printed to stdout.
func submit(cmd *cobra.Command, req model.AnalysisRequest) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	_, err = s.controller.Submit(ctx, req)
	return err
}

// signalContext returns a context cancelled on interrupt or termination.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
