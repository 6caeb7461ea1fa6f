package model

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// RequestKind identifies which variant an AnalysisRequest carries.
type RequestKind int

const (
	// KindScreenshot is an image upload analyzed via OCR.
	KindScreenshot RequestKind = iota

	// KindText is a free-text message.
	KindText

	// KindWebsite is a URL the backend fetches and inspects.
	KindWebsite
)

// String returns the kind name used by the backend's history entries.
func (k RequestKind) String() string {
	switch k {
	case KindScreenshot:
		return "Screenshot"
	case KindText:
		return "Text"
	case KindWebsite:
		return "Website"
	default:
		return "Unknown"
	}
}

// AnalysisRequest is a tagged union of the three submission variants.
// Only the fields belonging to Kind are meaningful.
//
// Design decision: We use a single struct with a Kind tag rather than an
// interface with three implementations. The variants are fixed by the
// backend contract, and a flat struct is easier to validate, log, and
// journal.
type AnalysisRequest struct {
	// Kind selects the variant.
	Kind RequestKind

	// Filename is the name of the selected screenshot file.
	// An empty Filename means no file was selected.
	Filename string

	// Image holds the screenshot bytes.
	Image []byte

	// Text is the free-text content, already trimmed.
	Text string

	// URL is the website address, already trimmed. It is not parsed.
	URL string
}

// NewScreenshotRequest creates a screenshot request.
func NewScreenshotRequest(filename string, image []byte) AnalysisRequest {
	return AnalysisRequest{Kind: KindScreenshot, Filename: filename, Image: image}
}

// NewTextRequest creates a text request from raw operator input.
// Surrounding whitespace is trimmed.
func NewTextRequest(text string) AnalysisRequest {
	return AnalysisRequest{Kind: KindText, Text: strings.TrimSpace(text)}
}

// NewWebsiteRequest creates a website request from raw operator input.
// Surrounding whitespace is trimmed; no URL syntax validation is done.
func NewWebsiteRequest(url string) AnalysisRequest {
	return AnalysisRequest{Kind: KindWebsite, URL: strings.TrimSpace(url)}
}

// Validate performs the presence checks for the request's variant.
// It returns one of ErrNoFileSelected, ErrEmptyText, ErrEmptyURL, or
// ErrUnknownRequestKind.
func (r AnalysisRequest) Validate() error {
	switch r.Kind {
	case KindScreenshot:
		if r.Filename == "" {
			return ErrNoFileSelected
		}
	case KindText:
		if strings.TrimSpace(r.Text) == "" {
			return ErrEmptyText
		}
	case KindWebsite:
		if strings.TrimSpace(r.URL) == "" {
			return ErrEmptyURL
		}
	default:
		return ErrUnknownRequestKind
	}
	return nil
}

// Content returns a short human-readable description of what was submitted:
// the filename, the text truncated to contentPreviewLength runes, or the URL.
func (r AnalysisRequest) Content() string {
	switch r.Kind {
	case KindScreenshot:
		return r.Filename
	case KindText:
		return Preview(r.Text, contentPreviewLength)
	case KindWebsite:
		return r.URL
	default:
		return ""
	}
}

// Digest returns the hex SHA3-256 digest of the screenshot bytes.
// It returns an empty string for other kinds.
func (r AnalysisRequest) Digest() string {
	if r.Kind != KindScreenshot {
		return ""
	}
	sum := sha3.Sum256(r.Image)
	return hex.EncodeToString(sum[:])
}

// contentPreviewLength matches the backend's own history truncation.
const contentPreviewLength = 50

// Preview truncates s to at most n runes, appending "..." when shortened.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
