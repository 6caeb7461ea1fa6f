package preflight

import (
	"errors"
	"fmt"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/riskscan/internal/model"
)

// ErrUnreadableMetadata is returned when an EXIF block is present but cannot
// be parsed.
var ErrUnreadableMetadata = errors.New("unreadable EXIF metadata")

// DefaultMaxImageSize bounds how many bytes are searched for EXIF data.
const DefaultMaxImageSize = 5 * 1024 * 1024

// Category groups EXIF tags by what they disclose.
type Category string

const (
	// CategoryGPS is location data.
	CategoryGPS Category = "GPS coordinates"

	// CategorySerial is a unique device identifier.
	CategorySerial Category = "device serial number"

	// CategoryAuthor is the creator's name or copyright holder.
	CategoryAuthor Category = "author/copyright"

	// CategoryCamera is the device make and model.
	CategoryCamera Category = "camera make/model"

	// CategoryComputer is the host computer name.
	CategoryComputer Category = "host computer"

	// CategorySoftware is the editing software or OS.
	CategorySoftware Category = "software"

	// CategoryTimestamp is the capture time, which can reveal a timezone.
	CategoryTimestamp Category = "timestamp"
)

// Finding is one identifying EXIF tag.
type Finding struct {
	// Category groups the tag.
	Category Category

	// Tag is the EXIF tag name, e.g. "GPSLatitude".
	Tag string

	// Value is the formatted tag value.
	Value string

	// Risk rates how identifying the tag is.
	Risk model.RiskLevel
}

// tagCategories maps EXIF tag names to what they disclose.
var tagCategories = map[string]Category{
	"GPSLatitude":        CategoryGPS,
	"GPSLongitude":       CategoryGPS,
	"GPSLatitudeRef":     CategoryGPS,
	"GPSLongitudeRef":    CategoryGPS,
	"GPSAltitude":        CategoryGPS,
	"SerialNumber":       CategorySerial,
	"CameraSerialNumber": CategorySerial,
	"BodySerialNumber":   CategorySerial,
	"LensSerialNumber":   CategorySerial,
	"Artist":             CategoryAuthor,
	"Author":             CategoryAuthor,
	"Copyright":          CategoryAuthor,
	"XPAuthor":           CategoryAuthor,
	"Make":               CategoryCamera,
	"Model":              CategoryCamera,
	"HostComputer":       CategoryComputer,
	"Software":           CategorySoftware,
	"ProcessingSoftware": CategorySoftware,
	"DateTimeOriginal":   CategoryTimestamp,
	"DateTimeDigitized":  CategoryTimestamp,
}

// categoryRisk rates each category.
var categoryRisk = map[Category]model.RiskLevel{
	CategoryGPS:       model.RiskHigh,
	CategorySerial:    model.RiskHigh,
	CategoryAuthor:    model.RiskHigh,
	CategoryCamera:    model.RiskMedium,
	CategoryComputer:  model.RiskMedium,
	CategorySoftware:  model.RiskLow,
	CategoryTimestamp: model.RiskLow,
}

// Inspector extracts identifying EXIF tags from image bytes.
type Inspector struct {
	// maxImageSize limits the bytes searched. Larger images are inspected
	// up to this size only.
	maxImageSize int
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithMaxImageSize sets the search limit. Non-positive values are ignored.
func WithMaxImageSize(n int) InspectorOption {
	return func(i *Inspector) {
		if n > 0 {
			i.maxImageSize = n
		}
	}
}

// NewInspector creates an Inspector.
func NewInspector(opts ...InspectorOption) *Inspector {
	i := &Inspector{maxImageSize: DefaultMaxImageSize}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect returns the identifying tags found in image.
// Images without EXIF data (most PNG screenshots) return no findings and a
// nil error.
func (i *Inspector) Inspect(image []byte) ([]Finding, error) {
	if len(image) > i.maxImageSize {
		image = image[:i.maxImageSize]
	}

	rawExif, err := exif.SearchAndExtractExif(image)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreadableMetadata, err)
	}
	if rawExif == nil {
		return nil, nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableMetadata, err)
	}

	findings := make([]Finding, 0)
	for _, entry := range entries {
		category, ok := tagCategories[entry.TagName]
		if !ok {
			continue
		}
		findings = append(findings, Finding{
			Category: category,
			Tag:      entry.TagName,
			Value:    entry.Formatted,
			Risk:     categoryRisk[category],
		})
	}

	return findings, nil
}

// Summarize returns the one-line warning for a set of findings, or an empty
// string when there is nothing to warn about. Categories are listed once, in
// the order first seen.
func Summarize(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	seen := make(map[Category]bool)
	categories := make([]string, 0)
	for _, f := range findings {
		if seen[f.Category] {
			continue
		}
		seen[f.Category] = true
		categories = append(categories, string(f.Category))
	}

	return "Warning: screenshot carries identifying metadata (" +
		strings.Join(categories, ", ") + "); uploading anyway"
}
