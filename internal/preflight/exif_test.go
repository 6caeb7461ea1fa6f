package preflight

import (
	"encoding/binary"
	"strings"
	"testing"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/nao1215/riskscan/internal/model"
)

// buildExif encodes a root IFD carrying the given standard tags.
func buildExif(t *testing.T, tags [][2]string) []byte {
	t.Helper()

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		t.Fatalf("failed to create IFD mapping: %v", err)
	}
	ib := exif.NewIfdBuilder(im, exif.NewTagIndex(), exifcommon.IfdStandardIfdIdentity, binary.BigEndian)
	for _, tag := range tags {
		if err := ib.AddStandardWithName(tag[0], tag[1]); err != nil {
			t.Fatalf("failed to add tag %s: %v", tag[0], err)
		}
	}

	data, err := exif.NewIfdByteEncoder().EncodeToExif(ib)
	if err != nil {
		t.Fatalf("failed to encode EXIF: %v", err)
	}
	return data
}

// TestInspectorWithoutEXIF tests images that carry no metadata.
func TestInspectorWithoutEXIF(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		image []byte
	}{
		{"empty", nil},
		{"png signature only", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")},
		{"plain text", []byte("this is not an image at all")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			findings, err := NewInspector().Inspect(tc.image)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(findings) != 0 {
				t.Errorf("expected no findings, got %v", findings)
			}
		})
	}
}

// TestInspectorWithEXIF tests extraction of identifying tags.
func TestInspectorWithEXIF(t *testing.T) {
	t.Parallel()

	image := buildExif(t, [][2]string{
		{"Make", "RiskCam"},
		{"Artist", "Jane Doe"},
		{"ImageDescription", "not identifying"},
	})

	findings, err := NewInspector().Inspect(image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]Finding{
		"Make":   {Category: CategoryCamera, Tag: "Make", Value: "RiskCam", Risk: model.RiskMedium},
		"Artist": {Category: CategoryAuthor, Tag: "Artist", Value: "Jane Doe", Risk: model.RiskHigh},
	}
	if len(findings) != len(want) {
		t.Fatalf("expected %d findings, got %v", len(want), findings)
	}
	for _, f := range findings {
		expected, ok := want[f.Tag]
		if !ok {
			t.Errorf("unexpected finding %+v", f)
			continue
		}
		if f != expected {
			t.Errorf("expected %+v, got %+v", expected, f)
		}
	}

	summary := Summarize(findings)
	for _, category := range []Category{CategoryCamera, CategoryAuthor} {
		if !strings.Contains(summary, string(category)) {
			t.Errorf("expected summary to mention %q, got %q", category, summary)
		}
	}
	if !strings.HasPrefix(summary, "Warning: screenshot carries identifying metadata (") {
		t.Errorf("unexpected summary %q", summary)
	}
}

// TestWithMaxImageSize tests the size option.
func TestWithMaxImageSize(t *testing.T) {
	t.Parallel()

	if got := NewInspector(WithMaxImageSize(1024)).maxImageSize; got != 1024 {
		t.Errorf("expected 1024, got %d", got)
	}
	if got := NewInspector(WithMaxImageSize(-1)).maxImageSize; got != DefaultMaxImageSize {
		t.Errorf("expected default for negative size, got %d", got)
	}
}

// TestTagCategories tests that every category has a rating.
func TestTagCategories(t *testing.T) {
	t.Parallel()

	for tag, category := range tagCategories {
		if !categoryRisk[category].Known() {
			t.Errorf("tag %s has unrated category %q", tag, category)
		}
	}
	if categoryRisk[CategoryGPS] != model.RiskHigh {
		t.Error("expected GPS to be rated High")
	}
}

// TestSummarize tests the warning line.
func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("no findings", func(t *testing.T) {
		t.Parallel()
		if got := Summarize(nil); got != "" {
			t.Errorf("expected empty summary, got %q", got)
		}
	})

	t.Run("categories listed once in order", func(t *testing.T) {
		t.Parallel()

		got := Summarize([]Finding{
			{Category: CategoryGPS, Tag: "GPSLatitude"},
			{Category: CategoryCamera, Tag: "Make"},
			{Category: CategoryGPS, Tag: "GPSLongitude"},
		})
		want := "Warning: screenshot carries identifying metadata (GPS coordinates, camera make/model); uploading anyway"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if strings.Count(got, "GPS") != 1 {
			t.Error("expected GPS once")
		}
	})
}
