package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/riskscan/internal/model"
)

// setupTestDB creates a temporary journal for testing.
func setupTestDB(t *testing.T) *JournalDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// TestOpen tests journal opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open journal: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("journal file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails for missing journal", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing journal")
		}
	})

	t.Run("reopens existing journal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open journal: %v", err)
		}
		if err := db.RecordSubmission(context.Background(), &model.Submission{Kind: "Text", Content: "hi", RiskLevel: model.RiskLow}); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen journal: %v", err)
		}
		defer db.Close()

		list, err := db.ListSubmissions(context.Background(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 persisted submission, got %d", len(list))
		}
	})
}

// TestRecordSubmission tests inserting and reading back submissions.
func TestRecordSubmission(t *testing.T) {
	t.Parallel()

	t.Run("assigns id and round trips fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		at := time.Date(2025, 3, 1, 10, 30, 0, 123000000, time.UTC)

		s := &model.Submission{
			Kind:        "Screenshot",
			Content:     "shot.png",
			Digest:      "deadbeef",
			RiskLevel:   model.RiskHigh,
			Reason:      "Suspicious keywords found",
			SubmittedAt: at,
		}
		if err := db.RecordSubmission(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID == 0 {
			t.Fatal("expected ID to be set")
		}

		got, err := db.GetSubmission(ctx, s.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("expected submission")
		}
		if got.Kind != s.Kind || got.Content != s.Content || got.Digest != s.Digest ||
			got.RiskLevel != s.RiskLevel || got.Reason != s.Reason {
			t.Errorf("round trip mismatch: %+v vs %+v", got, s)
		}
		if !got.SubmittedAt.Equal(at) {
			t.Errorf("expected %v, got %v", at, got.SubmittedAt)
		}
	})

	t.Run("empty digest stays empty", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		s := &model.Submission{Kind: "Text", Content: "hi", RiskLevel: model.RiskLow}
		if err := db.RecordSubmission(context.Background(), s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.SubmittedAt.IsZero() {
			t.Error("expected zero time to be filled in")
		}

		got, err := db.GetSubmission(context.Background(), s.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Digest != "" {
			t.Errorf("expected empty digest, got %q", got.Digest)
		}
	})

	t.Run("nil submission", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if err := db.RecordSubmission(context.Background(), nil); !errors.Is(err, ErrNilSubmission) {
			t.Errorf("expected ErrNilSubmission, got %v", err)
		}
	})

	t.Run("missing id returns nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		got, err := db.GetSubmission(context.Background(), 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

// TestListSubmissions tests ordering and limits.
func TestListSubmissions(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Sub-second offsets check that ordering is chronological, not lexical.
	offsets := []time.Duration{0, 500 * time.Millisecond, time.Second, 2 * time.Second}
	for i, off := range offsets {
		s := &model.Submission{
			Kind:        "Text",
			Content:     string(rune('a' + i)),
			RiskLevel:   model.RiskLow,
			SubmittedAt: base.Add(off),
		}
		if err := db.RecordSubmission(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		list, err := db.ListSubmissions(ctx, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"d", "c", "b", "a"}
		if len(list) != len(want) {
			t.Fatalf("expected %d submissions, got %d", len(want), len(list))
		}
		for i, s := range list {
			if s.Content != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], s.Content)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		list, err := db.ListSubmissions(ctx, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 2 || list[0].Content != "d" {
			t.Errorf("unexpected limited list %+v", list)
		}
	})
}

// TestCountByRisk tests per-level counting.
func TestCountByRisk(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	levels := []model.RiskLevel{model.RiskLow, model.RiskHigh, model.RiskHigh, model.RiskMedium, "Critical"}
	for _, level := range levels {
		if err := db.RecordSubmission(ctx, &model.Submission{Kind: "Text", Content: "x", RiskLevel: level}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	counts, err := db.CountByRisk(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts != (model.StatsSnapshot{Low: 1, Medium: 1, High: 2}) {
		t.Errorf("unexpected counts %+v", counts)
	}
}

// TestParseTimestamp tests timestamp parsing fallbacks.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  time.Time
	}{
		{"2025-03-01T10:00:00.500000000Z", time.Date(2025, 3, 1, 10, 0, 0, 500000000, time.UTC)},
		{"2025-03-01 10:00:00", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2025-03-01T10:00:00", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tc.input); !got.Equal(tc.want) {
				t.Errorf("parseTimestamp(%q) = %v, expected %v", tc.input, got, tc.want)
			}
		})
	}
}
