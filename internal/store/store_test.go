package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"keydrill/internal/model"
)

func TestInsertAndListSessions(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "keydrill.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("Close failed: %v", cerr)
		}
	}()

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := model.SessionRecord{
			ModeKey:    "timed-60-p0-n0",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			EndedAt:    base.Add(time.Duration(i)*time.Hour + time.Minute),
			RawWPM:     50 + float64(i),
			NetWPM:     45 + float64(i),
			Accuracy:   0.95,
			Errors:     3,
			TotalChars: 280,
			DurationMs: 60000,
		}
		if _, err := st.InsertSession(ctx, rec); err != nil {
			t.Fatalf("InsertSession failed: %v", err)
		}
	}
	other := model.SessionRecord{
		ModeKey:    "words-50-p0-n0",
		StartedAt:  base,
		EndedAt:    base.Add(time.Minute),
		NetWPM:     30,
		DurationMs: 45000,
	}
	if _, err := st.InsertSession(ctx, other); err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}

	all, err := st.ListSessions(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(all))
	}

	timed, err := st.ListSessions(ctx, "timed-60-p0-n0", 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(timed) != 3 {
		t.Fatalf("expected 3 timed sessions, got %d", len(timed))
	}
	if timed[0].NetWPM != 45 || timed[2].NetWPM != 47 {
		t.Fatalf("expected chronological order, got %+v", timed)
	}

	recent, err := st.ListSessions(ctx, "timed-60-p0-n0", 2)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(recent) != 2 || recent[0].NetWPM != 46 {
		t.Fatalf("expected last 2 sessions, got %+v", recent)
	}
}
