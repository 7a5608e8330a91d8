package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) (context.Context, *sqliteStore) {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "transcripts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return ctx, store.(*sqliteStore)
}

func TestSQLiteSaveGetRoundTrip(t *testing.T) {
	ctx, store := openTestStore(t)

	saved, err := store.Save(ctx, json.RawMessage(`{"complaint":"cough","duration_days":3}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.Get(ctx, saved.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got.Summary) != `{"complaint":"cough","duration_days":3}` {
		t.Errorf("unexpected summary: %s", got.Summary)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at must round-trip")
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	ctx, store := openTestStore(t)

	_, ok, err := store.Get(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing transcript")
	}
}

func TestSQLiteRecentOrderAndLimit(t *testing.T) {
	ctx, store := openTestStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		saved, err := store.Save(ctx, json.RawMessage(`{}`))
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		ids = append(ids, saved.ID)
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 transcripts, got %d", len(recent))
	}
	if recent[0].ID != ids[2] {
		t.Errorf("expected newest first, got %s", recent[0].ID)
	}
}

func TestSQLitePing(t *testing.T) {
	ctx, store := openTestStore(t)

	if err := store.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}
