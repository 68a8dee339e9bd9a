package cache

import (
	"testing"
	"time"
)

func TestUploadRegistry_PutGet(t *testing.T) {
	r := NewUploadRegistry(time.Minute)

	rec := UploadRecord{
		ID:         "a",
		FileName:   "standup.wav",
		FileSize:   128,
		AudioURL:   "/uploads/a-1.wav",
		Duration:   12.5,
		UploadedAt: time.Now().UTC(),
	}
	r.Put(rec)

	got, ok := r.Get("a")
	if !ok {
		t.Fatal("expected record to be present")
	}
	if got != rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}

	if _, ok := r.Get("missing"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestUploadRegistry_RecentNewestFirst(t *testing.T) {
	r := NewUploadRegistry(time.Minute)
	base := time.Now().UTC()

	r.Put(UploadRecord{ID: "old", UploadedAt: base.Add(-2 * time.Hour)})
	r.Put(UploadRecord{ID: "mid", UploadedAt: base.Add(-1 * time.Hour)})
	r.Put(UploadRecord{ID: "new", UploadedAt: base})

	recent := r.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	if recent[0].ID != "new" || recent[2].ID != "old" {
		t.Fatalf("expected newest first, got %v", []string{recent[0].ID, recent[1].ID, recent[2].ID})
	}
}

func TestUploadRegistry_Expiry(t *testing.T) {
	r := NewUploadRegistry(10 * time.Millisecond)
	r.Put(UploadRecord{ID: "short-lived", UploadedAt: time.Now()})

	time.Sleep(20 * time.Millisecond)

	if _, ok := r.Get("short-lived"); ok {
		t.Fatal("expired record must not resolve")
	}
	if got := r.Recent(); len(got) != 0 {
		t.Fatalf("expired record must not be listed, got %d", len(got))
	}
}
