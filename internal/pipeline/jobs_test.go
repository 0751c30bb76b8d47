package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/doclayout/internal/layout"
)

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "j1", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.Get("j1"); got != job {
		t.Errorf("Get returned %v", got)
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("Get on missing id returned %v", got)
	}
}

func TestJobStore_Cleanup(t *testing.T) {
	store := NewJobStore(time.Minute)
	store.Put(&Job{ID: "old", UpdatedAt: time.Now().Add(-2 * time.Minute)})
	store.Put(&Job{ID: "fresh", UpdatedAt: time.Now()})

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expired job survived cleanup")
	}
	if store.Get("fresh") == nil {
		t.Error("fresh job evicted")
	}
}

func TestJob_Lifecycle(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}

	job.SetFileData([]byte("raw bytes"))
	if string(job.FileData()) != "raw bytes" {
		t.Error("file data round trip failed")
	}

	job.SetStatus(StatusAnalyzing, "analyzing pages")
	if job.Snapshot().Status != StatusAnalyzing {
		t.Errorf("status %s", job.Snapshot().Status)
	}

	job.SetPages(3, 3, 5)
	snap := job.Snapshot()
	if snap.Progress.TotalPages != 3 || snap.Progress.Headings != 5 {
		t.Errorf("progress %+v", snap.Progress)
	}

	res := &layout.Result{TotalPages: 3}
	job.SetOutputs(res, "# doc\n", nil)

	if job.Result() != res {
		t.Error("result not stored")
	}
	if job.Markdown() != "# doc\n" {
		t.Error("markdown not stored")
	}
	// Raw bytes are released once outputs are stored.
	if job.FileData() != nil {
		t.Error("file data retained after completion")
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "j1"}
	job.AddError("page 2: garbled stream")
	job.AddError("page 5: garbled stream")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
}

func TestSnapshot_ErrorsNeverNil(t *testing.T) {
	snap := (&Job{ID: "j1"}).Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("snapshot errors should be an empty slice, not nil")
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("ULID length %d: %q", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		for _, r := range id {
			if !strings.ContainsRune(crockford, r) {
				t.Fatalf("non-Crockford character %q in %q", r, id)
			}
		}
	}
}

func TestNewID_Sortable(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()
	if !(a < b) {
		t.Errorf("ids not time-ordered: %q then %q", a, b)
	}
}

func TestContentHashHex(t *testing.T) {
	h := ContentHashHex([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("hash length %d", len(h))
	}
	if h != ContentHashHex([]byte("hello")) {
		t.Error("hash not deterministic")
	}
	if h == ContentHashHex([]byte("world")) {
		t.Error("distinct inputs collided")
	}
}
