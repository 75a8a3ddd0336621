package app

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
)

func TestVideoStoreDualIndex(t *testing.T) {
	store := NewVideoStore()
	v := &Video{ID: "vid-1", FactID: "fact-1", Vibe: "hype"}
	store.Put(v)

	byKey, ok := store.Get("fact-1", "hype")
	if !ok {
		t.Fatal("Get(fact-1, hype) not found")
	}
	byID, ok := store.GetByID("vid-1")
	if !ok {
		t.Fatal("GetByID(vid-1) not found")
	}
	if byKey.ID != byID.ID || byKey.FactID != byID.FactID {
		t.Error("key and id lookups resolved different records")
	}

	store.SetStatus("vid-1", StatusComplete)
	byKey, _ = store.Get("fact-1", "hype")
	byID, _ = store.GetByID("vid-1")
	if byKey.Status != StatusComplete {
		t.Error("SetStatus not visible through key lookup")
	}
	if byID.Status != StatusComplete {
		t.Error("SetStatus not visible through id lookup")
	}
}

func TestVideoStoreGettersReturnCopies(t *testing.T) {
	store := NewVideoStore()
	store.Put(&Video{ID: "vid-1", FactID: "fact-1", Vibe: "hype", Status: StatusPending})

	held, _ := store.GetByID("vid-1")
	held.Status = StatusComplete

	fresh, _ := store.GetByID("vid-1")
	if fresh.Status != StatusPending {
		t.Errorf("status = %q after mutating a returned record, want stored %q untouched", fresh.Status, StatusPending)
	}
}

// Readers marshal records fetched from the store while a writer flips
// status; run with -race to verify no write is visible mid-read.
func TestVideoStoreStatusUpdateConcurrentWithReaders(t *testing.T) {
	store := NewVideoStore()
	store.Put(&Video{ID: "vid-1", FactID: "fact-1", Vibe: "hype", Status: StatusPending})

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			store.SetStatus("vid-1", StatusProcessing)
			store.SetStatus("vid-1", StatusComplete)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			v, ok := store.GetByID("vid-1")
			if !ok {
				t.Error("GetByID lost the record mid-update")
				return
			}
			if _, err := json.Marshal(v); err != nil {
				t.Errorf("marshal fetched record: %v", err)
				return
			}
			for _, lv := range store.List() {
				_ = lv.Status
			}
		}
	}()

	wg.Wait()
}

func TestVideoStoreVibesAreSeparateEntries(t *testing.T) {
	store := NewVideoStore()
	store.Put(&Video{ID: "vid-1", FactID: "fact-1", Vibe: "hype"})
	store.Put(&Video{ID: "vid-2", FactID: "fact-1", Vibe: "cozy"})

	if len(store.List()) != 2 {
		t.Errorf("List() = %d entries, want 2", len(store.List()))
	}
	if _, ok := store.Get("fact-1", "cozy"); !ok {
		t.Error("cozy entry missing")
	}
}

func TestStoresConcurrentAccess(t *testing.T) {
	facts := NewFactStore()
	videos := NewVideoStore()
	renders := NewRenderStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			facts.Put(&Fact{ID: id, Text: "fact"})
			videos.Put(&Video{ID: id, FactID: id, Vibe: "hype"})
			renders.Put(&RenderResult{RenderID: id, VideoID: id})

			facts.Get(id)
			videos.GetByID(id)
			videos.List()
			renders.Get(id)
		}(i)
	}
	wg.Wait()

	if got := len(facts.List()); got != 50 {
		t.Errorf("facts = %d, want 50", got)
	}
	if got := len(videos.List()); got != 50 {
		t.Errorf("videos = %d, want 50", got)
	}
}
