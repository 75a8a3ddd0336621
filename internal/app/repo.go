package app

import "sync"

// FactStore holds submitted facts in memory, preserving insertion order.
type FactStore struct {
	mu    sync.RWMutex
	byID  map[string]*Fact
	order []string
}

func NewFactStore() *FactStore {
	return &FactStore{byID: make(map[string]*Fact)}
}

func (s *FactStore) Put(f *Fact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[f.ID]; !ok {
		s.order = append(s.order, f.ID)
	}
	s.byID[f.ID] = f
}

func (s *FactStore) Get(id string) (*Fact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.byID[id]
	return f, ok
}

func (s *FactStore) List() []*Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	facts := make([]*Fact, 0, len(s.order))
	for _, id := range s.order {
		facts = append(facts, s.byID[id])
	}
	return facts
}

type videoKey struct {
	factID string
	vibe   string
}

// VideoStore caches generated videos. The canonical key is the
// (fact, vibe) pair; the video id is a secondary index into the same
// records, so a lookup by either route sees the same entry. The store
// never hands out its internal record: getters return copies, and
// status changes flow only through SetStatus, so readers never observe
// a write in progress.
type VideoStore struct {
	mu    sync.RWMutex
	byKey map[videoKey]*Video
	byID  map[string]*Video
	order []string
}

func NewVideoStore() *VideoStore {
	return &VideoStore{
		byKey: make(map[videoKey]*Video),
		byID:  make(map[string]*Video),
	}
}

func (s *VideoStore) Put(v *Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := videoKey{factID: v.FactID, vibe: v.Vibe}
	if _, ok := s.byKey[key]; !ok {
		s.order = append(s.order, v.ID)
	}
	stored := *v
	s.byKey[key] = &stored
	s.byID[v.ID] = &stored
}

func (s *VideoStore) Get(factID, vibe string) (*Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byKey[videoKey{factID: factID, vibe: vibe}]
	if !ok {
		return nil, false
	}
	copied := *v
	return &copied, true
}

func (s *VideoStore) GetByID(id string) (*Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	copied := *v
	return &copied, true
}

func (s *VideoStore) SetStatus(id string, status RenderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.byID[id]; ok {
		v.Status = status
	}
}

func (s *VideoStore) List() []*Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	videos := make([]*Video, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.byID[id]
		videos = append(videos, &copied)
	}
	return videos
}

func (s *VideoStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// RenderStore records every render attempt by render id.
type RenderStore struct {
	mu   sync.RWMutex
	byID map[string]*RenderResult
}

func NewRenderStore() *RenderStore {
	return &RenderStore{byID: make(map[string]*RenderResult)}
}

func (s *RenderStore) Put(r *RenderResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[r.RenderID] = r
}

func (s *RenderStore) Get(id string) (*RenderResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}
