// Package saved tracks the two per-user school-id sets: "saved" and
// "target". Target is always a subset of saved. The local tier is the
// source of truth for reads; the remote tier is a write-behind replica
// used only when a session exists, and its failures are logged, never
// surfaced or rolled back.
package saved

import (
	"context"
	"log"
	"sync"
	"time"
)

// Local is the synchronous, always-authoritative tier.
type Local interface {
	// Load returns the persisted id lists. Malformed content must be
	// coerced to empty lists, never an error.
	Load() (savedIDs, targetIDs []string)
	Store(savedIDs, targetIDs []string) error
}

// Remote is the best-effort authenticated tier, keyed by (user, school).
type Remote interface {
	Upsert(ctx context.Context, userID, schoolID string, isTarget bool) error
	Delete(ctx context.Context, userID, schoolID string) error
}

// Session reports the current user id, ok=false when unauthenticated.
type Session func() (userID string, ok bool)

const remoteTimeout = 10 * time.Second

type Store struct {
	mu      sync.Mutex
	saved   []string
	targets []string

	local   Local
	remote  Remote
	session Session
}

// New loads the persisted state and enforces the subset invariant on
// whatever the local tier returns (a corrupt cache may violate it).
func New(local Local, remote Remote, session Session) *Store {
	s := &Store{local: local, remote: remote, session: session}
	savedIDs, targetIDs := local.Load()
	s.saved = append(s.saved, savedIDs...)
	for _, id := range targetIDs {
		if contains(s.saved, id) {
			s.targets = append(s.targets, id)
		}
	}
	return s
}

// Save marks a school as saved. Idempotent.
func (s *Store) Save(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contains(s.saved, id) {
		return
	}
	s.saved = append(s.saved, id)
	s.persistLocked()
	s.mirrorUpsert(ctx, id, false)
}

// Unsave removes a school from both sets. Idempotent.
func (s *Store) Unsave(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !contains(s.saved, id) {
		return
	}
	s.saved = remove(s.saved, id)
	s.targets = remove(s.targets, id) // target cannot outlive saved
	s.persistLocked()
	s.mirrorDelete(ctx, id)
}

// MakeTarget marks a school as a target, saving it first when needed so the
// subset invariant holds. One logical operation from the caller's view.
func (s *Store) MakeTarget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !contains(s.saved, id) {
		s.saved = append(s.saved, id)
	}
	if !contains(s.targets, id) {
		s.targets = append(s.targets, id)
	}
	s.persistLocked()
	s.mirrorUpsert(ctx, id, true)
}

// RemoveTarget clears the target mark only; the school stays saved.
func (s *Store) RemoveTarget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !contains(s.targets, id) {
		return
	}
	s.targets = remove(s.targets, id)
	s.persistLocked()
	s.mirrorUpsert(ctx, id, false)
}

// ToggleSave saves or unsaves depending on current membership.
// Reports the resulting saved state.
func (s *Store) ToggleSave(ctx context.Context, id string) (nowSaved bool) {
	if s.IsSaved(id) {
		s.Unsave(ctx, id)
		return false
	}
	s.Save(ctx, id)
	return true
}

// ToggleTarget flips the target mark, saving first when needed.
func (s *Store) ToggleTarget(ctx context.Context, id string) (nowTarget bool) {
	if s.IsTarget(id) {
		s.RemoveTarget(ctx, id)
		return false
	}
	s.MakeTarget(ctx, id)
	return true
}

func (s *Store) IsSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.saved, id)
}

func (s *Store) IsTarget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.targets, id)
}

// SavedIDs returns the saved ids in save order.
func (s *Store) SavedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saved...)
}

func (s *Store) TargetIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.targets...)
}

// persistLocked writes the local tier synchronously. A local write failure
// is logged but does not roll back the in-memory state; the next successful
// mutation rewrites the full lists anyway.
func (s *Store) persistLocked() {
	if err := s.local.Store(append([]string(nil), s.saved...), append([]string(nil), s.targets...)); err != nil {
		log.Printf("[saved] local write failed: %v", err)
	}
}

// mirrorUpsert fires a best-effort remote upsert when a session exists.
func (s *Store) mirrorUpsert(ctx context.Context, id string, isTarget bool) {
	if s.remote == nil || s.session == nil {
		return
	}
	userID, ok := s.session()
	if !ok {
		return
	}
	go func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), remoteTimeout)
		defer cancel()
		if err := s.remote.Upsert(rctx, userID, id, isTarget); err != nil {
			log.Printf("[saved] remote upsert failed school=%s: %v", id, err)
		}
	}()
}

func (s *Store) mirrorDelete(ctx context.Context, id string) {
	if s.remote == nil || s.session == nil {
		return
	}
	userID, ok := s.session()
	if !ok {
		return
	}
	go func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), remoteTimeout)
		defer cancel()
		if err := s.remote.Delete(rctx, userID, id); err != nil {
			log.Printf("[saved] remote delete failed school=%s: %v", id, err)
		}
	}()
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
