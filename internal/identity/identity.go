// Package identity manages who the engine acts as: a persistent anonymous
// client id, optionally upgraded to an authenticated session.
package identity

import (
	"context"
	"database/sql"
	"log"
	"sync"

	"github.com/google/uuid"

	"schoolscout-engine/internal/store"
)

const (
	anonIDKey = "schoolscout:anon_id"
	userIDKey = "schoolscout:user_id"
)

// Manager holds the current session. Reads are cheap; mutations come from
// the /session endpoints.
type Manager struct {
	mu     sync.Mutex
	db     *sql.DB
	anonID string
	userID string // empty when unauthenticated
}

// Load restores (or mints) the anonymous id from the local kv table, and
// restores the last authenticated user id so a session survives a restart.
// The caller is expected to verify the session token still exists before
// trusting the restored identity.
func Load(ctx context.Context, db *sql.DB) *Manager {
	m := &Manager{db: db}

	id, err := store.GetKV(ctx, db, anonIDKey)
	if err != nil || id == "" {
		id = uuid.NewString()
		if err := store.SetKV(ctx, db, anonIDKey, id); err != nil {
			log.Printf("[identity] persisting anon id failed: %v", err)
		}
	}
	m.anonID = id

	if userID, err := store.GetKV(ctx, db, userIDKey); err == nil {
		m.userID = userID
	}
	return m
}

func (m *Manager) AnonID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anonID
}

// Session returns the authenticated user id, ok=false when anonymous.
// Matches saved.Session so it can be handed to the saved store directly.
func (m *Manager) Session() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID, m.userID != ""
}

func (m *Manager) SetSession(userID string) {
	m.mu.Lock()
	m.userID = userID
	m.mu.Unlock()
	if err := store.SetKV(context.Background(), m.db, userIDKey, userID); err != nil {
		log.Printf("[identity] persisting user id failed: %v", err)
	}
}

func (m *Manager) ClearSession() {
	m.mu.Lock()
	m.userID = ""
	m.mu.Unlock()
	if err := store.SetKV(context.Background(), m.db, userIDKey, ""); err != nil {
		log.Printf("[identity] clearing user id failed: %v", err)
	}
}
