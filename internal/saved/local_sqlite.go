package saved

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
)

// The two fixed keys the anonymous cache lives under.
const (
	savedIDsKey  = "schoolscout:saved_ids"
	targetIDsKey = "schoolscout:target_ids"
)

// SQLiteLocal persists the id lists as JSON arrays in the local kv table.
type SQLiteLocal struct {
	DB *sql.DB
}

func (l SQLiteLocal) Load() (savedIDs, targetIDs []string) {
	return loadIDList(l.DB, savedIDsKey), loadIDList(l.DB, targetIDsKey)
}

func (l SQLiteLocal) Store(savedIDs, targetIDs []string) error {
	if err := storeIDList(l.DB, savedIDsKey, savedIDs); err != nil {
		return err
	}
	return storeIDList(l.DB, targetIDsKey, targetIDs)
}

// loadIDList coerces anything unreadable to an empty list. A corrupt cache
// must never block rendering.
func loadIDList(db *sql.DB, key string) []string {
	var raw string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&raw)
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("[saved] corrupt cache under %q, resetting: %v", key, err)
		return nil
	}
	return ids
}

func storeIDList(db *sql.DB, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(context.Background(), `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, string(b))
	return err
}
