package httpapi

import (
	"net/http"

	"schoolscout-engine/internal/saved"
)

type SavedHandler struct {
	Saved *saved.Store
}

func (h SavedHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"savedIds":  h.Saved.SavedIDs(),
		"targetIds": h.Saved.TargetIDs(),
	})
}
