package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"schoolscout-engine/internal/identity"
	"schoolscout-engine/internal/secrets"
)

type SessionHandler struct {
	Identity *identity.Manager
	Validate *validator.Validate
}

type setSessionReq struct {
	UserID string `json:"userId" validate:"required"`
	Token  string `json:"token" validate:"required"`
}

// Set stores the session token in the OS keychain and switches the engine
// to the authenticated identity. Remote mirroring starts with the next
// saved/target mutation.
func (h SessionHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_session", err.Error())
		return
	}

	if err := secrets.SetSessionToken(secrets.SessionAccount(req.UserID), req.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", err.Error())
		return
	}
	h.Identity.SetSession(req.UserID)
	w.WriteHeader(http.StatusNoContent)
}

// Clear drops the session; the engine keeps working against the local
// cache only.
func (h SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if userID, ok := h.Identity.Session(); ok {
		_ = secrets.DeleteSessionToken(secrets.SessionAccount(userID))
	}
	h.Identity.ClearSession()
	w.WriteHeader(http.StatusNoContent)
}

// Get reports the current identity without exposing the token.
func (h SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Identity.Session()
	writeJSON(w, map[string]any{
		"anonId":        h.Identity.AnonID(),
		"authenticated": ok,
		"userId":        userID,
	})
}
