package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"schoolscout-engine/internal/events"
	"schoolscout-engine/internal/profile"
)

type ProfileHandler struct {
	Profiles profile.Store
	Hub      *events.Hub
	Validate *validator.Validate
}

func (h ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Profiles.Load(r.Context()))
}

func (h ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var f profile.Fragments
	if err := dec.Decode(&f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := h.Validate.Struct(f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_profile", err.Error())
		return
	}

	if err := h.Profiles.Save(r.Context(), f); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeProfileUpdated, 1, nil))
	writeJSON(w, f)
}
