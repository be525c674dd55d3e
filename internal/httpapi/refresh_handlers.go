package httpapi

import (
	"net/http"

	"schoolscout-engine/internal/schools"
)

type RefreshHandler struct {
	Svc     *schools.Service
	RunOnce func() // triggers the import+refresh cycle
}

func (h RefreshHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Svc.Status())
}

func (h RefreshHandler) Run(w http.ResponseWriter, r *http.Request) {
	go h.RunOnce()
	writeJSON(w, map[string]any{"ok": true})
}
