package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/events"
	"schoolscout-engine/internal/identity"
	"schoolscout-engine/internal/profile"
	"schoolscout-engine/internal/saved"
	"schoolscout-engine/internal/schools"
)

type Deps struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Svc      *schools.Service
	Saved    *saved.Store
	Profiles profile.Store
	Identity *identity.Manager
	Hub      *events.Hub
	RunOnce  func()
}

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	v := validator.New()

	sh := SchoolsHandler{Svc: d.Svc, Saved: d.Saved, Hub: d.Hub, Validate: v}
	mux.HandleFunc("/schools", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.List,
	}))
	mux.HandleFunc("/schools/query", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Query,
	}))
	mux.HandleFunc("/schools/", sh.Mutate) // /schools/{id}/save, /schools/{id}/target

	svh := SavedHandler{Saved: d.Saved}
	mux.HandleFunc("/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: svh.Get,
	}))

	ph := ProfileHandler{Profiles: d.Profiles, Hub: d.Hub, Validate: v}
	mux.HandleFunc("/profile", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Get,
		http.MethodPut: ph.Put,
	}))

	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	seh := SessionHandler{Identity: d.Identity, Validate: v}
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    seh.Get,
		http.MethodPost:   seh.Set,
		http.MethodDelete: seh.Clear,
	}))

	rh := RefreshHandler{Svc: d.Svc, RunOnce: d.RunOnce}
	mux.HandleFunc("/refresh/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))
	mux.HandleFunc("/refresh/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
	})

	return mux
}
