package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"schoolscout-engine/internal/events"
	"schoolscout-engine/internal/filter"
	"schoolscout-engine/internal/rank"
	"schoolscout-engine/internal/saved"
	"schoolscout-engine/internal/schools"
)

type SchoolsHandler struct {
	Svc      *schools.Service
	Saved    *saved.Store
	Hub      *events.Hub
	Validate *validator.Validate
}

// queryRequest is the POST body for /schools/query.
type queryRequest struct {
	Criteria filter.Criteria `json:"criteria"`
	Sort     rank.SortSpec   `json:"sort"`
	ViewMode string          `json:"viewMode" validate:"omitempty,oneof=all recommended"`
}

// List handles GET /schools with criteria in query params. Anything it
// cannot parse falls back to the matching default instead of erroring.
func (h SchoolsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	c := filter.Default()
	c.Search = q.Get("search")
	c.States = splitList(q.Get("states"))
	if v, err := strconv.ParseFloat(q.Get("tuition_min"), 64); err == nil && v >= 0 {
		c.TuitionMin = v
	}
	if v, err := strconv.ParseFloat(q.Get("tuition_max"), 64); err == nil && v > 0 {
		c.TuitionMax = v
	}
	c.GRENotRequired = q.Get("gre_not_required") == "true"
	c.GRERequired = q.Get("gre_required") == "true"
	c.GREWaived = q.Get("gre_waived") == "true"
	c.Requires = splitList(q.Get("requires"))
	c.DoesNotRequire = splitList(q.Get("does_not_require"))
	c.AcceptsNICU = q.Get("accepts_nicu") == "true"
	c.AcceptsPICU = q.Get("accepts_picu") == "true"
	c.AcceptsER = q.Get("accepts_er") == "true"
	c.AcceptsOtherICU = q.Get("accepts_other_icu") == "true"
	c.FrontLoaded = q.Get("front_loaded") == "true"
	c.Integrated = q.Get("integrated") == "true"
	c.GPAScience = q.Get("gpa_science") == "true"
	c.GPANursing = q.Get("gpa_nursing") == "true"
	c.GPACumulative = q.Get("gpa_cumulative") == "true"
	c.GPAGraduate = q.Get("gpa_graduate") == "true"
	c.GPALast60 = q.Get("gpa_last60") == "true"
	c.AllowsWorkDuring = q.Get("allows_work_during") == "true"
	c.UsesNursingCAS = q.Get("uses_nursing_cas") == "true"
	c.RollingAdmissions = q.Get("rolling_admissions") == "true"
	c.PartiallyOnline = q.Get("partially_online") == "true"
	c.AcceptsRelatedBach = q.Get("accepts_related_bach") == "true"

	spec := rank.SortSpec{Key: rank.SortKey(q.Get("sort")), Dir: q.Get("dir")}

	writeJSON(w, h.Svc.Query(r.Context(), c, spec, q.Get("view")))
}

// Query handles POST /schools/query with a typed criteria body.
func (h SchoolsHandler) Query(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req queryRequest
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_criteria", err.Error())
		return
	}

	writeJSON(w, h.Svc.Query(r.Context(), req.Criteria, req.Sort, req.ViewMode))
}

// Mutate handles POST/DELETE /schools/{id}/save and /schools/{id}/target.
func (h SchoolsHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/schools/")
	id, action, ok := strings.Cut(rest, "/")
	if !ok || id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_path", "expected /schools/{id}/save or /schools/{id}/target")
		return
	}

	reqID := RequestIDFrom(r.Context())
	var evt string

	switch {
	case action == "save" && r.Method == http.MethodPost:
		h.Saved.Save(r.Context(), id)
		evt = events.TypeSchoolSaved
	case action == "save" && r.Method == http.MethodDelete:
		h.Saved.Unsave(r.Context(), id)
		evt = events.TypeSchoolUnsaved
	case action == "target" && r.Method == http.MethodPost:
		h.Saved.MakeTarget(r.Context(), id)
		evt = events.TypeTargetAdded
	case action == "target" && r.Method == http.MethodDelete:
		h.Saved.RemoveTarget(r.Context(), id)
		evt = events.TypeTargetRemoved
	default:
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported action")
		return
	}

	h.Hub.Publish(events.MakeEvent(reqID, evt, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{
		"ok":       true,
		"id":       id,
		"isSaved":  h.Saved.IsSaved(id),
		"isTarget": h.Saved.IsTarget(id),
	})
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
