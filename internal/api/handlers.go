package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lachho/devsoc/internal/catalogue"
	"github.com/lachho/devsoc/internal/logging"
	"github.com/lachho/devsoc/internal/service"
)

const maxBodyBytes = 1 << 20

// NewRouter wires up all routes with the provided Service. metrics may be nil,
// in which case /metrics is not served.
func NewRouter(svc *service.Service, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Post("/parse", handleParse)
	r.Post("/entry", handleCreateEntry(svc))
	r.Get("/summary", handleSummary(svc))

	r.Get("/entries", handleListEntries(svc))
	r.Get("/entries/{name}", handleGetEntry(svc))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
}

// --- parse ---

type parseRequest struct {
	Input string `json:"input"`
}

type parseResponse struct {
	Msg string `json:"msg"`
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	name, err := service.Normalize(req.Input)
	if err != nil {
		jsonError(w, "Invalid recipe name", http.StatusBadRequest)
		return
	}
	jsonOK(w, parseResponse{Msg: name})
}

// --- create ---

func handleCreateEntry(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		raw, err := service.ParseEntry(body)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := svc.Register(r.Context(), raw); err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				jsonError(w, verr.Error(), http.StatusBadRequest)
				return
			}
			jsonError(w, "failed to register entry", http.StatusInternalServerError, err)
			return
		}
		jsonOK(w, struct{}{})
	}
}

// --- summary ---

func handleSummary(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			jsonError(w, "name is required", http.StatusBadRequest)
			return
		}

		summary, err := svc.Summarize(r.Context(), name)
		if err == nil {
			jsonOK(w, summary)
			return
		}

		var (
			unresolved *service.UnresolvedReferenceError
			cyclic     *service.CyclicReferenceError
		)
		switch {
		case errors.Is(err, service.ErrNotFound):
			suggestion, _ := svc.Suggest(r.Context(), name, catalogue.KindRecipe)
			jsonErrorSuggest(w, service.ErrNotFound.Error(), suggestion)
		case errors.As(err, &unresolved):
			suggestion, _ := svc.Suggest(r.Context(), unresolved.Name)
			jsonErrorSuggest(w, unresolved.Error(), suggestion)
		case errors.As(err, &cyclic):
			jsonError(w, cyclic.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrQuantityOverflow):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, "failed to summarize recipe", http.StatusInternalServerError, err)
		}
	}
}

// --- list ---

func handleListEntries(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Store().List(r.Context())
		if items == nil {
			items = []catalogue.Entry{}
		}
		jsonOK(w, items)
	}
}

// --- get ---

func handleGetEntry(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := svc.Store().Get(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			if errors.Is(err, catalogue.ErrEntryNotFound) {
				jsonError(w, "entry not found", http.StatusNotFound)
				return
			}
			jsonError(w, "failed to get entry", http.StatusInternalServerError, err)
			return
		}
		jsonOK(w, entry)
	}
}

// --- helpers ---

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonError(w http.ResponseWriter, msg string, status int, errs ...error) {
	if status >= 500 && len(errs) > 0 {
		slog.Error(msg, "status", status, "error", errs[0])
	}
	writeError(w, status, errorResponse{Error: msg})
}

// jsonErrorSuggest reports a lookup failure along with the closest registered
// name, if any.
func jsonErrorSuggest(w http.ResponseWriter, msg, suggestion string) {
	writeError(w, http.StatusBadRequest, errorResponse{Error: msg, Suggestion: suggestion})
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}
