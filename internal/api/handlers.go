package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/wunjo/internal/checksum"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/parser"
	"github.com/starford/wunjo/internal/settings"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/week"
	"github.com/starford/wunjo/internal/weekly"
)

// anchorDateLayout is the wire format for explicit anchor dates.
const anchorDateLayout = "YYYY-MM-DD"

// Handler holds API route handlers.
type Handler struct {
	weekly   *weekly.Service
	store    storage.Provider
	settings *settings.Store
	now      func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(svc *weekly.Service, store storage.Provider, st *settings.Store) *Handler {
	return &Handler{
		weekly:   svc,
		store:    store,
		settings: st,
		now:      time.Now,
	}
}

// notePath extracts the note path from the URL (everything after /api/notes/).
// Supports encoded slashes from clients (e.g. weekly%2F2024-W10.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// OpenWeekly handles POST /api/weekly/open.
func (h *Handler) OpenWeekly(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req OpenWeeklyRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
	}

	anchor := h.now()
	if req.Date != "" {
		parsed, err := dateformat.Parse(req.Date, anchorDateLayout)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date, expected YYYY-MM-DD"))
			return
		}
		anchor = parsed
	}
	if req.Next {
		anchor = week.Next(anchor)
	}

	res, err := h.weekly.Open(r.Context(), anchor)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

// WeeklyAction handles GET /weekly, the URI-scheme entry point: it opens
// this week's note and redirects to its resource.
func (h *Handler) WeeklyAction(w http.ResponseWriter, r *http.Request) {
	res, err := h.weekly.Open(r.Context(), h.now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	http.Redirect(w, r, "/api/notes/"+res.Path, http.StatusSeeOther)
}

// GetNote handles GET /api/notes/*.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	data, err := h.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get note failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	res, err := parser.Parse(data)
	if err != nil {
		slog.Error("parse note failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	cs := checksum.Sum(data)
	w.Header().Set("ETag", checksum.ETag(cs))
	writeJSON(w, http.StatusOK, NoteResponse{
		Path:      path,
		Title:     res.Title,
		Content:   string(data),
		Checksum:  cs,
		UpdatedAt: time.Now(),
	})
}

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SettingsResponse{
		Weekly: h.settings.Weekly(),
		Daily:  h.settings.Daily(),
	})
}

// UpdateSettings handles PUT /api/settings. Changes are persisted
// immediately; the date-format strings are stored without validation.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Weekly != nil {
		if err := h.settings.SetWeekly(*req.Weekly); err != nil {
			slog.Error("update weekly settings failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
	}
	if req.Daily != nil {
		if err := h.settings.SetDaily(*req.Daily); err != nil {
			slog.Error("update daily settings failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
	}
	h.GetSettings(w, r)
}
