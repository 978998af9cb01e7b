package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/render"
	"github.com/rook-computer/cover/internal/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultMaxBody bounds POSTed patch documents.
const DefaultMaxBody = 1 << 20

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// RenderFunc renders one cover and returns the document and its content type.
type RenderFunc func(ctx context.Context, req app.Request) ([]byte, string, error)

// APIV1 holds what the /api/v1 routes depend on.
type APIV1 struct {
	Render  RenderFunc
	// Base is the server's configured cover, merged in order under every
	// request's own patches.
	Base    []*config.Patch
	// Cache, when set, is exposed at /cache for stats and purging.
	Cache   *state.Store
	Logger  Logger
	MaxBody int64
}

func (api APIV1) withDefaults() APIV1 {
	if api.Logger == nil {
		api.Logger = app.NoopLogger{}
	}
	if api.MaxBody <= 0 {
		api.MaxBody = DefaultMaxBody
	}
	return api
}

func apiV1Router(api APIV1) http.Handler {
	api = api.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/cover.svg", func(w http.ResponseWriter, r *http.Request) { handleCover(w, r, api, render.FormatSVG) })
	mux.HandleFunc("/cover.png", func(w http.ResponseWriter, r *http.Request) { handleCover(w, r, api, render.FormatPNG) })
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) { handleConfig(w, r, api) })
	mux.HandleFunc("/cache", func(w http.ResponseWriter, r *http.Request) { handleCache(w, r, api.Cache) })
	return mux
}

func handleCover(w http.ResponseWriter, r *http.Request, api APIV1, format render.Format) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if api.Render == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "renderer not configured")
		return
	}
	req, err := requestFrom(w, r, api)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	req.Format = format

	body, contentType, err := api.Render(r.Context(), req)
	if err != nil {
		if isClientError(err) {
			writeRequestError(w, err)
			return
		}
		api.Logger.Errorf("web", "render %s: %v", format, err)
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func handleConfig(w http.ResponseWriter, r *http.Request, api APIV1) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	req, err := requestFrom(w, r, api)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req.Config())
}

func handleCache(w http.ResponseWriter, r *http.Request, cache *state.Store) {
	if cache == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "cache not configured")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, cache.Snapshot())
	case http.MethodDelete:
		cache.Purge()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// requestFrom collects the patches of a request in merge order: the server
// base, the inline ?patch= document, the POST body, then the flat query
// shorthands.
func requestFrom(w http.ResponseWriter, r *http.Request, api APIV1) (app.Request, error) {
	q := r.URL.Query()
	req := app.Request{
		Patches: append([]*config.Patch(nil), api.Base...),
		Overrides: config.Overrides{
			Title:    q.Get("title"),
			Subtitle: q.Get("subtitle"),
			Width:    q.Get("width"),
			Height:   q.Get("height"),
			Class:    q.Get("class"),
		},
	}

	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return app.Request{}, badRequest("size must be a positive integer (got %q)", raw)
		}
		req.Size = size
	}

	inline, err := config.ParsePatchJSON([]byte(q.Get("patch")))
	if err != nil {
		return app.Request{}, err
	}
	req.Patches = append(req.Patches, inline)

	if r.Method == http.MethodPost {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, api.MaxBody))
		if err != nil {
			return app.Request{}, badRequest("read body: %v", err)
		}
		body, err := config.ParsePatchJSON(data)
		if err != nil {
			return app.Request{}, err
		}
		req.Patches = append(req.Patches, body)
	}

	flat, err := queryPatch(q)
	if err != nil {
		return app.Request{}, err
	}
	req.Patches = append(req.Patches, flat)
	return req, nil
}

// queryPatch turns the flat query shorthands into a patch, or nil when
// none is set.
func queryPatch(q url.Values) (*config.Patch, error) {
	var p config.Patch
	set := false
	if raw := q.Get("active"); raw != "" {
		p.TrafficLight = &config.TrafficLightPatch{Active: config.Ptr(config.Lens(raw))}
		set = true
	}
	if raw := q.Get("connector"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, badRequest("connector must be a boolean (got %q)", raw)
		}
		p.Connection = &config.ConnectionPatch{Enabled: config.Ptr(on)}
		set = true
	}
	if !set {
		return nil, nil
	}
	return &p, nil
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

func isClientError(err error) bool {
	var re *requestError
	return errors.As(err, &re) ||
		errors.Is(err, config.ErrInvalidPatch) ||
		errors.Is(err, render.ErrUnsupportedFormat)
}

func writeRequestError(w http.ResponseWriter, err error) {
	code := "bad_request"
	if errors.Is(err, config.ErrInvalidPatch) {
		code = "invalid_patch"
	}
	writeAPIError(w, http.StatusBadRequest, code, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
