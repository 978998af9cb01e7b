package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/render"
	"github.com/rook-computer/cover/internal/state"
)

// captureRender records the last request and returns a fixed document.
type captureRender struct {
	last app.Request
	err  error
}

func (c *captureRender) render(ctx context.Context, req app.Request) ([]byte, string, error) {
	c.last = req
	if c.err != nil {
		return nil, "", c.err
	}
	return []byte("<svg/>"), "image/svg+xml", nil
}

func serve(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestCover_QueryParams(t *testing.T) {
	c := &captureRender{}
	mux := NewDefaultMux("", APIV1{Render: c.render})

	q := url.Values{
		"title":     {"SHIP IT"},
		"width":     {"320"},
		"class":     {"hero"},
		"size":      {"256"},
		"active":    {"red"},
		"connector": {"false"},
		"patch":     {`{"palette":{"green":"#00ff99"}}`},
	}
	rec := serve(t, mux, http.MethodGet, "/api/v1/cover.png?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "6", rec.Header().Get("Content-Length"))
	assert.Equal(t, "<svg/>", rec.Body.String())

	req := c.last
	assert.Equal(t, render.FormatPNG, req.Format)
	assert.Equal(t, 256, req.Size)
	assert.Equal(t, config.Overrides{Title: "SHIP IT", Width: "320", Class: "hero"}, req.Overrides)

	cfg := req.Config()
	assert.Equal(t, config.LensRed, cfg.TrafficLight.Active)
	assert.False(t, cfg.Connection.Enabled)
	assert.Equal(t, "#00ff99", cfg.Palette.Green)
	assert.Equal(t, "SHIP IT", cfg.Text.Title)
}

func TestCover_PostBodyOverBase(t *testing.T) {
	c := &captureRender{}
	base := &config.Patch{Text: &config.TextPatch{Subtitle: config.Ptr("from config")}}
	mux := NewDefaultMux("", APIV1{Render: c.render, Base: []*config.Patch{base}})

	body := strings.NewReader(`{"trafficLight":{"active":"amber"}}`)
	rec := serve(t, mux, http.MethodPost, "/api/v1/cover.svg?active=red", body)
	require.Equal(t, http.StatusOK, rec.Code)

	cfg := c.last.Config()
	assert.Equal(t, render.FormatSVG, c.last.Format)
	assert.Equal(t, "from config", cfg.Text.Subtitle)
	// Query shorthands are merged last.
	assert.Equal(t, config.LensRed, cfg.TrafficLight.Active)
}

func TestCover_BadRequests(t *testing.T) {
	c := &captureRender{}
	mux := NewDefaultMux("", APIV1{Render: c.render})

	for name, tc := range map[string]struct {
		method, target, body, code string
	}{
		"unknown patch key":   {http.MethodGet, "/api/v1/cover.svg?patch=" + url.QueryEscape(`{"nope":1}`), "", "invalid_patch"},
		"broken body":         {http.MethodPost, "/api/v1/cover.svg", `{"text":`, "invalid_patch"},
		"trailing patch data": {http.MethodGet, "/api/v1/cover.svg?patch=" + url.QueryEscape(`{"text":{}} junk`), "", "invalid_patch"},
		"bad size":            {http.MethodGet, "/api/v1/cover.png?size=big", "", "bad_request"},
		"zero size":           {http.MethodGet, "/api/v1/cover.png?size=0", "", "bad_request"},
		"bad connector":       {http.MethodGet, "/api/v1/cover.svg?connector=maybe", "", "bad_request"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, mux, tc.method, tc.target, strings.NewReader(tc.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Error)
		})
	}
}

func TestCover_MethodNotAllowed(t *testing.T) {
	mux := NewDefaultMux("", APIV1{Render: (&captureRender{}).render})

	rec := serve(t, mux, http.MethodDelete, "/api/v1/cover.svg", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	assert.Equal(t, "method_not_allowed", decodeError(t, rec).Error)

	rec = serve(t, mux, http.MethodPost, "/api/v1/config", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCover_RenderErrors(t *testing.T) {
	c := &captureRender{err: errors.New("disk on fire")}
	mux := NewDefaultMux("", APIV1{Render: c.render})
	rec := serve(t, mux, http.MethodGet, "/api/v1/cover.svg", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "render_failed", decodeError(t, rec).Error)

	mux = NewDefaultMux("", APIV1{})
	rec = serve(t, mux, http.MethodGet, "/api/v1/cover.svg", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestConfigEndpoint(t *testing.T) {
	mux := NewDefaultMux("", APIV1{})
	rec := serve(t, mux, http.MethodGet, "/api/v1/config?active=amber&subtitle=hi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var cfg config.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, config.LensAmber, cfg.TrafficLight.Active)
	assert.Equal(t, "hi", cfg.Text.Subtitle)
	assert.Equal(t, config.Default().Figures, cfg.Figures)
}

func TestHealthzAndUI(t *testing.T) {
	mux := NewDefaultMux("", APIV1{})

	rec := serve(t, mux, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = serve(t, mux, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/cover.")

	rec = serve(t, NewDefaultMux(t.TempDir()+"/missing", APIV1{}), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCover_EndToEnd(t *testing.T) {
	a := app.New(state.NewStore(4), nil)
	mux := NewDefaultMux("", APIV1{Render: a.Render})

	rec := serve(t, mux, http.MethodGet, "/api/v1/cover.svg?title=HELLO", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `aria-label="HELLO"`)

	rec = serve(t, mux, http.MethodGet, "/api/v1/cover.png?size=48", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])
}

func TestWithDevCORS(t *testing.T) {
	h := WithDevCORS(NewDefaultMux("", APIV1{}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cover.svg", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(t, h, http.MethodGet, "/healthz", nil)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCacheEndpoint(t *testing.T) {
	a := app.New(state.NewStore(4), nil)
	mux := NewDefaultMux("", APIV1{Render: a.Render, Cache: a.Cache})

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, serve(t, mux, http.MethodGet, "/api/v1/cover.svg", nil).Code)
	}
	rec := serve(t, mux, http.MethodGet, "/api/v1/cache", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats state.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, state.Stats{Hits: 1, Misses: 1, Entries: 1}, stats)

	rec = serve(t, mux, http.MethodDelete, "/api/v1/cache", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, a.Cache.Snapshot().Entries)

	rec = serve(t, mux, http.MethodPost, "/api/v1/cache", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(t, NewDefaultMux("", APIV1{}), http.MethodGet, "/api/v1/cache", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
