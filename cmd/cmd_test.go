package cmd

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/observability"
	"github.com/rook-computer/cover/internal/render"
)

// inTempDir moves the test into an empty working directory so no stray
// ./cover.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, ctx context.Context, args ...string) (stdout string, err error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err = root.ExecuteContext(ctx)
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	inTempDir(t)
	out, err := run(t, context.Background(), "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestRender_SVGToStdout(t *testing.T) {
	inTempDir(t)
	out, err := run(t, context.Background(), "render", "--title", "HELLO", "--class", "hero")
	require.NoError(t, err)
	assert.Contains(t, out, `aria-label="HELLO"`)
	assert.Contains(t, out, `class="hero"`)
	assert.Contains(t, out, `id="connector"`)
}

func TestRender_PNGFromExtension(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "cover.png")

	out, err := run(t, context.Background(), "render", "-o", path, "--size", "40")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestRender_FormatFlagWinsOverExtension(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "cover.png")

	_, err := run(t, context.Background(), "render", "-o", path, "--format", "svg")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRender_ConfigFile(t *testing.T) {
	dir := inTempDir(t)
	yaml := []byte(`
cover:
  trafficLight:
    active: amber
  text:
    subtitle: from the file
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.yaml"), yaml, 0o644))

	out, err := run(t, context.Background(), "render")
	require.NoError(t, err)
	assert.Contains(t, out, `id="lens-amber-glow"`)
	assert.NotContains(t, out, `id="lens-green-glow"`)
	assert.Contains(t, out, "from the file")

	// --patch is merged over the file.
	out, err = run(t, context.Background(), "render", "--patch", `{"trafficLight":{"active":"red"}}`)
	require.NoError(t, err)
	assert.Contains(t, out, `id="lens-red-glow"`)
	assert.Contains(t, out, "from the file")
}

func TestRender_Environment(t *testing.T) {
	inTempDir(t)
	t.Setenv("COVER_OUTPUT_FORMAT", "png")
	t.Setenv("COVER_OUTPUT_SIZE", "16")

	out, err := run(t, context.Background(), "render")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestRender_PatchFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "patch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"connection":{"enabled":false}}`), 0o644))

	out, err := run(t, context.Background(), "render", "--patch", "@"+path)
	require.NoError(t, err)
	assert.NotContains(t, out, `id="connector"`)
	assert.Contains(t, out, `id="figure-left"`)
}

func TestRender_Errors(t *testing.T) {
	dir := inTempDir(t)

	_, err := run(t, context.Background(), "render", "--patch", `{"nope":true}`)
	assert.ErrorIs(t, err, config.ErrInvalidPatch)

	_, err = run(t, context.Background(), "render", "--format", "gif")
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)

	_, err = run(t, context.Background(), "--config", filepath.Join(dir, "missing.yaml"), "render")
	assert.Error(t, err)

	_, err = run(t, context.Background(), "render", "extra")
	assert.Error(t, err)
}

func TestDisplay_NoFramebuffer(t *testing.T) {
	dir := inTempDir(t)

	_, err := run(t, context.Background(), "display", "--device", filepath.Join(dir, "fb-missing"), "--exit-key", "none")
	assert.ErrorIs(t, err, render.ErrNoFramebuffer)

	_, err = run(t, context.Background(), "display", "--exit-key", "space")
	assert.ErrorContains(t, err, "unknown exit key")
}

func TestServe_StopsWithContext(t *testing.T) {
	inTempDir(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := run(t, ctx, "serve", "--listen", "127.0.0.1:0", "--cache", "2")
	assert.NoError(t, err)
}

func TestOutputFormat(t *testing.T) {
	for _, tc := range []struct {
		format, path string
		want         render.Format
	}{
		{"", "", render.FormatSVG},
		{"", "out.PNG", render.FormatPNG},
		{"", "out.txt", render.FormatSVG},
		{"png", "out.svg", render.FormatPNG},
	} {
		got, err := outputFormat(tc.format, tc.path)
		require.NoError(t, err, tc)
		assert.Equal(t, tc.want, got, tc)
	}
}

func TestCoverFlags_TextPatch(t *testing.T) {
	assert.Nil(t, (&coverFlags{}).textPatch())

	p := (&coverFlags{title: "T"}).textPatch()
	require.NotNil(t, p)
	cfg := config.Merge(config.Default(), p)
	assert.Equal(t, "T", cfg.Text.Title)
	assert.Equal(t, config.Default().Text.Subtitle, cfg.Text.Subtitle)
}
