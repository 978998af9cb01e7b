package render

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/scene"
)

func composeDefault(patch *config.Patch, o config.Overrides) *scene.Scene {
	return scene.Compose(config.Resolve(patch, o), o)
}

func renderSVG(t *testing.T, s *scene.Scene) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewSVGRenderer().Render(&buf, s))
	return buf.Bytes()
}

func parseSVG(t *testing.T, data []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.Root()
	require.NotNil(t, root)
	return root
}

func TestSVG_RootAndDefs(t *testing.T) {
	root := parseSVG(t, renderSVG(t, composeDefault(nil, config.Overrides{})))

	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "0 0 100 100", root.SelectAttrValue("viewBox", ""))
	assert.Equal(t, "img", root.SelectAttrValue("role", ""))
	assert.Equal(t, "COMMIT TO YOU", root.SelectAttrValue("aria-label", ""))
	assert.Nil(t, root.SelectAttr("width"))
	assert.Nil(t, root.SelectAttr("class"))

	title := root.SelectElement("title")
	require.NotNil(t, title)
	assert.Equal(t, "COMMIT TO YOU", title.Text())

	defs := root.SelectElement("defs")
	require.NotNil(t, defs)
	assert.Len(t, defs.SelectElements("linearGradient"), 1)
	assert.Len(t, defs.SelectElements("radialGradient"), 1)
	filters := defs.SelectElements("filter")
	require.Len(t, filters, 1)
	assert.NotNil(t, filters[0].SelectElement("feGaussianBlur"))
}

func TestSVG_ElementOrderFollowsScene(t *testing.T) {
	s := composeDefault(nil, config.Overrides{})
	root := parseSVG(t, renderSVG(t, s))

	var ids []string
	for _, el := range root.ChildElements() {
		if el.Tag == "title" || el.Tag == "defs" {
			continue
		}
		ids = append(ids, el.SelectAttrValue("id", ""))
	}
	assert.Equal(t, s.Names(), ids)
}

func TestSVG_ByteIdenticalRepeats(t *testing.T) {
	a := renderSVG(t, composeDefault(nil, config.Overrides{}))
	b := renderSVG(t, composeDefault(nil, config.Overrides{}))
	assert.Equal(t, a, b)
}

func TestSVG_DisplayAttributes(t *testing.T) {
	s := composeDefault(nil, config.Overrides{Width: "640", Height: "640", Class: "cover"})
	root := parseSVG(t, renderSVG(t, s))
	assert.Equal(t, "640", root.SelectAttrValue("width", ""))
	assert.Equal(t, "640", root.SelectAttrValue("height", ""))
	assert.Equal(t, "cover", root.SelectAttrValue("class", ""))
}

func TestSVG_ConnectorDisabled(t *testing.T) {
	patch := &config.Patch{Connection: &config.ConnectionPatch{Enabled: config.Ptr(false)}}
	root := parseSVG(t, renderSVG(t, composeDefault(patch, config.Overrides{})))
	assert.Nil(t, root.FindElement("//path[@id='connector']"))
	assert.NotNil(t, root.FindElement("//g[@id='figure-left']"))
}

func TestSVG_ConnectorStyle(t *testing.T) {
	root := parseSVG(t, renderSVG(t, composeDefault(nil, config.Overrides{})))
	el := root.FindElement("//path[@id='connector']")
	require.NotNil(t, el)
	assert.Equal(t, "none", el.SelectAttrValue("fill", ""))
	assert.Equal(t, "1.2 1.1", el.SelectAttrValue("stroke-dasharray", ""))
	assert.Equal(t, "0.85", el.SelectAttrValue("opacity", ""))
}

func TestSVG_EscapesText(t *testing.T) {
	s := composeDefault(nil, config.Overrides{Title: `Tom & "Jerry" <3`})
	root := parseSVG(t, renderSVG(t, s))
	assert.Equal(t, `Tom & "Jerry" <3`, root.SelectAttrValue("aria-label", ""))

	title := root.FindElement("//text[@id='title']")
	require.NotNil(t, title)
	assert.Equal(t, `Tom & "Jerry" <3`, title.Text())
}

func TestSVG_GlowOnlyOnLitLens(t *testing.T) {
	patch := &config.Patch{TrafficLight: &config.TrafficLightPatch{Active: config.Ptr(config.LensRed)}}
	root := parseSVG(t, renderSVG(t, composeDefault(patch, config.Overrides{})))

	glows := root.FindElements("//circle[@filter]")
	require.Len(t, glows, 1)
	assert.Equal(t, "lens-red-glow", glows[0].SelectAttrValue("id", ""))
	assert.Equal(t, "url(#glow)", glows[0].SelectAttrValue("filter", ""))
}
