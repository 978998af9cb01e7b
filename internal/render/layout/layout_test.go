package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitSquare(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 480, 480), FitSquare(image.Rect(0, 0, 800, 480)))
	assert.Equal(t, image.Rect(10, 20, 110, 120), FitSquare(image.Rect(10, 20, 110, 400)))
}

func TestCenter(t *testing.T) {
	got := Center(image.Rect(0, 0, 800, 480), 480, 480)
	assert.Equal(t, image.Rect(160, 0, 640, 480), got)

	// Larger than the container is clamped.
	got = Center(image.Rect(0, 0, 100, 50), 200, 200)
	assert.Equal(t, image.Rect(0, 0, 100, 50), got)
}

func TestLetterbox(t *testing.T) {
	t.Run("landscape", func(t *testing.T) {
		assert.Equal(t, image.Rect(680, 20, 1240, 580), Letterbox(image.Rect(0, 0, 1920, 600), 20))
	})
	t.Run("portrait", func(t *testing.T) {
		assert.Equal(t, image.Rect(0, 100, 300, 400), Letterbox(image.Rect(0, 0, 300, 500), 0))
	})
}

func TestInset(t *testing.T) {
	assert.Equal(t, image.Rect(5, 5, 95, 45), Inset(image.Rect(0, 0, 100, 50), 5))
	assert.Equal(t, image.Rect(0, 0, 100, 50), Inset(image.Rect(0, 0, 100, 50), 0))
}
