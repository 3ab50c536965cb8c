package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_DrawTwiceRestores(t *testing.T) {
	fb := NewFramebuffer()
	sprite := font[0xA*glyphSize : 0xB*glyphSize]

	collided := fb.Draw([]byte{0xFF}, 3, 5)
	assert.False(t, collided)
	before := fb.Snapshot()

	collided = fb.Draw(sprite, 1, 4)
	assert.True(t, collided)

	collided = fb.Draw(sprite, 1, 4)
	assert.True(t, collided)
	assert.Equal(t, before, fb.Snapshot())
}

func TestFramebuffer_CollisionOnlyOnOverlap(t *testing.T) {
	fb := NewFramebuffer()

	assert.False(t, fb.Draw([]byte{0xF0}, 0, 0))
	assert.False(t, fb.Draw([]byte{0x0F}, 0, 0))
	assert.True(t, fb.Draw([]byte{0x01}, 0, 0))

	assert.True(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(6, 0))
	assert.False(t, fb.Pixel(7, 0))
}

func TestFramebuffer_WrapsHorizontally(t *testing.T) {
	fb := NewFramebuffer()

	fb.Draw([]byte{0xFF}, 60, 0)

	snapshot := fb.Snapshot()
	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		assert.True(t, snapshot[0][x])
	}
	for x := 4; x < 60; x++ {
		assert.False(t, snapshot[0][x])
	}
}

func TestFramebuffer_WrapsVertically(t *testing.T) {
	fb := NewFramebuffer()

	fb.Draw([]byte{0x80, 0x80, 0x80}, 0, 31)

	assert.True(t, fb.Pixel(0, 31))
	assert.True(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(0, 1))
	assert.False(t, fb.Pixel(0, 2))
}

func TestFramebuffer_WrapsLargeCoordinates(t *testing.T) {
	fb := NewFramebuffer()

	fb.Draw([]byte{0x80}, 255, 255)

	assert.True(t, fb.Pixel(255%Width, 255%Height))
	assert.True(t, fb.Pixel(-1, -1))
}

func TestFramebuffer_Clear(t *testing.T) {
	fb := NewFramebuffer()
	fb.Draw([]byte{0xFF, 0xFF}, 10, 10)

	fb.Clear()

	assert.Equal(t, Snapshot{}, fb.Snapshot())
}

func TestFramebuffer_SnapshotIsCopy(t *testing.T) {
	fb := NewFramebuffer()
	snapshot := fb.Snapshot()

	fb.Draw([]byte{0x80}, 0, 0)

	assert.False(t, snapshot[0][0])
	assert.True(t, fb.Snapshot()[0][0])
}

func TestSnapshot_String(t *testing.T) {
	fb := NewFramebuffer()
	fb.Draw([]byte{0xC0}, 0, 0)

	lines := strings.Split(strings.TrimSuffix(fb.Snapshot().String(), "\n"), "\n")

	assert.Len(t, lines, Height)
	assert.Equal(t, "##"+strings.Repeat(".", Width-2), lines[0])
	assert.Equal(t, strings.Repeat(".", Width), lines[1])
}
