package chip8

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Snapshot is a read-only copy of the display, indexed [y][x].
type Snapshot [Height][Width]bool

// String renders the snapshot as rows of '#' (lit) and '.' (unlit) pixels.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range s {
		for x := range s[y] {
			if s[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Framebuffer is the monochrome 64x32 display. All coordinates wrap around
// the display edges.
type Framebuffer struct {
	pixels Snapshot
}

// NewFramebuffer returns a cleared framebuffer.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns off all pixels.
func (f *Framebuffer) Clear() {
	f.pixels = Snapshot{}
}

// Draw XORs the sprite onto the display with its top left corner at x, y.
// Each sprite byte is one row of 8 pixels, most significant bit first.
// It returns whether any lit pixel was turned off.
func (f *Framebuffer) Draw(sprite []byte, x, y int) bool {
	collided := false
	for j, row := range sprite {
		py := wrap(y+j, Height)
		for i := range 8 {
			if row&(0x80>>i) == 0 {
				continue
			}
			px := wrap(x+i, Width)
			if f.pixels[py][px] {
				collided = true
			}
			f.pixels[py][px] = !f.pixels[py][px]
		}
	}
	return collided
}

// Pixel returns whether the pixel at the wrapped position is lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[wrap(y, Height)][wrap(x, Width)]
}

// Snapshot returns a copy of the current display content.
func (f *Framebuffer) Snapshot() Snapshot {
	return f.pixels
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
