package render

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers/pixel"
)

// Framebuffer is an in-memory monochrome Canvas. The host build uses it in
// place of the OLED, and tests read pixels back from it.
type Framebuffer struct {
	mu      sync.Mutex
	img     pixel.Image[pixel.Monochrome]
	shown   pixel.Image[pixel.Monochrome]
	w, h    int16
	flushes int

	// FlushErr, when set, is returned by Display without updating the shown frame.
	FlushErr error
}

func NewFramebuffer(w, h int16) *Framebuffer {
	return &Framebuffer{
		img:   pixel.NewImage[pixel.Monochrome](int(w), int(h)),
		shown: pixel.NewImage[pixel.Monochrome](int(w), int(h)),
		w:     w,
		h:     h,
	}
}

func (f *Framebuffer) Size() (int16, int16) { return f.w, f.h }

// SetPixel follows the SSD1306 convention: any non-black colour lights the pixel.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.mu.Lock()
	f.img.Set(int(x), int(y), pixel.Monochrome(c.R|c.G|c.B != 0))
	f.mu.Unlock()
}

func (f *Framebuffer) ClearBuffer() {
	f.mu.Lock()
	f.img.FillSolidColor(false)
	f.mu.Unlock()
}

// Display copies the working buffer to the shown frame.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FlushErr != nil {
		return f.FlushErr
	}
	copy(f.shown.RawBuffer(), f.img.RawBuffer())
	f.flushes++
	return nil
}

// Lit reports whether (x, y) is on in the last displayed frame.
func (f *Framebuffer) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return bool(f.shown.Get(int(x), int(y)))
}

// LitCount returns the number of lit pixels in the last displayed frame.
func (f *Framebuffer) LitCount() int {
	n := 0
	for y := int16(0); y < f.h; y++ {
		for x := int16(0); x < f.w; x++ {
			if f.Lit(x, y) {
				n++
			}
		}
	}
	return n
}

// Flushes returns how many frames were displayed successfully.
func (f *Framebuffer) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}
