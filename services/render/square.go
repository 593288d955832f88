// Package render draws the joystick marker onto a monochrome panel.
package render

import (
	"image/color"
	"log/slog"
	"sync/atomic"

	"tinygo.org/x/drivers"

	"joydisplay-go/errcode"
	"joydisplay-go/types"
)

// Canvas is a buffered display: pixels are set in RAM and pushed by Display.
// *ssd1306.Device satisfies it on the board and *Framebuffer on the host.
type Canvas interface {
	drivers.Displayer
	ClearBuffer()
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Square renders an unfilled square marker. Display failures are counted and
// logged once per distinct code; they never reach the caller.
type Square struct {
	c    Canvas
	size int16
	log  *slog.Logger

	failures atomic.Uint32
	lastCode errcode.Code
}

func NewSquare(c Canvas, size int16, log *slog.Logger) *Square {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Square{c: c, size: size, log: log, lastCode: errcode.OK}
}

// RenderSquare clears the frame, outlines the marker at pos and flushes.
func (s *Square) RenderSquare(pos types.ScreenPosition) {
	s.c.ClearBuffer()
	Outline(s.c, int16(pos.X), int16(pos.Y), s.size, s.size, white)

	code := errcode.OK
	if err := s.c.Display(); err != nil {
		s.failures.Add(1)
		code = errcode.MapDriverErr(err, errcode.DisplayDown)
		if code != s.lastCode {
			s.log.Warn("display flush failed", "code", string(code), "err", err)
		}
	} else if s.lastCode != errcode.OK {
		s.log.Info("display recovered", "after", string(s.lastCode))
	}
	s.lastCode = code
}

// Failures returns how many flushes have failed.
func (s *Square) Failures() uint32 { return s.failures.Load() }

// Outline draws the border of a w x h rectangle with its corner at (x, y).
func Outline(d drivers.Displayer, x, y, w, h int16, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	for i := int16(0); i < w; i++ {
		d.SetPixel(x+i, y, c)
		d.SetPixel(x+i, y+h-1, c)
	}
	for j := int16(1); j < h-1; j++ {
		d.SetPixel(x, y+j, c)
		d.SetPixel(x+w-1, y+j, c)
	}
}
