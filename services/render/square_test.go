package render

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"joydisplay-go/types"
)

func TestRenderSquareOutline(t *testing.T) {
	fb := NewFramebuffer(128, 64)
	sq := NewSquare(fb, 8, nil)

	sq.RenderSquare(types.ScreenPosition{X: 60, Y: 27})

	if fb.Flushes() != 1 {
		t.Fatalf("flushes = %d, want 1", fb.Flushes())
	}
	// 8x8 outline has 28 border pixels.
	if n := fb.LitCount(); n != 28 {
		t.Fatalf("lit pixels = %d, want 28", n)
	}
	for _, p := range [][2]int16{{60, 27}, {67, 27}, {60, 34}, {67, 34}, {63, 27}, {60, 30}} {
		if !fb.Lit(p[0], p[1]) {
			t.Fatalf("border pixel %v not lit", p)
		}
	}
	if fb.Lit(63, 30) {
		t.Fatal("interior pixel lit; square should be unfilled")
	}
}

func TestRenderSquareClearsPreviousFrame(t *testing.T) {
	fb := NewFramebuffer(128, 64)
	sq := NewSquare(fb, 8, nil)

	sq.RenderSquare(types.ScreenPosition{X: 0, Y: 0})
	sq.RenderSquare(types.ScreenPosition{X: 120, Y: 56})

	if fb.Lit(0, 0) {
		t.Fatal("old marker still visible")
	}
	if !fb.Lit(127, 63) {
		t.Fatal("new marker missing at bottom-right corner")
	}
	if n := fb.LitCount(); n != 28 {
		t.Fatalf("lit pixels = %d, want 28", n)
	}
}

func TestRenderSquareAbsorbsFlushErrors(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	fb := NewFramebuffer(128, 64)
	sq := NewSquare(fb, 8, log)

	fb.FlushErr = errors.New("i2c nack")
	sq.RenderSquare(types.ScreenPosition{X: 10, Y: 10})
	sq.RenderSquare(types.ScreenPosition{X: 11, Y: 10})

	if sq.Failures() != 2 {
		t.Fatalf("failures = %d, want 2", sq.Failures())
	}
	if c := strings.Count(buf.String(), "display flush failed"); c != 1 {
		t.Fatalf("failure logged %d times, want once:\n%s", c, buf.String())
	}
	if !strings.Contains(buf.String(), "code=display_down") {
		t.Fatalf("missing code in log:\n%s", buf.String())
	}

	fb.FlushErr = nil
	sq.RenderSquare(types.ScreenPosition{X: 12, Y: 10})
	if !strings.Contains(buf.String(), "display recovered") {
		t.Fatalf("missing recovery log:\n%s", buf.String())
	}
	if fb.Flushes() != 1 {
		t.Fatalf("flushes = %d, want 1", fb.Flushes())
	}
}

func TestOutlineClipsAtEdges(t *testing.T) {
	fb := NewFramebuffer(16, 8)
	fb.ClearBuffer()
	Outline(fb, 12, 4, 8, 8, white) // mostly off-panel
	if err := fb.Display(); err != nil {
		t.Fatal(err)
	}
	if !fb.Lit(12, 4) || !fb.Lit(15, 4) || !fb.Lit(12, 7) {
		t.Fatal("visible part of clipped outline missing")
	}
}
