// cmd/boardtest/main.go
//
// boardtest exercises every peripheral on the joystick board in a loop so
// wiring faults show up without the control firmware in the way.
package main

import (
	"log/slog"
	"sync/atomic"
	"time"

	"joydisplay-go/errcode"
	"joydisplay-go/services/config"
	"joydisplay-go/services/control"
	"joydisplay-go/services/hal"
	"joydisplay-go/services/render"
	"joydisplay-go/types"
	"joydisplay-go/x/strx"
	"joydisplay-go/x/timex"
)

// ---------- Configuration ----------

const (
	// Sequencing timing
	rampStep  = 20 * time.Millisecond
	markDwell = 400 * time.Millisecond
	pressWait = 5 * time.Second

	// Samples taken per cycle to judge the stick
	samplesPerCycle = 20

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

var device string

// Marker test positions: four corners then centre.
var marks = []types.ScreenPosition{
	{X: 0, Y: 0},
	{X: control.ScreenWidth - control.MarkerSize, Y: 0},
	{X: control.ScreenWidth - control.MarkerSize, Y: control.ScreenHeight - control.MarkerSize},
	{X: 0, Y: control.ScreenHeight - control.MarkerSize},
	{X: (control.ScreenWidth - control.MarkerSize) / 2, Y: (control.ScreenHeight - control.MarkerSize) / 2},
}

// ---------- Helpers ----------

func rampPWM(leds *hal.LEDs, ch types.LEDChannel) {
	for lvl := 0; lvl <= 255; lvl += 15 {
		leds.SetPWM(ch, uint8(lvl))
		time.Sleep(rampStep)
	}
	for lvl := 255; lvl >= 0; lvl -= 15 {
		leds.SetPWM(ch, uint8(lvl))
		time.Sleep(rampStep)
	}
}

func flashPassFail(leds *hal.LEDs, pass bool) {
	if pass {
		// Double short
		for i := 0; i < 2; i++ {
			leds.SetDigital(true)
			time.Sleep(120 * time.Millisecond)
			leds.SetDigital(false)
			time.Sleep(200 * time.Millisecond)
		}
		return
	}
	// Single long
	leds.SetDigital(true)
	time.Sleep(400 * time.Millisecond)
	leds.SetDigital(false)
	time.Sleep(200 * time.Millisecond)
}

// sampleStick reads the stick and reports the observed range per axis.
func sampleStick(j *hal.Joystick) (minX, maxX, minY, maxY types.AxisSample) {
	minX, minY = types.AxisMax, types.AxisMax
	for i := 0; i < samplesPerCycle; i++ {
		x, y := j.Sample()
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
		time.Sleep(10 * time.Millisecond)
	}
	return
}

// stuck reports an axis pinned to a rail, which is what a floating or
// shorted ADC input looks like.
func stuck(lo, hi types.AxisSample) bool {
	return lo == hi && (lo == types.AxisMin || lo == types.AxisMax)
}

// ---------- Main ----------

func main() {
	time.Sleep(2 * time.Second)

	name := strx.First(device, "pico-debug")
	cfg, err := config.Load(name)
	if err != nil {
		println("[boardtest] config:", err.Error())
		return
	}
	board, err := hal.Open(cfg)
	if err != nil {
		println("[boardtest] hal:", err.Error())
		return
	}
	log := slog.New(slog.NewTextHandler(board.Console, &slog.HandlerOptions{Level: slog.LevelDebug}))
	log.Info("boardtest starting", "device", name)
	if board.DisplayErr != nil {
		log.Error("display unavailable", "code", errcode.Of(board.DisplayErr))
	}

	// Buttons only count here; no debounce, so bounces show up too.
	var presses [types.NumButtons]atomic.Uint32
	err = board.WatchButtons(timex.SinceBoot(), func(id types.ButtonID, _ uint32) bool {
		presses[id].Add(1)
		return true
	})
	if err != nil {
		log.Error("buttons unavailable", "code", errcode.Of(err))
	}

	sq := render.NewSquare(board.Display, control.MarkerSize, log)

	cycle := 0
	for {
		cycle++
		log.Info("boardtest cycle", "cycle", cycle)

		rampPWM(board.LEDs, types.LEDRed)
		rampPWM(board.LEDs, types.LEDBlue)

		for _, m := range marks {
			sq.RenderSquare(m)
			time.Sleep(markDwell)
		}

		minX, maxX, minY, maxY := sampleStick(board.Joystick)
		log.Info("joystick", "x_min", minX, "x_max", maxX, "y_min", minY, "y_max", maxY)

		log.Info("press both buttons", "within", pressWait)
		var before [types.NumButtons]uint32
		for i := range presses {
			before[i] = presses[i].Load()
		}
		time.Sleep(pressWait)

		miss := make([]string, 0, 3)
		if sq.Failures() > 0 {
			miss = append(miss, "display")
		}
		if stuck(minX, maxX) || stuck(minY, maxY) {
			miss = append(miss, "joystick")
		}
		for id := types.ButtonID(0); id < types.NumButtons; id++ {
			if presses[id].Load() == before[id] {
				miss = append(miss, "button "+id.String())
			}
		}

		pass := len(miss) == 0
		if pass {
			log.Info("PASS")
		} else {
			log.Warn("FAIL", "missing", miss)
		}
		flashPassFail(board.LEDs, pass)

		if cyclesToRun > 0 && cycle >= cyclesToRun {
			log.Info("completed; halting", "cycles", cycle)
			return
		}
	}
}
