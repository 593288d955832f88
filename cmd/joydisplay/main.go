// Command joydisplay drives an SSD1306 marker and an RGB LED from an
// analogue joystick on a Raspberry Pi Pico.
//
// Build for the board with
//
//	tinygo flash -target=pico ./cmd/joydisplay
//
// and pick another embedded profile with -ldflags "-X main.device=pico-debug".
package main

import (
	"context"
	"log/slog"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/errcode"
	"joydisplay-go/services/config"
	"joydisplay-go/services/control"
	"joydisplay-go/services/hal"
	"joydisplay-go/services/heartbeat"
	"joydisplay-go/services/render"
	"joydisplay-go/x/timex"
)

var device = "pico"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	cfg, err := config.Load(device)
	if err != nil {
		println("[main] config:", err.Error(), "- using defaults")
		cfg = config.DefaultConfig()
	}

	board, err := hal.Open(cfg)
	if err != nil {
		halt("[main] hal:", err)
	}
	level, _ := config.ParseLogLevel(cfg.Console.LogLevel)
	log := slog.New(slog.NewTextHandler(board.Console, &slog.HandlerOptions{Level: level}))
	log.Info("boot", "device", device)
	if board.DisplayErr != nil {
		log.Warn("display unavailable", "code", errcode.Of(board.DisplayErr), "err", board.DisplayErr)
	}

	b := bus.NewBus(8)
	st := control.NewSharedState()

	btns := control.NewButtons(st, board.LEDs)
	if err := board.WatchButtons(timex.SinceBoot(), btns.HandleEdge); err != nil {
		log.Error("buttons unavailable", "code", errcode.Of(err), "err", err)
	}

	if iv := cfg.HeartbeatInterval(); iv > 0 {
		_ = heartbeat.New(iv, st.Stats, log).Start(ctx, b.NewConnection("heartbeat"))
	}

	loop := control.NewLoop(
		board.Joystick,
		render.NewSquare(board.Display, control.MarkerSize, log),
		board.LEDs,
		st,
		control.LoopConfig{Conn: b.NewConnection("control"), Logger: log},
	)
	_ = loop.Run(ctx)
}

// halt reports a fatal bring-up error and parks; the board has no console
// logger yet at this point.
func halt(msg string, err error) {
	for {
		println(msg, err.Error())
		time.Sleep(5 * time.Second)
	}
}
