package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"handy-menu/clipboard"
	"handy-menu/config"
	"handy-menu/dispatch"
	"handy-menu/eventloop"
	"handy-menu/geometry"
	"handy-menu/hotkey"
	"handy-menu/logutil"
	"handy-menu/menu"
	"handy-menu/screens"
	"handy-menu/surface"
	"handy-menu/tray"
	"handy-menu/worker"
)

func main() {
	ensureSingleInstance()
	defer os.Remove(pidFile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	log.Printf("Handy Menu starting")
	log.Printf("Hotkey: %s", cfg.Hotkey)

	// Clipboard-backed actions degrade gracefully without a clipboard
	// (headless session); keystroke actions are unaffected.
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	}

	app := fyneapp.New()

	pool := worker.New(0)
	defer pool.Close()
	registry := dispatch.New(pool, 0)
	dispatch.RegisterBuiltins(registry, func() {
		fyne.Do(app.Quit)
	})

	loop := eventloop.New()
	ctrl := menu.NewController(menu.Options{
		Surface: surface.New(app, surface.Layout{
			InnerRadius: cfg.InnerRadius,
			OuterRadius: cfg.OuterRadius,
			BarGap:      cfg.BarGap,
		}),
		Dispatcher:     registry,
		Screens:        screens.New(),
		Post:           loop.PostTask,
		InnerRadius:    cfg.InnerRadius,
		OuterRadius:    cfg.OuterRadius,
		Margin:         cfg.Margin,
		BarGap:         cfg.BarGap,
		ToggleDebounce: cfg.ToggleDebounce,
	})
	if err := ctrl.RegisterSectors(menu.EvenSectors(cfg.Sectors)); err != nil {
		log.Fatalf("Invalid sector configuration: %v", err)
	}
	if len(cfg.BarButtons) > 0 {
		bar := menu.BarRow(cfg.BarButtons, cfg.BarButtonWidth, cfg.BarButtonHeight, cfg.BarSpacing)
		if err := ctrl.RegisterBarButtons(bar); err != nil {
			log.Fatalf("Invalid bar configuration: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx, ctrl)
	}()

	hotkey.Listen(cfg.Hotkey, sink{loop: loop})

	go tray.Run(tray.Config{
		Title:   "Handy Menu",
		Tooltip: fmt.Sprintf("Handy Menu - press %s", cfg.Hotkey),
		OnQuit: func() {
			fyne.Do(app.Quit)
		},
	})
	defer tray.Quit()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutting down due to signal...")
		fyne.Do(app.Quit)
	}()

	// The render thread must be the main goroutine.
	app.Run()

	cancel()
	<-loopDone
	log.Printf("Handy Menu stopped")
}

// sink forwards normalized input events from the hotkey monitor goroutine
// into the event loop. Post never blocks, so the global hook stays fast.
type sink struct {
	loop *eventloop.Loop
}

func (s sink) Toggle(p geometry.Point) {
	s.loop.Post(eventloop.Event{Kind: eventloop.KindToggle, Point: p})
}

func (s sink) PointerMoved(p geometry.Point) {
	s.loop.Post(eventloop.Event{Kind: eventloop.KindPointerMoved, Point: p})
}

func (s sink) Confirm() {
	s.loop.Post(eventloop.Event{Kind: eventloop.KindConfirm})
}

func (s sink) Cancel() {
	s.loop.Post(eventloop.Event{Kind: eventloop.KindCancel})
}

const pidFile = "handy-menu.pid"

// ensureSingleInstance kills a previously running instance, if any, and
// records our pid. Two instances would both grab the global hook and fight
// over the hotkey.
func ensureSingleInstance() {
	if pidBytes, err := os.ReadFile(pidFile); err == nil {
		if oldPid, err := strconv.Atoi(string(pidBytes)); err == nil {
			if process, err := os.FindProcess(oldPid); err == nil {
				log.Printf("Found existing instance with PID %d, killing it...", oldPid)
				process.Kill()
				process.Wait()
			}
		}
	}

	currentPid := os.Getpid()
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(currentPid)), 0644); err != nil {
		log.Printf("Warning: Could not write PID file: %v", err)
	} else {
		log.Printf("Running as PID %d", currentPid)
	}
}
