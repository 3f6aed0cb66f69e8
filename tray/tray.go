// Package tray puts a status item in the system tray while the app runs in
// the background (it has no regular window of its own).
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

type Config struct {
	Title   string
	Tooltip string
	OnQuit  func()
}

// Run blocks running the tray loop; call it from its own goroutine.
func Run(cfg Config) {
	systray.Run(func() { onReady(cfg) }, func() {})
}

// Quit stops the tray loop.
func Quit() {
	systray.Quit()
}

func onReady(cfg Config) {
	systray.SetTitle(cfg.Title)
	systray.SetTooltip(cfg.Tooltip)

	mQuit := systray.AddMenuItem("Quit", "Quit "+cfg.Title)

	go func() {
		<-mQuit.ClickedCh
		log.Printf("tray: quit requested")
		if cfg.OnQuit != nil {
			cfg.OnQuit()
		}
		systray.Quit()
	}()
}
