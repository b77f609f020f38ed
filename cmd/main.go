// Package main is the production entry point for Live Spectrum.
//
// Live Spectrum plays a built-in test signal and draws its frequency spectrum
// as a bar strip and three concentric rings:
// - Live analysis of the playing output when available
// - Simulated motion otherwise, with no interruption
// - Event-driven communication between playback, controller and UI
//
// Build:
//
//	go build -o build/livespectrum ./cmd
//
// Run:
//
//	./build/livespectrum
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tejashwikalptaru/livespectrum/internal/app"
)

func main() {
	config := app.DefaultConfig()

	// Play through the real speaker
	config.UseMockAudio = false

	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	defer func() {
		fmt.Println("\nShutting down...")
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
		fmt.Println("Shutdown complete")
	}()

	// Blocks until the window is closed
	application.Run()

	fmt.Println("Application exited cleanly")
}
