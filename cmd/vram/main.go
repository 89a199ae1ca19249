// Command vram shows what is left in video memory.
//
// It allocates as many uninitialized width x height textures as fit the
// given number of megabytes and displays them one at a time. On most
// drivers the textures contain whatever earlier programs left behind.
//
// Usage:
//
//	vram [-v|--verbose] WIDTH HEIGHT MEGABYTES
//
// Keys: Right/Left step one buffer, Up/Down step ten, Space saves the
// displayed frame as frame_<n>.png, Escape or Q quits.
//
// Environment:
//
//	VRAM_BACKEND       auto, vulkan, metal, dx12, gl or software
//	VRAM_FRAME_FORMAT  bmp (default) or png
//	VRAM_OUTPUT_DIR    directory for saved frames (default ".")
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/vram"
	"github.com/gogpu/vram/integration/window"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv, window.Run))
}

// run is main without process globals. It returns the exit status.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string, show func(vram.Config) error) int {
	cfg, err := vram.ParseArgs(args)
	if err == nil {
		cfg, err = vram.LoadEnv(cfg, getenv)
	}
	if err != nil {
		var ue *vram.UsageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, ue.Reason)
			fmt.Fprintln(stderr, vram.Usage)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}

	level := vram.LevelNotice
	if cfg.Verbose {
		level = slog.LevelInfo
	}
	vram.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	count := cfg.BufferCount()
	if cfg.Verbose {
		fmt.Fprintln(stdout, count)
	}
	if count == 0 {
		fmt.Fprintln(stderr, vram.ErrNoBuffers)
		return 1
	}

	if err := show(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
