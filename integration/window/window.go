// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"

	"github.com/gogpu/gogpu"

	"github.com/gogpu/vram"
	"github.com/gogpu/vram/internal/gpu"
)

// Title is the window title.
const Title = "vram"

var _ vram.Pool = (*gpu.Pool)(nil)

// Run opens a window of cfg.Width x cfg.Height, fills the VRAM budget with
// buffers and runs the interaction loop until the user quits or closes the
// window. It returns a *vram.InitError if the window or the pool could not
// be created.
func Run(cfg vram.Config) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(Title).
		WithSize(int(cfg.Width), int(cfg.Height)).
		WithContinuousRender(true))

	v := NewViewer(cfg, func() (vram.Pool, error) {
		pool, err := OpenPool(cfg, app.GPUContextProvider())
		if err != nil {
			return nil, err
		}
		return pool, nil
	}, func() { app.Quit() })

	app.OnDraw(func(dc *gogpu.Context) {
		_ = v.Frame(dc.AsTextureDrawer(), dc.Width(), dc.Height())
	})
	app.EventSource().OnKeyPress(v.HandleKey)
	app.OnClose(v.Close)

	if err := app.Run(); err != nil {
		v.Close()
		return &vram.InitError{Stage: "window", Err: err}
	}
	v.Close()
	return v.Err()
}

// OpenPool opens a device and allocates cfg.BufferCount() buffers on it.
//
// With the auto backend the window's own device is used when provider
// exposes it. Otherwise a device is opened on the configured backend.
func OpenPool(cfg vram.Config, provider any) (*gpu.Pool, error) {
	gpu.SetLogger(vram.Logger())

	dev, err := openDevice(cfg.Backend, provider)
	if err != nil {
		return nil, err
	}
	pool, err := gpu.NewPool(dev, cfg.Width, cfg.Height, cfg.BufferCount(),
		gpu.WithBudget(uint64(cfg.Megabytes)<<20))
	if err != nil {
		dev.Close()
		return nil, err
	}
	vram.Logger().Debug("pool memory", "stats", pool.Stats())
	return pool, nil
}

func openDevice(backend string, provider any) (*gpu.Device, error) {
	if (backend == "" || backend == vram.BackendAuto) && provider != nil {
		dev, err := gpu.Shared(provider)
		if err == nil {
			return dev, nil
		}
		if !errors.Is(err, gpu.ErrNoHalAccess) {
			return nil, err
		}
		vram.Logger().Debug("window device not shareable, opening own device", "err", err)
	}
	return gpu.Open(backend)
}
