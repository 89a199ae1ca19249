package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/vram"
)

func noEnv(string) string { return "" }

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"100", "100"},
		{"-x", "100", "100", "4"},
		{"abc", "100", "4"},
	} {
		var stdout, stderr bytes.Buffer
		called := false
		code := run(args, &stdout, &stderr, noEnv, func(vram.Config) error {
			called = true
			return nil
		})
		if code != 1 || called {
			t.Errorf("run(%q) = %d, show called %v", args, code, called)
		}
		if !strings.Contains(stderr.String(), vram.Usage) {
			t.Errorf("run(%q) stderr = %q, want usage", args, stderr.String())
		}
	}
}

func TestRunVerbosePrintsCount(t *testing.T) {
	t.Cleanup(func() { vram.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	var got vram.Config
	code := run([]string{"-v", "100", "100", "4"}, &stdout, &stderr, noEnv, func(cfg vram.Config) error {
		got = cfg
		return nil
	})
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	if stdout.String() != "104\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if got.Width != 100 || got.Height != 100 || !got.Verbose {
		t.Errorf("config = %+v", got)
	}
}

func TestRunQuiet(t *testing.T) {
	t.Cleanup(func() { vram.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	code := run([]string{"100", "100", "4"}, &stdout, &stderr, noEnv, func(vram.Config) error {
		ctx := context.Background()
		if vram.Logger().Enabled(ctx, slog.LevelInfo) {
			t.Error("progress logging enabled without -v")
		}
		if !vram.Logger().Enabled(ctx, vram.LevelNotice) {
			t.Error("save notices disabled without -v")
		}
		return nil
	})
	if code != 0 || stdout.Len() != 0 {
		t.Errorf("code = %d stdout = %q", code, stdout.String())
	}
}

func TestRunNoBuffers(t *testing.T) {
	t.Cleanup(func() { vram.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	called := false
	code := run([]string{"-v", "2000", "2000", "1"}, &stdout, &stderr, noEnv, func(vram.Config) error {
		called = true
		return nil
	})
	if code != 1 || called {
		t.Errorf("code = %d called = %v", code, called)
	}
	if stdout.String() != "0\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunInitError(t *testing.T) {
	t.Cleanup(func() { vram.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	code := run([]string{"64", "64", "1"}, &stdout, &stderr, noEnv, func(vram.Config) error {
		return &vram.InitError{Stage: "gpu", Err: errors.New("no adapter")}
	})
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "gpu initialization failed: no adapter") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunEnv(t *testing.T) {
	t.Cleanup(func() { vram.SetLogger(nil) })

	env := map[string]string{vram.EnvBackend: "software", vram.EnvFrameFormat: "png"}
	var got vram.Config
	code := run([]string{"8", "8", "1"}, &bytes.Buffer{}, &bytes.Buffer{},
		func(k string) string { return env[k] },
		func(cfg vram.Config) error { got = cfg; return nil })
	if code != 0 || got.Backend != vram.BackendSoftware || got.FrameFormat != vram.FormatPNG {
		t.Errorf("code = %d config = %+v", code, got)
	}

	env[vram.EnvBackend] = "mantle"
	var stderr bytes.Buffer
	if code := run([]string{"8", "8", "1"}, &bytes.Buffer{}, &stderr,
		func(k string) string { return env[k] },
		func(vram.Config) error { return nil }); code != 1 {
		t.Errorf("bad backend exit code = %d", code)
	}
}
