package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/gpu"
	"github.com/gekko3d/gizmo/platform"
	"github.com/gekko3d/gizmo/raster"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	clearColor      = wgpu.Color{R: 0.18, G: 0.18, B: 0.19, A: 1}
	screenshotColor = draw.Color{0.18, 0.18, 0.19, 1}
)

var shortcutKeys = []platform.Key{
	platform.KeyT, platform.KeyE, platform.KeyR, platform.KeyB,
	platform.KeyS, platform.KeyG, platform.KeyP,
}

func main() {
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	stylePath := flag.String("style", "", "YAML style file applied over the defaults")
	screenshot := flag.String("screenshot", "", "Render one frame to this PNG file and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	ortho := flag.Bool("ortho", false, "Start with an orthographic camera")
	flag.Parse()

	logger := gizmo.NewDefaultLogger("gizmodemo", *debug)
	style := loadStyle(*stylePath, logger)
	g := gizmo.New(gizmo.WithStyle(style), gizmo.WithLogger(logger))
	d := newDemo(g, logger, *ortho)

	var err error
	if *screenshot != "" {
		err = renderScreenshot(d, *width, *height, *screenshot)
	} else {
		err = run(d, *width, *height)
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// loadStyle falls back to the default style when path cannot be read.
func loadStyle(path string, logger gizmo.Logger) gizmo.Style {
	if path == "" {
		return gizmo.DefaultStyle()
	}
	style, err := gizmo.LoadStyleFile(path)
	if err != nil {
		logger.Warnf("style %s: %v, using defaults", path, err)
		return gizmo.DefaultStyle()
	}
	return style
}

// renderScreenshot draws a single frame without a window.
func renderScreenshot(d *demo, width, height int, path string) error {
	in := gizmo.Input{DisplayWidth: float32(width), DisplayHeight: float32(height)}
	d.frame(in)

	canvas := raster.New(width, height, screenshotColor)
	canvas.Render(d.lists()...)
	if err := canvas.SavePNG(path); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	d.logger.Infof("wrote %s", path)
	return nil
}

func run(d *demo, width, height int) error {
	win, err := platform.NewWindow(width, height, "Gizmo Demo")
	if err != nil {
		return err
	}
	defer win.Destroy()

	state, err := gpu.NewState(win.Glfw)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	defer state.Release()

	atlas, err := draw.NewDefaultAtlas(draw.DefaultFontSize)
	if err != nil {
		return fmt.Errorf("font atlas: %w", err)
	}
	pass, err := gpu.NewDrawListPass(state.Device, state.Queue, state.Config.Format, atlas)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	defer pass.Release()

	win.Glfw.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		state.Resize(w, h)
	})

	poller := platform.NewPoller(win)
	clock := platform.NewClock()
	var in gizmo.Input
	for !win.ShouldClose() {
		poller.Poll(&in, clock.Tick())
		if poller.Keys.Hit(platform.KeyEscape) {
			win.Close()
		}
		for _, k := range shortcutKeys {
			if poller.Keys.Hit(k) {
				d.handleKey(k)
			}
		}
		d.frame(in)

		fw, fh := win.FramebufferSize()
		if fw <= 0 || fh <= 0 {
			continue
		}
		if err := pass.Upload(state.Queue, uint32(fw), uint32(fh), d.lists()...); err != nil {
			d.logger.Errorf("%v", err)
			continue
		}
		err := state.Render(clearColor, func(p *wgpu.RenderPassEncoder) {
			pass.Draw(p, uint32(fw), uint32(fh))
		})
		if err != nil {
			d.logger.Errorf("%v", err)
		}
	}
	return nil
}
