// Package gpu renders gizmo draw lists with WebGPU.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// State is the device and swapchain of one window.
type State struct {
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
	Device  *wgpu.Device
	Queue   *wgpu.Queue
	Config  *wgpu.SurfaceConfiguration
}

// NewState wraps win into a surface and configures it with vsync.
func NewState(win *glfw.Window) (*State, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Gizmo Device"})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	width, height := win.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	config := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, config)

	return &State{
		Surface: surface,
		Adapter: adapter,
		Device:  device,
		Queue:   device.GetQueue(),
		Config:  config,
	}, nil
}

// Resize reconfigures the swapchain. Zero sizes (minimized windows) are
// ignored.
func (s *State) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if uint32(width) == s.Config.Width && uint32(height) == s.Config.Height {
		return
	}
	s.Config.Width = uint32(width)
	s.Config.Height = uint32(height)
	s.Surface.Configure(s.Adapter, s.Device, s.Config)
}

// Render clears the next swapchain image, records one render pass through
// draw and presents it.
func (s *State) Render(clear wgpu.Color, draw func(pass *wgpu.RenderPassEncoder)) error {
	next, err := s.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := s.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clear,
		}},
	})
	draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()
	s.Queue.Submit(cmd)
	s.Surface.Present()
	return nil
}

func (s *State) Release() {
	s.Queue.Release()
	s.Device.Release()
	s.Adapter.Release()
	s.Surface.Release()
}
