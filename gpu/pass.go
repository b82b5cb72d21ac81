package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/gpu/shaders"
)

const (
	vertexMargin = 1024
	uniformSize  = 16
)

// DrawListPass draws tessellated draw lists as alpha blended triangles on
// top of whatever the render pass already holds.
type DrawListPass struct {
	Pipeline     *wgpu.RenderPipeline
	BindGroup    *wgpu.BindGroup
	VertexBuffer *wgpu.Buffer
	VertexCap    uint32
	Uniform      *wgpu.Buffer
	Sampler      *wgpu.Sampler
	AtlasView    *wgpu.TextureView
	Device       *wgpu.Device

	atlas *draw.Atlas
	mesh  draw.Mesh
}

// NewDrawListPass builds the pipeline for format and uploads the atlas
// used for labels.
func NewDrawListPass(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, atlas *draw.Atlas) (*DrawListPass, error) {
	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "OverlayShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.OverlayWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "OverlayPipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(draw.Vertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
					Alpha: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("overlay pipeline: %w", err)
	}

	uniform, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "OverlayScreen",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay uniform: %w", err)
	}

	atlasView, err := uploadAtlas(device, queue, atlas)
	if err != nil {
		return nil, err
	}
	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay sampler: %w", err)
	}

	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "OverlayBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniform, Size: uniformSize},
			{Binding: 1, TextureView: atlasView},
			{Binding: 2, Sampler: sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("overlay bind group: %w", err)
	}

	return &DrawListPass{
		Pipeline:  pipeline,
		BindGroup: bindGroup,
		Uniform:   uniform,
		Sampler:   sampler,
		AtlasView: atlasView,
		Device:    device,
		atlas:     atlas,
	}, nil
}

// uploadAtlas copies the glyph coverage into an R8 texture. Without an
// atlas a single white texel keeps shapes opaque.
func uploadAtlas(device *wgpu.Device, queue *wgpu.Queue, atlas *draw.Atlas) (*wgpu.TextureView, error) {
	width, height, stride := 1, 1, 1
	pix := []byte{0xff}
	if atlas != nil {
		b := atlas.Image.Bounds()
		width, height, stride = b.Dx(), b.Dy(), atlas.Image.Stride
		pix = atlas.Image.Pix
	}
	extent := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "OverlayAtlas",
		Size:          extent,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("atlas texture: %w", err)
	}
	defer tex.Release()

	err = queue.WriteTexture(tex.AsImageCopy(), pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(stride),
		RowsPerImage: uint32(height),
	}, &extent)
	if err != nil {
		return nil, fmt.Errorf("atlas upload: %w", err)
	}
	return tex.CreateView(nil)
}

// Upload tessellates lists and writes the vertices and screen size. It
// must run before the render pass that calls Draw.
func (p *DrawListPass) Upload(queue *wgpu.Queue, width, height uint32, lists ...*draw.List) error {
	p.mesh.Reset()
	p.mesh.Tessellate(p.atlas, lists...)

	if err := queue.WriteBuffer(p.Uniform, 0, wgpu.ToBytes(screenUniform(width, height))); err != nil {
		return fmt.Errorf("write screen: %w", err)
	}
	count := uint32(len(p.mesh.Vertices))
	if count == 0 {
		return nil
	}
	if p.VertexBuffer == nil || p.VertexCap < count {
		if p.VertexBuffer != nil {
			p.VertexBuffer.Release()
		}
		p.VertexCap = count + vertexMargin
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "OverlayVertices",
			Size:  uint64(p.VertexCap) * uint64(unsafe.Sizeof(draw.Vertex{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.VertexBuffer, p.VertexCap = nil, 0
			return fmt.Errorf("overlay vertices: %w", err)
		}
		p.VertexBuffer = buf
	}
	if err := queue.WriteBuffer(p.VertexBuffer, 0, wgpu.ToBytes(p.mesh.Vertices)); err != nil {
		return fmt.Errorf("write vertices: %w", err)
	}
	return nil
}

// Draw records one draw per clip batch of the last Upload.
func (p *DrawListPass) Draw(pass *wgpu.RenderPassEncoder, width, height uint32) {
	if p.VertexBuffer == nil || len(p.mesh.Vertices) == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, wgpu.WholeSize)
	for _, b := range p.mesh.Batches {
		x, y, w, h, ok := scissor(b.Clip, width, height)
		if !ok || b.Count == 0 {
			continue
		}
		pass.SetScissorRect(x, y, w, h)
		pass.Draw(b.Count, 1, b.First, 0)
	}
	pass.SetScissorRect(0, 0, width, height)
}

func (p *DrawListPass) Release() {
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
	}
	p.Uniform.Release()
	p.Sampler.Release()
	p.AtlasView.Release()
	p.BindGroup.Release()
	p.Pipeline.Release()
}

func screenUniform(width, height uint32) []float32 {
	return []float32{float32(width), float32(height), 0, 0}
}

// scissor converts a clip rectangle to a framebuffer scissor, clamped to
// the target. ok is false when nothing is left.
func scissor(clip draw.ClipRect, width, height uint32) (x, y, w, h uint32, ok bool) {
	clamp := func(v float32, max uint32) uint32 {
		if v <= 0 {
			return 0
		}
		if v >= float32(max) {
			return max
		}
		return uint32(v)
	}
	x0, y0 := clamp(clip.Min[0], width), clamp(clip.Min[1], height)
	x1, y1 := clamp(clip.Max[0]+0.5, width), clamp(clip.Max[1]+0.5, height)
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1 - x0, y1 - y0, true
}
