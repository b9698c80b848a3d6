package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hubastard/atlas/engine/assets"
)

// SamplerResource is an immutable sRGB texture with its sampler, bound as
// {0: sampler, 1: texture} for the fragment stage.
type SamplerResource struct {
	Texture   *wgpu.Texture
	View      *wgpu.TextureView
	Sampler   *wgpu.Sampler
	BindGroup *wgpu.BindGroup
	Width     uint32
	Height    uint32
}

// textureWriter is the upload half of *wgpu.Queue.
type textureWriter interface {
	WriteTexture(dst *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D) error
}

// upload copies img into the first mip level of tex.
func upload(q textureWriter, tex *wgpu.Texture, label string, img *assets.Image) error {
	w, h := uint32(img.Width), uint32(img.Height)
	err := q.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspectAll},
		img.Pix,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: 4 * w, RowsPerImage: h},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("gpu: texture %q upload: %w", label, err)
	}
	return nil
}

// NewSamplerResource uploads img and binds it against bgl, which must be a
// layout.SampledTextureGroup layout.
func NewSamplerResource(dev *wgpu.Device, q *wgpu.Queue, bgl *wgpu.BindGroupLayout, label string, img *assets.Image) (_ *SamplerResource, err error) {
	w, h := uint32(img.Width), uint32(img.Height)
	if w == 0 || h == 0 || len(img.Pix) != img.Width*img.Height*4 {
		return nil, fmt.Errorf("gpu: texture %q: bad image %dx%d with %d bytes", label, w, h, len(img.Pix))
	}

	r := &SamplerResource{Width: w, Height: h}
	defer func() {
		if err != nil {
			r.Release()
		}
	}()

	size := wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	r.Texture, err = dev.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: texture %q: %w", label, err)
	}

	if err = upload(q, r.Texture, label, img); err != nil {
		return nil, err
	}

	r.View, err = r.Texture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: texture %q view: %w", label, err)
	}

	r.Sampler, err = dev.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: texture %q sampler: %w", label, err)
	}

	r.BindGroup, err = dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " bind group",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Sampler: r.Sampler},
			{Binding: 1, TextureView: r.View},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: texture %q bind group: %w", label, err)
	}
	return r, nil
}

func (r *SamplerResource) Release() {
	if r == nil {
		return
	}
	if r.BindGroup != nil {
		r.BindGroup.Release()
		r.BindGroup = nil
	}
	if r.Sampler != nil {
		r.Sampler.Release()
		r.Sampler = nil
	}
	if r.View != nil {
		r.View.Release()
		r.View = nil
	}
	if r.Texture != nil {
		r.Texture.Release()
		r.Texture = nil
	}
}
