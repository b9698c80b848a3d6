package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Marshaler is a value with a fixed GPU byte layout.
type Marshaler interface {
	Size() int
	Marshal() []byte
}

// UniformResource is one uniform buffer holding a Marshaler's bytes and the
// bind group exposing it at binding 0.
type UniformResource struct {
	Buffer    *wgpu.Buffer
	BindGroup *wgpu.BindGroup
	size      uint64
}

// NewUniformResource uploads v into a new buffer and binds it against bgl,
// which must be a layout.UniformGroup layout.
func NewUniformResource(dev *wgpu.Device, bgl *wgpu.BindGroupLayout, label string, v Marshaler) (*UniformResource, error) {
	data := v.Marshal()
	if len(data) != v.Size() {
		return nil, fmt.Errorf("gpu: uniform %q marshalled %d bytes, want %d", label, len(data), v.Size())
	}
	buf, err := dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " buffer",
		Contents: data,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: uniform %q buffer: %w", label, err)
	}
	bg, err := dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " bind group",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: uint64(len(data))},
		},
	})
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("gpu: uniform %q bind group: %w", label, err)
	}
	return &UniformResource{Buffer: buf, BindGroup: bg, size: uint64(len(data))}, nil
}

func (u *UniformResource) Release() {
	if u == nil {
		return
	}
	if u.BindGroup != nil {
		u.BindGroup.Release()
		u.BindGroup = nil
	}
	if u.Buffer != nil {
		u.Buffer.Release()
		u.Buffer = nil
	}
}
