package core

import (
	"math/rand"
)

// NoiseVolumeSize is the side length of the cubic noise texture
const NoiseVolumeSize = 64

// Volume is a cubic grid of single-byte samples, x fastest then y then z.
// It is filled once and never modified afterwards.
type Volume struct {
	Size int
	Data []byte
}

// NewVolume fills a size³ volume with independent uniform random bytes.
// The generator is not seeded by the caller, so every run differs.
func NewVolume(size int) *Volume {
	return newVolumeFrom(size, rand.Uint64)
}

func newVolumeFrom(size int, next func() uint64) *Volume {
	if size < 0 {
		size = 0
	}
	data := make([]byte, size*size*size)

	// eight samples per draw
	for i := 0; i < len(data); i += 8 {
		bits := next()
		for j := 0; j < 8 && i+j < len(data); j++ {
			data[i+j] = byte(bits >> (8 * j))
		}
	}

	return &Volume{Size: size, Data: data}
}

// At returns the sample at (x, y, z) with repeat addressing on all axes,
// matching how the texture is sampled on the GPU
func (v *Volume) At(x, y, z int) byte {
	x, y, z = wrap(x, v.Size), wrap(y, v.Size), wrap(z, v.Size)
	return v.Data[(z*v.Size+y)*v.Size+x]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
