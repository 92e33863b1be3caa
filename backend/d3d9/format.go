package d3d9

import "github.com/gogpu/gdev"

// Format is a D3DFORMAT value.
type Format uint32

// The D3D9 formats the transfer paths can stage through. D3D9 stores
// 8-bit four-channel texels as BGRA (A8R8G8B8), so RGBAu8 transfers swap
// the red and blue channels on the way through.
const (
	FormatUnknown       Format = 0
	FormatA8R8G8B8      Format = 21
	FormatR16F          Format = 111
	FormatG16R16F       Format = 112
	FormatA16B16G16R16F Format = 113
	FormatR32F          Format = 114
	FormatG32R32F       Format = 115
	FormatA32B32G32R32F Format = 116
)

// nativeFormat translates a texture format into its D3D9 equivalent.
// Integer formats have no D3D9 representation and return FormatUnknown,
// failing the transfer.
func nativeFormat(f gdev.TextureFormat) Format {
	switch f {
	case gdev.RGBAu8:
		return FormatA8R8G8B8

	case gdev.RGBAf16:
		return FormatA16B16G16R16F
	case gdev.RGf16:
		return FormatG16R16F
	case gdev.Rf16:
		return FormatR16F

	case gdev.RGBAf32:
		return FormatA32B32G32R32F
	case gdev.RGf32:
		return FormatG32R32F
	case gdev.Rf32:
		return FormatR32F
	}
	return FormatUnknown
}
