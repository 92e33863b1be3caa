package d3d11

import "github.com/gogpu/gdev"

// Format is a DXGI_FORMAT value.
type Format uint32

// The DXGI formats the transfer paths can stage through.
const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32A32SInt  Format = 3
	FormatR16G16B16A16Float Format = 10
	FormatR32G32Float       Format = 16
	FormatR32G32SInt        Format = 18
	FormatR8G8B8A8Typeless  Format = 27
	FormatR16G16Float       Format = 34
	FormatR32Float          Format = 41
	FormatR32SInt           Format = 43
	FormatR16Float          Format = 54
)

// nativeFormat translates a texture format into its DXGI equivalent. The
// mapping is deliberately partial: formats without an entry return
// FormatUnknown and the staging path fails.
func nativeFormat(f gdev.TextureFormat) Format {
	switch f {
	case gdev.RGBAu8:
		return FormatR8G8B8A8Typeless

	case gdev.RGBAf16:
		return FormatR16G16B16A16Float
	case gdev.RGf16:
		return FormatR16G16Float
	case gdev.Rf16:
		return FormatR16Float

	case gdev.RGBAf32:
		return FormatR32G32B32A32Float
	case gdev.RGf32:
		return FormatR32G32Float
	case gdev.Rf32:
		return FormatR32Float

	case gdev.RGBAi32:
		return FormatR32G32B32A32SInt
	case gdev.RGi32:
		return FormatR32G32SInt
	case gdev.Ri32:
		return FormatR32SInt
	}
	return FormatUnknown
}
