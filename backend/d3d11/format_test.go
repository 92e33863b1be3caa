package d3d11

import (
	"testing"

	"github.com/gogpu/gdev"
)

func TestNativeFormat(t *testing.T) {
	tests := []struct {
		format gdev.TextureFormat
		want   Format
	}{
		{gdev.RGBAu8, FormatR8G8B8A8Typeless},
		{gdev.Rf16, FormatR16Float},
		{gdev.RGf16, FormatR16G16Float},
		{gdev.RGBAf16, FormatR16G16B16A16Float},
		{gdev.Rf32, FormatR32Float},
		{gdev.RGf32, FormatR32G32Float},
		{gdev.RGBAf32, FormatR32G32B32A32Float},
		{gdev.Ri32, FormatR32SInt},
		{gdev.RGi32, FormatR32G32SInt},
		{gdev.RGBAi32, FormatR32G32B32A32SInt},

		// Deliberately unmapped.
		{gdev.Ru8, FormatUnknown},
		{gdev.RGu8, FormatUnknown},
		{gdev.Ri16, FormatUnknown},
		{gdev.RGBAi16, FormatUnknown},
		{gdev.TextureFormat{}, FormatUnknown},
	}

	for _, tt := range tests {
		if got := nativeFormat(tt.format); got != tt.want {
			t.Errorf("nativeFormat(%v) = %d, want %d", tt.format, got, tt.want)
		}
	}
}
