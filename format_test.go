package gdev

import "testing"

func TestTexelSize(t *testing.T) {
	tests := []struct {
		format TextureFormat
		want   int
	}{
		{Rf16, 2},
		{RGf16, 4},
		{RGBAf16, 8},
		{Rf32, 4},
		{RGf32, 8},
		{RGBAf32, 16},
		{Ru8, 1},
		{RGu8, 2},
		{RGBAu8, 4},
		{Ri16, 2},
		{RGi16, 4},
		{RGBAi16, 8},
		{Ri32, 4},
		{RGi32, 8},
		{RGBAi32, 16},
		{TextureFormat{}, 0},
		{TextureFormat{Elements: 0x07, Type: TypeU8}, 0},
		{TextureFormat{Elements: ElementsR, Type: 0x0F}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.TexelSize(); got != tt.want {
				t.Errorf("TexelSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatEncodeDecode(t *testing.T) {
	formats := []TextureFormat{
		Rf16, RGf16, RGBAf16,
		Rf32, RGf32, RGBAf32,
		Ru8, RGu8, RGBAu8,
		Ri16, RGi16, RGBAi16,
		Ri32, RGi32, RGBAi32,
		{ElementsRGBA, LayoutBGRA, TypeU8},
		{ElementsRGBA, LayoutARGB, TypeU8},
	}

	for _, f := range formats {
		if got := DecodeTextureFormat(f.Encode()); got != f {
			t.Errorf("DecodeTextureFormat(Encode(%v)) = %v", f, got)
		}
	}
}

func TestFormatEncodeFields(t *testing.T) {
	// The three fields occupy disjoint nibbles of the flat encoding.
	f := TextureFormat{ElementsRGBA, LayoutBGRA, TypeI32}
	want := uint32(0x04) | uint32(0x02)<<4 | uint32(0x05)<<8
	if got := f.Encode(); got != want {
		t.Errorf("Encode() = %#x, want %#x", got, want)
	}
}

func TestFormatDistinctEncodings(t *testing.T) {
	formats := []TextureFormat{
		Rf16, RGf16, RGBAf16,
		Rf32, RGf32, RGBAf32,
		Ru8, RGu8, RGBAu8,
		Ri16, RGi16, RGBAi16,
		Ri32, RGi32, RGBAi32,
	}

	seen := make(map[uint32]TextureFormat)
	for _, f := range formats {
		enc := f.Encode()
		if prev, ok := seen[enc]; ok {
			t.Errorf("formats %v and %v share encoding %#x", prev, f, enc)
		}
		seen[enc] = f
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format TextureFormat
		want   string
	}{
		{RGBAu8, "RGBAu8"},
		{Rf32, "Rf32"},
		{RGi16, "RGi16"},
		{TextureFormat{ElementsRGBA, LayoutBGRA, TypeU8}, "RGBAu8/BGRA"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBufferKind(t *testing.T) {
	for k := BufferIndex; int(k) < NumBufferKinds; k++ {
		if !k.IsValid() {
			t.Errorf("BufferKind(%d).IsValid() = false", k)
		}
	}
	if BufferKind(-1).IsValid() {
		t.Error("BufferKind(-1).IsValid() = true")
	}
	if BufferKind(NumBufferKinds).IsValid() {
		t.Errorf("BufferKind(%d).IsValid() = true", NumBufferKinds)
	}
}
