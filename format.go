package gdev

import "fmt"

// Elements is the channel count of a texel.
type Elements uint8

const (
	// ElementsR is a single-channel texel.
	ElementsR Elements = 0x01
	// ElementsRG is a two-channel texel.
	ElementsRG Elements = 0x02
	// ElementsRGBA is a four-channel texel.
	ElementsRGBA Elements = 0x04
)

// Count returns the number of channels, or 0 for an unrecognized value.
func (e Elements) Count() int {
	switch e {
	case ElementsR:
		return 1
	case ElementsRG:
		return 2
	case ElementsRGBA:
		return 4
	default:
		return 0
	}
}

// Layout is the channel ordering of a texel.
type Layout uint8

const (
	// LayoutRGBA is the canonical ordering.
	LayoutRGBA Layout = 0x00
	// LayoutARGB places alpha first.
	LayoutARGB Layout = 0x01
	// LayoutBGRA exchanges red and blue.
	LayoutBGRA Layout = 0x02
)

// ComponentType is the storage type of one channel.
type ComponentType uint8

const (
	// TypeF16 is a 16-bit float component.
	TypeF16 ComponentType = 0x01
	// TypeF32 is a 32-bit float component.
	TypeF32 ComponentType = 0x02
	// TypeU8 is an 8-bit unsigned component.
	TypeU8 ComponentType = 0x03
	// TypeI16 is a 16-bit signed integer component.
	TypeI16 ComponentType = 0x04
	// TypeI32 is a 32-bit signed integer component.
	TypeI32 ComponentType = 0x05
)

// Size returns the byte width of one component, or 0 for an unrecognized
// value.
func (t ComponentType) Size() int {
	switch t {
	case TypeU8:
		return 1
	case TypeF16, TypeI16:
		return 2
	case TypeF32, TypeI32:
		return 4
	default:
		return 0
	}
}

// TextureFormat describes a texel as three independent fields: channel
// count, channel ordering and component type. The zero value is not a valid
// format.
type TextureFormat struct {
	Elements Elements
	Layout   Layout
	Type     ComponentType
}

// The named formats. All use the canonical RGBA layout; backends that store
// texels in a different order (D3D9 BGRA) convert during transfer so the
// caller-observed byte layout is backend-independent.
var (
	Rf16    = TextureFormat{ElementsR, LayoutRGBA, TypeF16}
	RGf16   = TextureFormat{ElementsRG, LayoutRGBA, TypeF16}
	RGBAf16 = TextureFormat{ElementsRGBA, LayoutRGBA, TypeF16}
	Rf32    = TextureFormat{ElementsR, LayoutRGBA, TypeF32}
	RGf32   = TextureFormat{ElementsRG, LayoutRGBA, TypeF32}
	RGBAf32 = TextureFormat{ElementsRGBA, LayoutRGBA, TypeF32}
	Ru8     = TextureFormat{ElementsR, LayoutRGBA, TypeU8}
	RGu8    = TextureFormat{ElementsRG, LayoutRGBA, TypeU8}
	RGBAu8  = TextureFormat{ElementsRGBA, LayoutRGBA, TypeU8}
	Ri16    = TextureFormat{ElementsR, LayoutRGBA, TypeI16}
	RGi16   = TextureFormat{ElementsRG, LayoutRGBA, TypeI16}
	RGBAi16 = TextureFormat{ElementsRGBA, LayoutRGBA, TypeI16}
	Ri32    = TextureFormat{ElementsR, LayoutRGBA, TypeI32}
	RGi32   = TextureFormat{ElementsRG, LayoutRGBA, TypeI32}
	RGBAi32 = TextureFormat{ElementsRGBA, LayoutRGBA, TypeI32}
)

// Bit ranges of the flat encoding. The three fields occupy disjoint ranges
// so an encoded format can be decomposed by masking.
const (
	elementsShift = 0
	layoutShift   = 4
	typeShift     = 8
	fieldMask     = 0x0F
)

// Encode packs the format into a flat integer: elements in bits 0-3, layout
// in bits 4-7, component type in bits 8-11.
func (f TextureFormat) Encode() uint32 {
	return uint32(f.Elements)<<elementsShift |
		uint32(f.Layout)<<layoutShift |
		uint32(f.Type)<<typeShift
}

// DecodeTextureFormat unpacks a flat integer produced by Encode.
func DecodeTextureFormat(v uint32) TextureFormat {
	return TextureFormat{
		Elements: Elements(v >> elementsShift & fieldMask),
		Layout:   Layout(v >> layoutShift & fieldMask),
		Type:     ComponentType(v >> typeShift & fieldMask),
	}
}

// TexelSize returns the byte size of one texel, or 0 if either field is
// unrecognized. Callers must treat 0 as "cannot proceed".
func (f TextureFormat) TexelSize() int {
	return f.Elements.Count() * f.Type.Size()
}

// String returns a compact name such as "RGBAu8" for the named formats.
func (f TextureFormat) String() string {
	var elems string
	switch f.Elements {
	case ElementsR:
		elems = "R"
	case ElementsRG:
		elems = "RG"
	case ElementsRGBA:
		elems = "RGBA"
	default:
		return fmt.Sprintf("TextureFormat(%#x)", f.Encode())
	}
	var typ string
	switch f.Type {
	case TypeF16:
		typ = "f16"
	case TypeF32:
		typ = "f32"
	case TypeU8:
		typ = "u8"
	case TypeI16:
		typ = "i16"
	case TypeI32:
		typ = "i32"
	default:
		return fmt.Sprintf("TextureFormat(%#x)", f.Encode())
	}
	switch f.Layout {
	case LayoutRGBA:
		return elems + typ
	case LayoutARGB:
		return elems + typ + "/ARGB"
	case LayoutBGRA:
		return elems + typ + "/BGRA"
	default:
		return fmt.Sprintf("TextureFormat(%#x)", f.Encode())
	}
}
