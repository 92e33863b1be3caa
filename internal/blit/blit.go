// Package blit implements the pitch-aware memory copies and channel
// reordering used by the backend transfer engines.
//
// A mapped 2D resource may have a row pitch larger than width*texelSize due
// to backend alignment requirements, so rows cannot always be copied as one
// contiguous block.
package blit

// CopyRows copies rows between two 2D pixel buffers whose rows may be laid
// out with different pitches. When the pitches match the whole region is
// copied in one call; otherwise rows are copied one at a time, each side
// advancing by its own pitch. The per-row copy length is the smaller pitch,
// so a tightly packed side is never over-read.
func CopyRows(dst []byte, dstPitch int, src []byte, srcPitch, rows int) {
	if dstPitch == srcPitch {
		copy(dst, src)
		return
	}

	n := dstPitch
	if srcPitch < n {
		n = srcPitch
	}
	for i := 0; i < rows; i++ {
		copy(dst[i*dstPitch:i*dstPitch+n], src[i*srcPitch:])
	}
}

// Span returns the number of bytes a rows-row CopyRows touches on the side
// with pitch mapPitch, given the other side has pitch tightPitch. Used to
// bound the byte view over a mapped resource.
func Span(mapPitch, tightPitch, rows int) int {
	if rows <= 0 {
		return 0
	}
	n := tightPitch
	if mapPitch < n {
		n = mapPitch
	}
	return (rows-1)*mapPitch + n
}

// SwapRB8 exchanges the red and blue channels in place over a run of
// 4-channel 8-bit texels. Trailing bytes that do not form a whole texel are
// left untouched.
func SwapRB8(p []byte) {
	for i := 0; i+4 <= len(p); i += 4 {
		p[i], p[i+2] = p[i+2], p[i]
	}
}

// CopySwapRB8 copies 4-channel 8-bit texels from src to dst, exchanging the
// red and blue channels on the way. It is used where an in-place swap on
// the source is not permitted (the caller owns src). The copied length is
// the whole texels common to both slices.
func CopySwapRB8(dst, src []byte) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i+4 <= n; i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}

// CopyRowsSwapRB8 is CopyRows combined with CopySwapRB8: rows of 4-channel
// 8-bit texels are copied with red and blue exchanged, each side advancing
// by its own pitch.
func CopyRowsSwapRB8(dst []byte, dstPitch int, src []byte, srcPitch, rows int) {
	if dstPitch == srcPitch {
		CopySwapRB8(dst, src)
		return
	}

	n := dstPitch
	if srcPitch < n {
		n = srcPitch
	}
	for i := 0; i < rows; i++ {
		CopySwapRB8(dst[i*dstPitch:i*dstPitch+n], src[i*srcPitch:i*srcPitch+n])
	}
}
