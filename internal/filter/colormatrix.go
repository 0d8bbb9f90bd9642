package filter

import "image"

// ColorMatrix is a 4x5 colour transformation applied to straight-alpha
// pixels:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Channel values are in [0, 255] during the transform and clamped afterwards.
type ColorMatrix [20]float32

// Identity returns the matrix that leaves pixels unchanged.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale returns a matrix mapping each pixel to its ITU-R BT.601 luma
// (0.299 R + 0.587 G + 0.114 B) multiplied by level.
// A level of 1 is plain desaturation.
func Grayscale(level float32) ColorMatrix {
	r, g, b := 0.299*level, 0.587*level, 0.114*level
	return ColorMatrix{
		r, g, b, 0, 0,
		r, g, b, 0, 0,
		r, g, b, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Opacity returns a matrix that scales alpha by factor.
func Opacity(factor float32) ColorMatrix {
	m := Identity()
	m[18] = factor
	return m
}

// Multiply returns the matrix equivalent to applying other, then m.
func (m ColorMatrix) Multiply(other ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*5+k] * other[k*5+col]
			}
			if col == 4 {
				sum += m[row*5+4]
			}
			out[row*5+col] = sum
		}
	}
	return out
}

// Apply returns a copy of src with the matrix applied to every pixel.
func (m ColorMatrix) Apply(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := 0; y < b.Dy(); y++ {
		srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			s := srow[x*4 : x*4+4]
			r, g, bl, a := float32(s[0]), float32(s[1]), float32(s[2]), float32(s[3])

			d := drow[x*4 : x*4+4]
			d[0] = clampUint8(m[0]*r + m[1]*g + m[2]*bl + m[3]*a + m[4])
			d[1] = clampUint8(m[5]*r + m[6]*g + m[7]*bl + m[8]*a + m[9])
			d[2] = clampUint8(m[10]*r + m[11]*g + m[12]*bl + m[13]*a + m[14])
			d[3] = clampUint8(m[15]*r + m[16]*g + m[17]*bl + m[18]*a + m[19])
		}
	}
	return dst
}
