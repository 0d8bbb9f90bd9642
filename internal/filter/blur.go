package filter

import (
	"image"
	"sync"
)

// GaussianBlur returns a copy of src blurred with standard deviation sigma.
//
// The blur runs as two separable passes over premultiplied colour, so fully
// transparent pixels do not bleed their RGB into neighbouring edges. Pixels
// outside src are treated as copies of the nearest edge pixel.
// For sigma <= 0 the result is an unmodified copy.
func GaussianBlur(src *image.NRGBA, sigma float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return dst
	}

	if sigma <= 0 {
		for y := 0; y < height; y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+width*4], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return dst
	}

	pre := getTempBuffer(width, height)
	defer putTempBuffer(pre)
	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	premultiply(src, pre, width, height)
	kernel := cachedKernel(sigma)
	blurHorizontal(pre, temp, width, height, kernel)
	blurVertical(temp, pre, width, height, kernel)
	unpremultiply(pre, dst, width, height)
	return dst
}

// premultiply converts src into float RGBA with colour scaled by alpha.
func premultiply(src *image.NRGBA, out []float32, width, height int) {
	b := src.Bounds()
	for y := 0; y < height; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < width; x++ {
			s := row[x*4 : x*4+4]
			a := float32(s[3])
			i := (y*width + x) * 4
			out[i+0] = float32(s[0]) * a / 255
			out[i+1] = float32(s[1]) * a / 255
			out[i+2] = float32(s[2]) * a / 255
			out[i+3] = a
		}
	}
}

// unpremultiply writes premultiplied floats back as straight-alpha bytes.
func unpremultiply(in []float32, dst *image.NRGBA, width, height int) {
	for y := 0; y < height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			a := in[i+3]
			d := row[x*4 : x*4+4]
			if a <= 0.5 {
				d[0], d[1], d[2], d[3] = 0, 0, 0, 0
				continue
			}
			d[0] = clampUint8(in[i+0] * 255 / a)
			d[1] = clampUint8(in[i+1] * 255 / a)
			d[2] = clampUint8(in[i+2] * 255 / a)
			d[3] = clampUint8(a)
		}
	}
}

// blurHorizontal applies 1D horizontal convolution from src to dst.
func blurHorizontal(src, dst []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				kx := clampInt(x+k-half, 0, width-1)
				i := (y*width + kx) * 4
				r += src[i+0] * weight
				g += src[i+1] * weight
				b += src[i+2] * weight
				a += src[i+3] * weight
			}
			o := (y*width + x) * 4
			dst[o+0], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
		}
	}
}

// blurVertical applies 1D vertical convolution from src to dst.
func blurVertical(src, dst []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				ky := clampInt(y+k-half, 0, height-1)
				i := (ky*width + x) * 4
				r += src[i+0] * weight
				g += src[i+1] * weight
				b += src[i+2] * weight
				a += src[i+3] * weight
			}
			o := (y*width + x) * 4
			dst[o+0], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

// getTempBuffer returns a zeroed buffer of width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

// putTempBuffer returns a buffer to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampInt clamps v to [minVal, maxVal].
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and rounds to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
