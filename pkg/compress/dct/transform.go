package dct

import (
	"math"
)

// Samples and coefficients are signed bytes stored in uint8 cells
// (two's complement). Both directions truncate toward zero and then
// saturate to [-128, 127]; forward followed by inverse is lossy.

// cosTable[x][u] = cos((2x+1)u*pi / 2N)
var cosTable = func() (t [BlockSize][BlockSize]float64) {
	for x := 0; x < BlockSize; x++ {
		for u := 0; u < BlockSize; u++ {
			t[x][u] = math.Cos(float64((2*x+1)*u) * math.Pi / (2 * BlockSize))
		}
	}
	return t
}()

// norm[u] = 1/sqrt(2) for u == 0, else 1
var norm = func() (n [BlockSize]float64) {
	for u := range n {
		n[u] = 1
	}
	n[0] = 1 / math.Sqrt2
	return n
}()

// scale is the 2/N factor shared by both directions
const scale = 2.0 / BlockSize

// Forward applies the 2D type-II DCT to a row-major 8x8 block and divides
// each coefficient (u, v) by q[v][u]. dst and block must not alias.
func Forward(dst, block []byte, q *QuantTable) []byte {
	if len(dst) < BlockLen {
		dst = make([]byte, BlockLen)
	}
	var in [BlockLen]float64
	for k := 0; k < BlockLen; k++ {
		in[k] = float64(int8(block[k]))
	}
	for v := 0; v < BlockSize; v++ {
		for u := 0; u < BlockSize; u++ {
			var sum float64
			for j := 0; j < BlockSize; j++ {
				cv := cosTable[j][v]
				row := j * BlockSize
				for i := 0; i < BlockSize; i++ {
					sum += cosTable[i][u] * cv * in[row+i]
				}
			}
			sum *= norm[u] * norm[v] * scale
			sum /= divisor(q[v][u])
			dst[v*BlockSize+u] = toInt8(sum)
		}
	}
	return dst[:BlockLen]
}

// Inverse multiplies each coefficient at (i, j) by q[j][i] and applies the
// type-III DCT, producing a row-major block of samples. The kernel is the
// transpose of Forward's: sample (u, v) weighs coefficient (i, j) by
// cos((2u+1)i*pi/2N) * cos((2v+1)j*pi/2N). dst and coeffs must not alias.
func Inverse(dst, coeffs []byte, q *QuantTable) []byte {
	if len(dst) < BlockLen {
		dst = make([]byte, BlockLen)
	}
	var in [BlockLen]float64
	for j := 0; j < BlockSize; j++ {
		for i := 0; i < BlockSize; i++ {
			k := j*BlockSize + i
			in[k] = float64(int8(coeffs[k])) * divisor(q[j][i]) * norm[i] * norm[j]
		}
	}
	for v := 0; v < BlockSize; v++ {
		for u := 0; u < BlockSize; u++ {
			var sum float64
			for j := 0; j < BlockSize; j++ {
				cv := cosTable[v][j]
				row := j * BlockSize
				for i := 0; i < BlockSize; i++ {
					sum += cosTable[u][i] * cv * in[row+i]
				}
			}
			dst[v*BlockSize+u] = toInt8(sum * scale)
		}
	}
	return dst[:BlockLen]
}

// toInt8 truncates toward zero and saturates to the signed byte range
func toInt8(f float64) byte {
	t := math.Trunc(f)
	switch {
	case math.IsNaN(t):
		return 0
	case t > math.MaxInt8:
		t = math.MaxInt8
	case t < math.MinInt8:
		t = math.MinInt8
	}
	return byte(int8(t))
}

// divisor treats a zero table entry as 1
func divisor(q uint8) float64 {
	if q == 0 {
		return 1
	}
	return float64(q)
}
