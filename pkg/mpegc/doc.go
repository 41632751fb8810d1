// Package mpegc implements a still-image block transform codec.
//
// An Image carries three level-shifted planes (luminance plus two
// chrominance planes, optionally subsampled 2x2). Each plane is cut into
// 8x8 blocks, transformed and quantized in one pass, scanned in zig-zag
// order and run-length coded with an escape token. The container is a
// 6-byte header followed by the three coded planes with no length prefixes.
//
// Encoding:
//
//	im, _ := mpegc.NewImage(640, 480, mpegc.SamplingSubsampled)
//	// fill im.Planes with level-shifted samples
//	err := mpegc.Encode(w, im, nil)
//
// Decoding:
//
//	im, err := mpegc.Decode(r, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The codec is lossy: truncation in both transform directions means a
// decoded image only approximates the encoded one.
package mpegc
