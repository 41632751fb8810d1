package rle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Minimal(t *testing.T) {
	tests := []struct {
		name string
		seq  []byte
		want []byte
	}{
		{"Empty", nil, nil},
		{"Single", []byte{5}, []byte{5}},
		{"Run2", []byte{5, 5}, []byte{5, 5}},
		{"Run3", []byte{5, 5, 5}, []byte{Token, 3, 5}},
		{"Run4", []byte{5, 5, 5, 5}, []byte{Token, 4, 5}},
		{"Literals", []byte{1, 2, 3}, []byte{1, 2, 3}},
		{"Mixed", []byte{7, 7, 0, 0, 0, 0, 0xFF}, []byte{7, 7, Token, 4, 0, 0xFF}},
		{"TokenOnce", []byte{Token}, []byte{Token, 1, Token}},
		{"TokenTwice", []byte{Token, Token}, []byte{Token, 2, Token}},
		{"TokenBetween", []byte{1, Token, 1}, []byte{1, Token, 1, Token, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(nil, tt.seq)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_TokenAlwaysEscaped(t *testing.T) {
	for n := 1; n <= 64; n++ {
		seq := makeBytes(Token, n)
		got := Encode(nil, seq)
		assert.Equal(t, []byte{Token, byte(n), Token}, got, "run of %d", n)
	}
}

func TestEncode_LongRunSplits(t *testing.T) {
	seq := makeBytes(0x11, 300)
	got := Encode(nil, seq)
	assert.Equal(t, []byte{Token, 255, 0x11, Token, 45, 0x11}, got)

	back, n, err := Decode(got, len(seq))
	require.NoError(t, err)
	assert.Equal(t, len(got), n)
	assert.Equal(t, seq, back)
}

func TestEncode_Appends(t *testing.T) {
	dst := []byte{0xAA}
	got := Encode(dst, []byte{1, 1, 1})
	assert.Equal(t, []byte{0xAA, Token, 3, 1}, got)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		seq  []byte
	}{
		{"Zeros", make([]byte, 64)},
		{"Sequence", makeSequence(0, 64)},
		{"AllTokens", makeBytes(Token, 64)},
		{"Alternating", func() []byte {
			b := make([]byte, 64)
			for i := range b {
				b[i] = byte(i % 2)
			}
			return b
		}()},
		{"DCThenZeros", append([]byte{0x14, 0xFA, 0xFA, 3}, make([]byte, 60)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := Encode(nil, tt.seq)
			dec, n, err := Decode(enc, len(tt.seq))
			require.NoError(t, err)
			assert.Equal(t, len(enc), n)
			assert.Equal(t, tt.seq, dec)
		})
	}
}

func TestRoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		seq := make([]byte, 64)
		// a small alphabet produces plenty of runs, including the token
		alphabet := []byte{0, 0, 0, 1, 0xFF, Token, byte(rng.Intn(256))}
		for i := range seq {
			seq[i] = alphabet[rng.Intn(len(alphabet))]
		}
		enc := Encode(nil, seq)
		dec, _, err := Decode(enc, len(seq))
		require.NoError(t, err)
		require.Equal(t, seq, dec, "iteration %d", iter)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		n     int
		err   error
	}{
		{"Empty", nil, 1, ErrTruncatedStream},
		{"ShortLiterals", []byte{1, 2}, 3, ErrTruncatedStream},
		{"ShortAfterRun", []byte{Token, 3, 9}, 4, ErrTruncatedStream},
		{"EscapeNoCount", []byte{Token}, 4, ErrCorruptEscape},
		{"EscapeNoValue", []byte{1, Token, 3}, 4, ErrCorruptEscape},
		{"ZeroCount", []byte{Token, 0, 9}, 1, ErrCorruptEscape},
		{"RunOverflowsBlock", []byte{Token, 10, 9}, 4, ErrCorruptEscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.input, tt.n)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecoder_Sequential(t *testing.T) {
	var stream []byte
	stream = Encode(stream, []byte{1, 1, 1, 2})
	stream = Encode(stream, []byte{2, 2})
	stream = append(stream, 0x7F)

	d := NewDecoder(stream)
	first := make([]byte, 4)
	require.NoError(t, d.ReadSeq(first))
	assert.Equal(t, []byte{1, 1, 1, 2}, first)
	assert.Equal(t, 4, d.Offset())

	second := make([]byte, 2)
	require.NoError(t, d.ReadSeq(second))
	assert.Equal(t, []byte{2, 2}, second)
	assert.Equal(t, 1, d.Remaining())
}

func makeBytes(val byte, n int) []byte {
	res := make([]byte, n)
	for i := range res {
		res[i] = val
	}
	return res
}

func makeSequence(start byte, n int) []byte {
	res := make([]byte, n)
	val := start
	for i := range res {
		res[i] = val
		val++
	}
	return res
}
