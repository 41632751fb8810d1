package dct

// QuantTable holds one divisor per coefficient, indexed [row][col]
type QuantTable [BlockSize][BlockSize]uint8

// lumaTable is the textbook luminance quantization table
var lumaTable = QuantTable{
	{16, 11, 10, 16, 24, 40, 51, 61},
	{12, 12, 14, 19, 26, 58, 60, 55},
	{14, 13, 16, 24, 40, 57, 69, 56},
	{14, 17, 22, 29, 51, 87, 80, 62},
	{18, 22, 37, 56, 68, 109, 103, 77},
	{24, 35, 55, 64, 81, 104, 113, 92},
	{49, 64, 78, 87, 103, 121, 120, 101},
	{72, 92, 95, 98, 112, 100, 103, 99},
}

// chromaTable is shared by both chroma planes
var chromaTable = QuantTable{
	{17, 18, 24, 47, 99, 99, 99, 99},
	{18, 21, 26, 66, 99, 99, 99, 99},
	{24, 26, 56, 99, 99, 99, 99, 99},
	{47, 66, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
}

// FlatTable returns a table with every divisor set to q
func FlatTable(q uint8) QuantTable {
	var t QuantTable
	for r := range t {
		for c := range t[r] {
			t[r][c] = q
		}
	}
	return t
}

// LuminanceTable returns a copy of the luminance table
func LuminanceTable() QuantTable {
	return lumaTable
}

// ChrominanceTable returns a copy of the chrominance table
func ChrominanceTable() QuantTable {
	return chromaTable
}

// TableFor returns a copy of the table used for plane index p: luminance
// for plane 0, chrominance for both chroma planes.
func TableFor(p int) QuantTable {
	if p == 0 {
		return lumaTable
	}
	return chromaTable
}
