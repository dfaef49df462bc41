package audio

import "encoding/binary"

// encodePCM16 packs int16 samples into little-endian bytes, the layout
// linear16 providers expect.
func encodePCM16(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(sample))
	}
	return out
}
