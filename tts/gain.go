package tts

import (
	"encoding/binary"
	"fmt"
)

// applyGain scales the 16-bit PCM samples of a WAV buffer by gain,
// clamping at the int16 range. The header and any non-data chunks pass
// through untouched. Buffers without a RIFF header (compressed formats)
// are returned as-is.
func applyGain(wav []byte, gain float64) ([]byte, error) {
	if gain == 1.0 {
		return wav, nil
	}
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" {
		return wav, nil
	}
	if string(wav[8:12]) != "WAVE" {
		return nil, fmt.Errorf("RIFF buffer is not a WAV file")
	}

	out := make([]byte, len(wav))
	copy(out, wav)

	off := 12
	for off+8 <= len(out) {
		id := string(out[off : off+4])
		size := int(binary.LittleEndian.Uint32(out[off+4 : off+8]))
		body := off + 8
		if body+size > len(out) {
			return nil, fmt.Errorf("truncated %q chunk", id)
		}
		if id == "data" {
			scaleSamples(out[body:body+size], gain)
			return out, nil
		}
		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	return nil, fmt.Errorf("WAV buffer has no data chunk")
}

func scaleSamples(data []byte, gain float64) {
	for i := 0; i+1 < len(data); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(data[i : i+2]))
		scaled := float64(sample) * gain
		switch {
		case scaled > 32767:
			sample = 32767
		case scaled < -32768:
			sample = -32768
		default:
			sample = int16(scaled)
		}
		binary.LittleEndian.PutUint16(data[i:i+2], uint16(sample))
	}
}
