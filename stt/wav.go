package stt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Capture format expected from the presentation layer.
const (
	SampleRate    = 16000
	BitsPerSample = 16
	NumChannels   = 1
)

const wavHeaderSize = 44

// WrapPCM prefixes raw mono/16-bit/16kHz samples with a RIFF WAV header
// so recognition engines accept the buffer as a well-formed file.
func WrapPCM(pcm []byte) []byte {
	const (
		byteRate   = SampleRate * NumChannels * BitsPerSample / 8
		blockAlign = NumChannels * BitsPerSample / 8
	)

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(pcm)))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(NumChannels))
	binary.Write(buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(BitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// UnwrapWAV returns the sample data of a WAV buffer, or the buffer
// unchanged when it does not carry a RIFF header. Used by the CLI so
// `vox transcribe` accepts both raw PCM dumps and .wav files.
func UnwrapWAV(data []byte) ([]byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" {
		return data, nil
	}
	if string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("RIFF buffer is not a WAV file")
	}

	// Walk the chunk list until the data chunk.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			return nil, fmt.Errorf("truncated %q chunk", id)
		}
		if id == "data" {
			return data[body : body+size], nil
		}
		off = body + size
		if size%2 == 1 {
			off++ // chunks are word-aligned
		}
	}

	return nil, fmt.Errorf("WAV buffer has no data chunk")
}
