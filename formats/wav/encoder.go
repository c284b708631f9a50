// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/utils"
)

// Subtype names, as reported to callers and written into sidecars.
const (
	SubtypePCM16 = "PCM_16"
	SubtypePCM24 = "PCM_24"
	SubtypeFloat = "FLOAT"
)

// Subtype returns the WAV sample subtype used for a bit depth. Depths
// without a dedicated subtype are written as PCM_16.
func Subtype(bits int) string {
	switch bits {
	case 24:
		return SubtypePCM24
	case 32:
		return SubtypeFloat
	default:
		return SubtypePCM16
	}
}

// Encode writes buf as a WAV file. PCM buffers of 16 or 24 bits go through
// the go-audio encoder; 32-bit float buffers are written by WriteFloat32.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	f := buf.Format

	switch {
	case f.BitDepth == 32 && buf.Encoding == audio.Float:
		samples := make([]float32, len(buf.Samples))
		for i, v := range buf.Samples {
			samples[i] = utils.FloatToFloat32(v)
		}
		return WriteFloat32(w, f.SampleRate, f.Channels, samples)

	case (f.BitDepth == 16 || f.BitDepth == 24) && buf.Encoding == audio.PCM:
		data := make([]int, len(buf.Samples))
		for i, v := range buf.Samples {
			data[i] = int(v)
		}
		enc := gowav.NewEncoder(w, f.SampleRate, f.BitDepth, f.Channels, formatPCM)
		err := enc.Write(&goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			Data:           data,
			SourceBitDepth: f.BitDepth,
		})
		if err != nil {
			return fmt.Errorf("encoding wav: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("%w: %d bit %s", ErrUnsupportedBitDepth, f.BitDepth, buf.Encoding)
	}
}

// WriteFloat32 writes interleaved 32-bit IEEE float samples as a WAV
// file with a canonical 44 byte header.
func WriteFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	const bitsPerSample = 32
	dataSize := uint32(len(samples) * 4)
	if err := writeHeader(w, formatIEEEFloat, sampleRate, channels, bitsPerSample, dataSize); err != nil {
		return err
	}

	// Write in chunks to bound the scratch buffer.
	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}
	buf := make([]byte, min(len(samples), chunkSize)*4)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*4]
		for j, s := range chunk {
			binary.LittleEndian.PutUint32(buf[j*4:], math.Float32bits(s))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func writeHeader(w io.Writer, tag uint16, sampleRate, channels, bits int, dataSize uint32) error {
	numChannels := uint16(channels)
	bitsPerSample := uint16(bits)
	blockAlign := numChannels * (bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], tag)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
