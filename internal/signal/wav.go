package signal

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth    = 16
	wavPCMFormat   = 1 // linear PCM
	wavMaxInt16    = 32767.0
	wavClipCeiling = 1.0
)

// SaveWAV writes a mono float signal as a 16-bit PCM WAV file. Samples are
// clipped to [-1, 1] before quantization. Intended for manual inspection of
// generated test signals, not for the exchange protocol.
func SaveWAV(path string, x []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, 1, wavPCMFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: wavBitDepth,
		Data:           make([]int, len(x)),
	}
	for i, v := range x {
		if v > wavClipCeiling {
			v = wavClipCeiling
		} else if v < -wavClipCeiling {
			v = -wavClipCeiling
		}
		buf.Data[i] = int(v * wavMaxInt16)
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}
