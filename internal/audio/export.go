package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ExportWAV writes a stereo scope signal to path as 16-bit PCM. Channel
// lengths are matched to the shorter one.
func ExportWAV(path string, left, right []float64, sampleRate int) error {
	n := min(len(left), len(right))
	if n == 0 {
		return fmt.Errorf("nothing to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channelCount, 1)
	data := make([]int, n*channelCount)
	for i := 0; i < n; i++ {
		data[i*2] = int(sampleToInt16(left[i]))
		data[i*2+1] = int(sampleToInt16(right[i]))
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channelCount,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return f.Close()
}
