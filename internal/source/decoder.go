package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Stream delivers a file's audio as stereo float frames in [-1, 1]. Mono
// sources are upmixed by duplication; extra channels are dropped.
type Stream struct {
	dec        frameDecoder
	file       *os.File
	sampleRate int
}

// ReadFrames fills dst with decoded frames. Returns io.EOF at end of file.
func (s *Stream) ReadFrames(dst [][2]float64) (int, error) {
	return s.dec.readFrames(dst)
}

// SampleRate returns the source sample rate in Hz.
func (s *Stream) SampleRate() int { return s.sampleRate }

// Close releases the underlying file.
func (s *Stream) Close() error { return s.file.Close() }

// OpenAudioFile opens an audio file as a frame stream, detecting the
// format by extension.
func OpenAudioFile(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var dec frameDecoder
	var rate int
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		dec, rate, err = newMP3Stream(f)
	case ".wav":
		dec, rate, err = newWAVStream(f)
	case ".flac":
		dec, rate, err = newFLACStream(f)
	case ".ogg":
		dec, rate, err = newOGGStream(f)
	default:
		err = fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Stream{dec: dec, file: f, sampleRate: rate}, nil
}

type frameDecoder interface {
	readFrames(dst [][2]float64) (int, error)
}

// --- MP3 ---

type mp3Stream struct {
	dec *mp3.Decoder
	buf []byte
}

func newMP3Stream(f *os.File) (*mp3Stream, int, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Stream{dec: dec}, dec.SampleRate(), nil
}

func (s *mp3Stream) readFrames(dst [][2]float64) (int, error) {
	// go-mp3 always emits 16-bit LE stereo.
	need := len(dst) * 4
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	n, err := io.ReadFull(s.dec, s.buf[:need])
	frames := n / 4
	for i := 0; i < frames; i++ {
		l := int16(uint16(s.buf[i*4]) | uint16(s.buf[i*4+1])<<8)
		r := int16(uint16(s.buf[i*4+2]) | uint16(s.buf[i*4+3])<<8)
		dst[i] = [2]float64{float64(l) / 32768.0, float64(r) / 32768.0}
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if frames > 0 && err == io.EOF {
		return frames, nil
	}
	return frames, err
}

// --- WAV ---

type wavStream struct {
	dec      *wav.Decoder
	buf      *goaudio.IntBuffer
	scale    float64
	channels int
}

func newWAVStream(f *os.File) (*wavStream, int, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	bits := int(dec.BitDepth)
	if bits == 0 {
		bits = 16
	}
	return &wavStream{
		dec:      dec,
		scale:    float64(int64(1) << (bits - 1)),
		channels: int(dec.NumChans),
	}, int(dec.SampleRate), nil
}

func (s *wavStream) readFrames(dst [][2]float64) (int, error) {
	if s.channels < 1 {
		return 0, io.EOF
	}
	want := len(dst) * s.channels
	if s.buf == nil || cap(s.buf.Data) < want {
		s.buf = &goaudio.IntBuffer{Data: make([]int, want)}
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	frames := n / s.channels
	for i := 0; i < frames; i++ {
		l := float64(s.buf.Data[i*s.channels]) / s.scale
		r := l
		if s.channels > 1 {
			r = float64(s.buf.Data[i*s.channels+1]) / s.scale
		}
		dst[i] = [2]float64{l, r}
	}
	if frames == 0 && err == nil {
		err = io.EOF
	}
	return frames, err
}

// --- FLAC ---

type flacStream struct {
	stream   *flac.Stream
	pending  [][2]float64
	scale    float64
	channels int
}

func newFLACStream(f *os.File) (*flacStream, int, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	return &flacStream{
		stream:   stream,
		scale:    float64(int64(1) << (info.BitsPerSample - 1)),
		channels: int(info.NChannels),
	}, int(info.SampleRate), nil
}

func (s *flacStream) readFrames(dst [][2]float64) (int, error) {
	filled := 0
	for filled < len(dst) {
		if len(s.pending) == 0 {
			frame, err := s.stream.ParseNext()
			if err != nil {
				if filled > 0 && err == io.EOF {
					return filled, nil
				}
				return filled, err
			}
			n := int(frame.Subframes[0].NSamples)
			s.pending = make([][2]float64, n)
			for i := 0; i < n; i++ {
				l := float64(frame.Subframes[0].Samples[i]) / s.scale
				r := l
				if s.channels > 1 {
					r = float64(frame.Subframes[1].Samples[i]) / s.scale
				}
				s.pending[i] = [2]float64{l, r}
			}
		}
		n := copy(dst[filled:], s.pending)
		s.pending = s.pending[n:]
		filled += n
	}
	return filled, nil
}

// --- OGG Vorbis ---

type oggStream struct {
	reader   *oggvorbis.Reader
	buf      []float32
	channels int
}

func newOGGStream(f *os.File) (*oggStream, int, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggStream{reader: reader, channels: reader.Channels()}, reader.SampleRate(), nil
}

func (s *oggStream) readFrames(dst [][2]float64) (int, error) {
	if s.channels < 1 {
		return 0, io.EOF
	}
	want := len(dst) * s.channels
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	n, err := s.reader.Read(s.buf[:want])
	frames := n / s.channels
	for i := 0; i < frames; i++ {
		l := float64(s.buf[i*s.channels])
		r := l
		if s.channels > 1 {
			r = float64(s.buf[i*s.channels+1])
		}
		dst[i] = [2]float64{l, r}
	}
	if frames > 0 && err == io.EOF {
		return frames, nil
	}
	return frames, err
}
