package player

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Stream adapts go-mp3's 16-bit stereo reader to beep.
type mp3Stream struct {
	dec    *mp3.Decoder
	source io.Closer
	buf    []byte
	err    error
}

func decodeMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open mp3: %w", err)
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		return nil, beep.Format{}, errors.New("open mp3: invalid sample rate")
	}
	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}
	return &mp3Stream{dec: dec, source: rc}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	need := len(samples) * 4
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	read, err := io.ReadFull(s.dec, s.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}
	frames := leFrames(s.buf[:read], 2, 2)
	n := copy(samples, frames)
	return n, n > 0
}

func (s *mp3Stream) Err() error { return s.err }

func (s *mp3Stream) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

func (s *mp3Stream) Seek(p int) error {
	p = max(0, min(p, s.Len()))
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return fmt.Errorf("mp3 seek: %w", err)
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error {
	return s.source.Close()
}
