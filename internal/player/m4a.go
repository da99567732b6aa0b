package player

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// packetDecoder turns one container sample into stereo frames.
type packetDecoder interface {
	decode(packet []byte) ([][2]float64, error)
	close()
}

type aacPackets struct {
	dec      *faad2.Decoder
	channels int
}

func (a *aacPackets) decode(packet []byte) ([][2]float64, error) {
	pcm, err := a.dec.Decode(context.Background(), packet)
	if err != nil {
		return nil, fmt.Errorf("aac: %w", err)
	}
	return int16Frames(pcm, a.channels), nil
}

func (a *aacPackets) close() {
	a.dec.Close(context.Background())
}

type alacPackets struct {
	dec            *alac.Alac
	bytesPerSample int
	channels       int
}

func (a *alacPackets) decode(packet []byte) ([][2]float64, error) {
	return leFrames(a.dec.Decode(packet), a.bytesPerSample, a.channels), nil
}

func (a *alacPackets) close() {}

// m4aStream plays an MP4 audio track sample by sample.
type m4aStream struct {
	track   *m4a.Reader
	source  io.Closer
	packets packetDecoder
	rate    int
	length  int
	next    int
	pending [][2]float64
	err     error
}

// decodeM4A opens an AAC or ALAC track inside an MP4 container.
func decodeM4A(rs io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	track, err := m4a.Open(rs)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open m4a: %w", err)
	}

	rate := int(track.SampleRate())
	channels := int(track.Channels())
	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}

	var packets packetDecoder
	switch track.Codec() {
	case m4a.CodecAAC:
		dec, err := faad2.NewDecoder(context.Background())
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("aac decoder: %w", err)
		}
		if err := dec.Init(context.Background(), track.CodecConfig()); err != nil {
			dec.Close(context.Background())
			return nil, beep.Format{}, fmt.Errorf("aac init: %w", err)
		}
		packets = &aacPackets{dec: dec, channels: channels}
	case m4a.CodecALAC:
		bits := int(track.SampleSize())
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  rate,
			SampleSize:  bits,
			NumChannels: channels,
			FrameSize:   4096,
		})
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("alac decoder: %w", err)
		}
		if bits == 24 {
			format.Precision = 3
		}
		packets = &alacPackets{dec: dec, bytesPerSample: bits / 8, channels: channels}
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: m4a codec %s", ErrUnsupportedFormat, track.Codec())
	}

	return &m4aStream{
		track:   track,
		source:  rs,
		packets: packets,
		rate:    rate,
		length:  int(track.Duration().Seconds() * float64(rate)),
	}, format, nil
}

func (s *m4aStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.track.SampleCount() {
			break
		}
		packet, err := s.track.ReadSample(s.next)
		if err != nil {
			s.err = err
			break
		}
		s.next++
		frames, err := s.packets.decode(packet)
		if err != nil {
			s.err = err
			break
		}
		s.pending = frames
	}
	return n, n > 0
}

func (s *m4aStream) Err() error { return s.err }

func (s *m4aStream) Len() int { return s.length }

func (s *m4aStream) Position() int {
	return int(s.track.SampleTime(s.next).Seconds() * float64(s.rate))
}

func (s *m4aStream) Seek(p int) error {
	p = max(0, min(p, s.length))
	at := time.Duration(float64(p) / float64(s.rate) * float64(time.Second))
	s.next = s.track.SeekToTime(at)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	s.packets.close()
	return s.source.Close()
}

// int16Frames spreads interleaved 16-bit PCM over stereo frames. Mono is
// duplicated to both sides.
func int16Frames(pcm []int16, channels int) [][2]float64 {
	channels = max(channels, 1)
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		left := float64(pcm[i*channels]) / 32768
		right := left
		if channels > 1 {
			right = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

// leFrames decodes interleaved little-endian signed PCM of 2 or 3 bytes per
// sample. Channels beyond the first two are ignored.
func leFrames(data []byte, bytesPerSample, channels int) [][2]float64 {
	if bytesPerSample != 2 && bytesPerSample != 3 {
		return nil
	}
	channels = max(channels, 1)
	stride := bytesPerSample * channels
	scale := float64(int(1) << (8*bytesPerSample - 1))
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := float64(leSample(data[off:], bytesPerSample)) / scale
		right := left
		if channels > 1 {
			right = float64(leSample(data[off+bytesPerSample:], bytesPerSample)) / scale
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

func leSample(b []byte, size int) int32 {
	if size == 2 {
		return int32(int16(uint16(b[0]) | uint16(b[1])<<8))
	}
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v -= 1 << 24
	}
	return v
}
