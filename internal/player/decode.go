package player

import (
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Format identifies an audio container the device can decode.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatM4A
	FormatFLAC
	FormatWAV
	FormatVorbis
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	case FormatFLAC:
		return "flac"
	case FormatWAV:
		return "wav"
	case FormatVorbis:
		return "ogg"
	default:
		return "unknown"
	}
}

// FormatFromPath guesses the format from a file name or URL path.
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".mp3":
		return FormatMP3
	case ".m4a", ".mp4", ".aac":
		return FormatM4A
	case ".flac":
		return FormatFLAC
	case ".wav":
		return FormatWAV
	case ".ogg", ".oga":
		return FormatVorbis
	default:
		return FormatUnknown
	}
}

// FormatFromContentType maps an HTTP Content-Type to a format.
func FormatFromContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatUnknown
	}
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return FormatMP3
	case "audio/mp4", "audio/m4a", "audio/x-m4a", "audio/aac", "video/mp4":
		return FormatM4A
	case "audio/flac", "audio/x-flac":
		return FormatFLAC
	case "audio/wav", "audio/x-wav", "audio/wave":
		return FormatWAV
	case "audio/ogg", "audio/vorbis", "application/ogg":
		return FormatVorbis
	default:
		return FormatUnknown
	}
}

// decode opens a streamer for rs. On failure rs is closed.
func decode(rs io.ReadSeekCloser, f Format) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch f {
	case FormatMP3:
		s, format, err = decodeMP3(rs)
	case FormatM4A:
		s, format, err = decodeM4A(rs)
	case FormatFLAC:
		s, format, err = flac.Decode(rs)
	case FormatWAV:
		s, format, err = wav.Decode(rs)
	case FormatVorbis:
		s, format, err = vorbis.Decode(rs)
	default:
		rs.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		rs.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return s, format, nil
}
