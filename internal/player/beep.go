package player

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// outputRate is the speaker rate; media at other rates is resampled.
const outputRate beep.SampleRate = 44100

const defaultStatusInterval = 250 * time.Millisecond

// The speaker is process-wide.
var (
	speakerMu    sync.Mutex
	speakerReady bool
)

func initSpeaker() error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerReady {
		return nil
	}
	if err := speaker.Init(outputRate, outputRate.N(time.Second/10)); err != nil {
		return err
	}
	speakerReady = true
	return nil
}

func closeSpeaker() {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerReady {
		speaker.Close()
		speakerReady = false
	}
}

// BeepDevice plays media through the beep speaker. Sources are http(s)
// URLs, file:// URLs or local paths.
//
// Lock order: d.mu before the speaker lock. Speaker callbacks never take
// d.mu synchronously.
type BeepDevice struct {
	client   *http.Client
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	vol      *effects.Volume
	attached bool // the stream is in the speaker mixer
	level    float64
	state    State
	finished bool
	err      error
	gen      uint64 // bumped whenever an attached chain is invalidated

	statuses  chan Status
	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a BeepDevice.
type Option func(*BeepDevice)

// WithHTTPClient sets the client used to fetch remote media.
func WithHTTPClient(c *http.Client) Option {
	return func(d *BeepDevice) { d.client = c }
}

// WithStatusInterval sets how often position updates are emitted while
// playing.
func WithStatusInterval(interval time.Duration) Option {
	return func(d *BeepDevice) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithLogger sets the device logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *BeepDevice) { d.logger = l }
}

// NewBeepDevice creates a device. The speaker opens on the first load.
func NewBeepDevice(opts ...Option) *BeepDevice {
	d := &BeepDevice{
		client:   &http.Client{Timeout: 60 * time.Second},
		interval: defaultStatusInterval,
		logger:   slog.Default(),
		level:    1,
		state:    Stopped,
		statuses: make(chan Status, 16),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.wg.Add(1)
	go d.emit()
	return d
}

func (d *BeepDevice) LoadAndPlay(ctx context.Context, url string, volume float64) error {
	d.mu.Lock()
	d.unloadLocked()
	d.level = clampLevel(volume)
	gen := d.gen
	d.mu.Unlock()
	d.notify()

	stream, format, err := d.open(ctx, url)
	if err != nil {
		return err
	}
	if err := initSpeaker(); err != nil {
		stream.Close()
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen != gen {
		// A Stop or another load arrived while fetching.
		stream.Close()
		return context.Canceled
	}
	d.stream = stream
	d.format = format
	d.attachLocked()
	d.state = Playing
	d.logger.Debug("media loaded", "url", url, "rate", int(format.SampleRate),
		"duration", format.SampleRate.D(stream.Len()))
	d.notify()
	return nil
}

func (d *BeepDevice) open(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	src, f, err := openSource(ctx, d.client, url)
	if err != nil {
		return nil, beep.Format{}, err
	}
	return decode(src, f)
}

func (d *BeepDevice) Play(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return ErrNotLoaded
	}
	if d.attached {
		speaker.Lock()
		d.ctrl.Paused = false
		speaker.Unlock()
	} else {
		d.attachLocked()
	}
	d.state = Playing
	d.finished = false
	d.notify()
	return nil
}

func (d *BeepDevice) Pause(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return ErrNotLoaded
	}
	if d.attached {
		speaker.Lock()
		d.ctrl.Paused = true
		speaker.Unlock()
	}
	d.state = Paused
	d.notify()
	return nil
}

func (d *BeepDevice) Stop(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unloadLocked()
	d.notify()
	return nil
}

func (d *BeepDevice) Seek(_ context.Context, positionMillis int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return ErrNotLoaded
	}
	p := d.format.SampleRate.N(time.Duration(max(positionMillis, 0)) * time.Millisecond)
	p = min(p, d.stream.Len())

	speaker.Lock()
	err := d.stream.Seek(p)
	speaker.Unlock()
	if err != nil {
		return err
	}
	d.finished = false
	d.notify()
	return nil
}

func (d *BeepDevice) SetVolume(_ context.Context, volume float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level = clampLevel(volume)
	if d.vol != nil {
		speaker.Lock()
		d.vol.Volume = levelToVolume(d.level)
		d.vol.Silent = d.level <= 0
		speaker.Unlock()
	}
	return nil
}

func (d *BeepDevice) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusLocked()
}

func (d *BeepDevice) Statuses() <-chan Status {
	return d.statuses
}

// Close stops playback, the status stream and the speaker.
func (d *BeepDevice) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
		d.mu.Lock()
		d.unloadLocked()
		d.mu.Unlock()
		closeSpeaker()
	})
	return nil
}

// attachLocked wires the stream into the speaker mixer.
func (d *BeepDevice) attachLocked() {
	d.gen++
	gen := d.gen

	var s beep.Streamer = d.stream
	if d.format.SampleRate != outputRate {
		s = beep.Resample(4, d.format.SampleRate, outputRate, s)
	}
	d.ctrl = &beep.Ctrl{Streamer: s}
	d.vol = &effects.Volume{
		Streamer: d.ctrl,
		Base:     2,
		Volume:   levelToVolume(d.level),
		Silent:   d.level <= 0,
	}
	d.attached = true
	// The callback runs with the speaker locked.
	speaker.Play(beep.Seq(d.vol, beep.Callback(func() { go d.finish(gen) })))
}

func (d *BeepDevice) unloadLocked() {
	d.gen++
	if d.stream == nil {
		return
	}
	if d.attached {
		speaker.Clear()
	}
	if err := d.stream.Close(); err != nil {
		d.logger.Debug("close media", "error", err)
	}
	d.stream = nil
	d.ctrl = nil
	d.vol = nil
	d.attached = false
	d.finished = false
	d.err = nil
	d.state = Stopped
}

// finish handles the end of an attached chain. The stream stays loaded and
// paused at the end so it can be sought and replayed.
func (d *BeepDevice) finish(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.stream == nil {
		d.mu.Unlock()
		return
	}
	d.attached = false
	d.ctrl = nil
	d.vol = nil
	d.state = Paused
	if err := d.stream.Err(); err != nil {
		d.err = err
	} else {
		d.finished = true
	}
	d.mu.Unlock()
	d.notify()
}

func (d *BeepDevice) statusLocked() Status {
	st := Status{
		IsLoaded:      d.stream != nil,
		IsPlaying:     d.state == Playing,
		DidJustFinish: d.finished,
		Err:           d.err,
	}
	if d.stream != nil {
		rate := d.format.SampleRate
		if d.attached {
			speaker.Lock()
		}
		st.PositionMillis = rate.D(d.stream.Position()).Milliseconds()
		if d.attached {
			speaker.Unlock()
		}
		st.DurationMillis = rate.D(d.stream.Len()).Milliseconds()
	}
	return st
}

// takeStatusLocked returns the current status and consumes the one-shot
// finish and error flags.
func (d *BeepDevice) takeStatusLocked() Status {
	st := d.statusLocked()
	d.finished = false
	d.err = nil
	return st
}

func (d *BeepDevice) notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// emit pushes a status on every transition and on each tick while playing.
func (d *BeepDevice) emit() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-d.wake:
		case <-ticker.C:
			d.mu.Lock()
			playing := d.state == Playing
			d.mu.Unlock()
			if !playing {
				continue
			}
		}

		d.mu.Lock()
		st := d.takeStatusLocked()
		d.mu.Unlock()
		if st.Err != nil && !errors.Is(st.Err, context.Canceled) {
			d.logger.Warn("playback error", "error", st.Err)
		}

		select {
		case d.statuses <- st:
		case <-d.done:
			return
		}
	}
}
