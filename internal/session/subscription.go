package session

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	SongChanged     <-chan SongChange
	PlayingChanged  <-chan PlayingChange
	LoadingChanged  <-chan LoadingChange
	VolumeChanged   <-chan VolumeChange
	PositionChanged <-chan PositionChange
	SeekRequested   <-chan SeekRequest
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	Done            <-chan struct{}

	// Internal write channels
	songCh     chan SongChange
	playingCh  chan PlayingChange
	loadingCh  chan LoadingChange
	volumeCh   chan VolumeChange
	positionCh chan PositionChange
	seekCh     chan SeekRequest
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		songCh:     make(chan SongChange, eventBufferSize),
		playingCh:  make(chan PlayingChange, eventBufferSize),
		loadingCh:  make(chan LoadingChange, eventBufferSize),
		volumeCh:   make(chan VolumeChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		seekCh:     make(chan SeekRequest, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.SongChanged = s.songCh
	s.PlayingChanged = s.playingCh
	s.LoadingChanged = s.loadingCh
	s.VolumeChanged = s.volumeCh
	s.PositionChanged = s.positionCh
	s.SeekRequested = s.seekCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// trySend delivers e unless the buffer is full, in which case it is dropped.
func trySend[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

// deliver fans one batch of events out to s, in field order.
func (s *Subscription) deliver(ev *events) {
	if ev.song != nil {
		trySend(s.songCh, *ev.song)
	}
	if ev.queue != nil {
		trySend(s.queueCh, *ev.queue)
	}
	if ev.mode != nil {
		trySend(s.modeCh, *ev.mode)
	}
	if ev.volume != nil {
		trySend(s.volumeCh, *ev.volume)
	}
	if ev.loading != nil {
		trySend(s.loadingCh, *ev.loading)
	}
	if ev.position != nil {
		trySend(s.positionCh, *ev.position)
	}
	if ev.seek != nil {
		trySend(s.seekCh, *ev.seek)
	}
	if ev.playing != nil {
		trySend(s.playingCh, *ev.playing)
	}
}

// events is the batch produced by one store action.
type events struct {
	song     *SongChange
	playing  *PlayingChange
	loading  *LoadingChange
	volume   *VolumeChange
	position *PositionChange
	seek     *SeekRequest
	queue    *QueueChange
	mode     *ModeChange
}

func (ev *events) empty() bool {
	return ev.song == nil && ev.playing == nil && ev.loading == nil &&
		ev.volume == nil && ev.position == nil && ev.seek == nil &&
		ev.queue == nil && ev.mode == nil
}
