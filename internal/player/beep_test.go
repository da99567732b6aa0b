package player

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// These tests stay on paths that never open the speaker.

func TestBeepDevice_NotLoaded(t *testing.T) {
	ctx := context.Background()
	d := NewBeepDevice(WithStatusInterval(10 * time.Millisecond))
	defer d.Close()

	if err := d.Play(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Play() error = %v, want ErrNotLoaded", err)
	}
	if err := d.Pause(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Pause() error = %v, want ErrNotLoaded", err)
	}
	if err := d.Seek(ctx, 1000); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Seek() error = %v, want ErrNotLoaded", err)
	}
	if err := d.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v, want nil", err)
	}
	if err := d.SetVolume(ctx, 0.3); err != nil {
		t.Errorf("SetVolume() error = %v, want nil", err)
	}

	if st := d.Status(); st.IsLoaded || st.IsPlaying || st.PositionMillis != 0 {
		t.Errorf("Status() = %+v, want idle", st)
	}
}

func TestBeepDevice_LoadUnsupported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	d := NewBeepDevice(WithHTTPClient(srv.Client()))
	defer d.Close()

	err := d.LoadAndPlay(context.Background(), srv.URL+"/page", 1)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("LoadAndPlay() error = %v, want ErrUnsupportedFormat", err)
	}
	if d.Status().IsLoaded {
		t.Error("Status().IsLoaded = true after failed load")
	}
}

func TestBeepDevice_CloseIdempotent(t *testing.T) {
	d := NewBeepDevice()
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
