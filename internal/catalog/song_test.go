package catalog

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestMediaURL_Preference(t *testing.T) {
	song := Song{
		ID: "a",
		Links: []MediaLink{
			{Quality: "96kbps", URL: "https://cdn/a_96.mp4"},
			{Quality: "160kbps", URL: ""},
			{Quality: "320kbps", URL: "https://cdn/a_320.mp4"},
		},
		URL: "https://cdn/a_raw.mp4",
	}

	tests := []struct {
		name      string
		song      Song
		preferred string
		want      string
	}{
		{"preferred bitrate wins", song, "320kbps", "https://cdn/a_320.mp4"},
		{"empty preference defaults to 320kbps", song, "", "https://cdn/a_320.mp4"},
		{"missing preference falls back to first link", song, "12kbps", "https://cdn/a_96.mp4"},
		{"link without url is skipped", song, "160kbps", "https://cdn/a_96.mp4"},
		{"raw link when no bitrate links", Song{ID: "b", URL: "https://cdn/b.mp3"}, "320kbps", "https://cdn/b.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MediaURL(tt.song, tt.preferred)
			if err != nil {
				t.Fatalf("MediaURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MediaURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMediaURL_NoLink(t *testing.T) {
	_, err := MediaURL(Song{ID: "x"}, "320kbps")
	if !errors.Is(err, ErrNoMediaLink) {
		t.Errorf("MediaURL() error = %v, want ErrNoMediaLink", err)
	}
}

func TestSong_JSONDurationInSeconds(t *testing.T) {
	s := Song{ID: "a", Name: "Song A", Duration: 180 * time.Second}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw error = %v", err)
	}
	if raw["duration"] != float64(180) {
		t.Errorf("duration field = %v, want 180", raw["duration"])
	}

	var back Song
	if err := json.Unmarshal([]byte(`{"id":"b","name":"B","duration":-5}`), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Duration != 0 {
		t.Errorf("negative duration decoded as %v, want 0", back.Duration)
	}
}

func TestSame_ComparesIDOnly(t *testing.T) {
	a := Song{ID: "1", Name: "one"}
	b := Song{ID: "1", Name: "renamed"}
	if !a.Same(b) {
		t.Error("songs with equal IDs should be the same")
	}
	if a.Same(Song{ID: "2", Name: "one"}) {
		t.Error("songs with different IDs should differ")
	}
}

func TestIndexOf(t *testing.T) {
	songs := []Song{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if got := IndexOf(songs, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(songs, "z"); got != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", got)
	}
}

func TestSong_HugeDurationSaturates(t *testing.T) {
	var s Song
	if err := json.Unmarshal([]byte(`{"id":"a","name":"A","duration":1e300}`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Duration != time.Duration(math.MaxInt64) {
		t.Errorf("Duration = %v, want %v", s.Duration, time.Duration(math.MaxInt64))
	}
}
