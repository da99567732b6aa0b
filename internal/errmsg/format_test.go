package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "search failure",
			op:       OpCatalogSearch,
			err:      errors.New("catalog API error 503"),
			expected: "Failed to search catalog: catalog API error 503",
		},
		{
			name:     "load failure",
			op:       OpPlaybackLoad,
			err:      errors.New("no playable media link"),
			expected: "Failed to load song: no playable media link",
		},
		{
			name:     "storage failure",
			op:       OpStateSave,
			err:      errors.New("disk I/O error"),
			expected: "Failed to save session: disk I/O error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		subject  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			subject:  "Blue in Green",
			expected: "",
		},
		{
			name:     "includes subject",
			op:       OpPlaybackLoad,
			subject:  "Blue in Green",
			err:      errors.New("unsupported media format"),
			expected: "Failed to load song 'Blue in Green': unsupported media format",
		},
		{
			name:     "empty subject falls back to Format",
			op:       OpPlaybackSeek,
			err:      errors.New("no media loaded"),
			expected: "Failed to seek: no media loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.subject, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.subject, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpCatalogSearch,
		OpPlaybackLoad, OpPlaybackPlay, OpPlaybackPause, OpPlaybackStop,
		OpPlaybackSeek, OpPlaybackVolume, OpPlaybackStream,
		OpStateOpen, OpStateSave, OpStateLoad,
		OpConfigLoad, OpInitialize,
	}

	testErr := errors.New("test error")
	seen := make(map[Op]bool)

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Fatal("Op constant should not be empty")
			}
			if seen[op] {
				t.Errorf("duplicate Op %q", op)
			}
			seen[op] = true

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
