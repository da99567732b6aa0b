package keymap

import (
	"strings"
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context string
		minLen  int
	}{
		{ContextGlobal, 10},
		{ContextSearch, 2},
		{ContextResults, 5},
		{ContextQueue, 6},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			result := ByContext(tt.context)
			if len(result) < tt.minLen {
				t.Errorf("ByContext(%q) returned %d items, want at least %d", tt.context, len(result), tt.minLen)
			}
			if tt.minLen == 0 && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, want none", tt.context, len(result))
			}
			for _, b := range result {
				if b.Context != tt.context {
					t.Errorf("binding context = %q, want %q", b.Context, tt.context)
				}
			}
		})
	}
}

func TestForContext(t *testing.T) {
	tests := []struct {
		context string
		key     string
		want    Action
	}{
		{ContextResults, "enter", ActionSelect},
		{ContextResults, "a", ActionAdd},
		{ContextResults, " ", ActionPlayPause},
		{ContextResults, "tab", ActionSwitchFocus},
		{ContextQueue, "d", ActionDelete},
		{ContextQueue, "J", ActionMoveItemDown},
		{ContextQueue, "a", ""},
		{ContextSearch, "enter", ActionSubmit},
		{ContextSearch, "tab", ActionBlur},
		{ContextSearch, "q", ""},
		{ContextSearch, " ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.context+"/"+tt.key, func(t *testing.T) {
			if got := ForContext(tt.context).Resolve(tt.key); got != tt.want {
				t.Errorf("ForContext(%q).Resolve(%q) = %q, want %q", tt.context, tt.key, got, tt.want)
			}
		})
	}
}

func TestNoDuplicateKeysWithinContext(t *testing.T) {
	for _, ctx := range []string{ContextGlobal, ContextSearch, ContextResults, ContextQueue} {
		seen := make(map[string]Action)
		for _, b := range ByContext(ctx) {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					t.Errorf("%s: key %q bound to both %q and %q", ctx, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
}

func TestHelpLine(t *testing.T) {
	line := HelpLine(ContextGlobal)
	for _, want := range []string{"q/ctrl+c quit", "space play/pause", " · "} {
		if !strings.Contains(line, want) {
			t.Errorf("HelpLine(global) missing %q in %q", want, line)
		}
	}
	if got := HelpLine("unknown"); got != "" {
		t.Errorf("HelpLine(unknown) = %q, want empty", got)
	}
}
