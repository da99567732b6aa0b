package icons

import "testing"

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleUnicode)) })

	tests := []struct {
		style string
		want  Icons
	}{
		{"nerd", nerdIcons},
		{"unicode", unicodeIcons},
		{"none", noneIcons},
		{"", unicodeIcons},
		{"fancy", unicodeIcons},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if got := Current(); got != tt.want {
				t.Errorf("Init(%q) selected %+v, want %+v", tt.style, got, tt.want)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleUnicode)) })
	Init(string(StyleNone))

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Play", Play(), ">"},
		{"Pause", Pause(), "||"},
		{"Loading", Loading(), "..."},
		{"Shuffle", Shuffle(), "[S]"},
		{"RepeatAll", RepeatAll(), "[R]"},
		{"RepeatOne", RepeatOne(), "[1]"},
		{"NowPlaying", NowPlaying(), "* "},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestSetsAreComplete(t *testing.T) {
	for _, style := range []Style{StyleNerd, StyleUnicode, StyleNone} {
		set := Lookup(style)
		for name, v := range map[string]string{
			"Play": set.Play, "Pause": set.Pause, "Loading": set.Loading,
			"Shuffle": set.Shuffle, "RepeatAll": set.RepeatAll,
			"RepeatOne": set.RepeatOne, "NowPlaying": set.NowPlaying,
		} {
			if v == "" {
				t.Errorf("Lookup(%s).%s is empty", style, name)
			}
		}
	}
}
