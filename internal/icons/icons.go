// Package icons holds the glyph sets used by the player bar and lists.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs of one style.
type Icons struct {
	Play       string
	Pause      string
	Loading    string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	NowPlaying string // prefix of the current song in lists
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b",     // nf-fa-play
		Pause:      "\uf04c",     // nf-fa-pause
		Loading:    "\uf110",     // nf-fa-spinner
		Shuffle:    "\U000f049f", // nf-md-shuffle
		RepeatAll:  "\U000f0456", // nf-md-repeat
		RepeatOne:  "\U000f0458", // nf-md-repeat_once
		NowPlaying: "\uf001 ",    // nf-fa-music
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Loading:    "…",
		Shuffle:    "⇄",
		RepeatAll:  "↻",
		RepeatOne:  "↻1",
		NowPlaying: "♪ ",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Loading:    "...",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		NowPlaying: "* ",
	}

	current = unicodeIcons
)

// Init selects the icon set. Unknown styles fall back to unicode.
// Call it once at startup with the config value.
func Init(style string) {
	current = Lookup(Style(style))
}

// Lookup returns the set for style.
func Lookup(style Style) Icons {
	switch style {
	case StyleNerd:
		return nerdIcons
	case StyleNone:
		return noneIcons
	case StyleUnicode:
		return unicodeIcons
	default:
		return unicodeIcons
	}
}

// Current returns the active set.
func Current() Icons {
	return current
}

// Glyph accessors for the active set.

func Play() string { return current.Play }
func Pause() string { return current.Pause }
func Loading() string { return current.Loading }
func Shuffle() string { return current.Shuffle }
func RepeatAll() string { return current.RepeatAll }
func RepeatOne() string { return current.RepeatOne }
func NowPlaying() string { return current.NowPlaying }
