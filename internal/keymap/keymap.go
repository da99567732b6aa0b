package keymap

import "strings"

// Binding contexts.
const (
	ContextGlobal  = "global"
	ContextSearch  = "search"
	ContextResults = "results"
	ContextQueue   = "queue"
)

// Binding ties keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "search", "results", "queue"
}

// Bindings contains every key binding.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "quit", ContextGlobal},
	{ActionSearch, []string{"/"}, "search", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "switch pane", ContextGlobal},
	{ActionHelp, []string{"?"}, "help", ContextGlobal},
	{ActionPlayPause, []string{" "}, "play/pause", ContextGlobal},
	{ActionNextTrack, []string{"pgdown"}, "next", ContextGlobal},
	{ActionPrevTrack, []string{"pgup"}, "previous", ContextGlobal},
	{ActionSeekBack, []string{"shift+left"}, "seek -5s", ContextGlobal},
	{ActionSeekForward, []string{"shift+right"}, "seek +5s", ContextGlobal},
	{ActionVolumeUp, []string{"+", "="}, "volume up", ContextGlobal},
	{ActionVolumeDown, []string{"-"}, "volume down", ContextGlobal},
	{ActionToggleShuffle, []string{"S"}, "shuffle", ContextGlobal},
	{ActionCycleRepeat, []string{"R"}, "repeat", ContextGlobal},
	{ActionClearQueue, []string{"C"}, "clear queue", ContextGlobal},

	// Search box
	{ActionSubmit, []string{"enter"}, "search", ContextSearch},
	{ActionBlur, []string{"esc", "tab"}, "back to results", ContextSearch},

	// Results
	{ActionMoveDown, []string{"j", "down"}, "down", ContextResults},
	{ActionMoveUp, []string{"k", "up"}, "up", ContextResults},
	{ActionSelect, []string{"enter"}, "play", ContextResults},
	{ActionAdd, []string{"a"}, "add to queue", ContextResults},
	{ActionReplace, []string{"r"}, "replace queue", ContextResults},
	{ActionNextPage, []string{"]"}, "next page", ContextResults},
	{ActionPrevPage, []string{"["}, "previous page", ContextResults},

	// Queue
	{ActionMoveDown, []string{"j", "down"}, "down", ContextQueue},
	{ActionMoveUp, []string{"k", "up"}, "up", ContextQueue},
	{ActionJumpStart, []string{"g"}, "first", ContextQueue},
	{ActionJumpEnd, []string{"G"}, "last", ContextQueue},
	{ActionSelect, []string{"enter"}, "play", ContextQueue},
	{ActionDelete, []string{"d", "delete"}, "remove", ContextQueue},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "move down", ContextQueue},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "move up", ContextQueue},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContext returns a resolver for a pane: the global bindings overridden
// by the pane's own. The search box only sees its own bindings so every
// other key reaches the text input.
func ForContext(context string) *Resolver {
	if context == ContextSearch {
		return NewResolver(ByContext(ContextSearch))
	}
	return NewResolver(ByContext(ContextGlobal), ByContext(context))
}

// HelpLine renders the bindings of one context as "key desc · key desc".
func HelpLine(context string) string {
	parts := make([]string, 0, len(Bindings))
	for _, kb := range ByContext(context) {
		keys := make([]string, len(kb.Keys))
		for i, k := range kb.Keys {
			keys[i] = displayKey(k)
		}
		parts = append(parts, strings.Join(keys, "/")+" "+kb.Description)
	}
	return strings.Join(parts, " · ")
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
