// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSearch      Action = "search"
	ActionSwitchFocus Action = "switch_focus"
	ActionHelp        Action = "help"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionClearQueue    Action = "clear_queue"

	// Search box actions
	ActionSubmit Action = "submit" // enter - run the search
	ActionBlur   Action = "blur"   // esc - leave the search box

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionNextPage  Action = "next_page"
	ActionPrevPage  Action = "prev_page"

	// Selection/activation actions
	ActionSelect  Action = "select"  // enter - play
	ActionAdd     Action = "add"     // a - add to queue
	ActionReplace Action = "replace" // r - replace queue

	// Queue-specific actions
	ActionDelete       Action = "delete"         // d/delete
	ActionMoveItemUp   Action = "move_item_up"   // shift+k
	ActionMoveItemDown Action = "move_item_down" // shift+j
)
