// Package core provides the semantic actions and runtime settings shared by
// the terminal UI, the SSH server and the CLI. It has no Bubble Tea
// dependency so the game coordinator can consume it directly.
package core

// Action represents a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionStart            // Enter - start or continue from the menu
	ActionFeed             // F, Space - feed the pet
	ActionPause            // P - pause/resume
	ActionReset            // R - ask to reset the save
	ActionConfirm          // Y, Enter - confirm a pending reset
	ActionCancel           // N, Escape - cancel a pending reset
	ActionMenu             // M, Escape - return to the menu
	ActionSpeedUp          // +, ] - next time speed preset
	ActionSpeedDown        // -, [ - previous time speed preset
	ActionJournal          // J - show the event journal
	ActionHelp             // ? - toggle full help
	ActionQuit             // Q, Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionFeed:
		return "Feed"
	case ActionPause:
		return "Pause"
	case ActionReset:
		return "Reset"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionMenu:
		return "Menu"
	case ActionSpeedUp:
		return "SpeedUp"
	case ActionSpeedDown:
		return "SpeedDown"
	case ActionJournal:
		return "Journal"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
