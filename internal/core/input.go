package core

// Action represents a semantic input intent, abstracted from physical key presses.
// Letters travel separately in Input.Rune so the game sees keystrokes in order.
type Action int

const (
	ActionNone         Action = iota
	ActionLetter              // A printable key; see Input.Rune
	ActionBackspace           // Backspace - drop the last typed letter
	ActionClear               // Ctrl+U - clear the typed prefix
	ActionStart               // Space/Enter on the title or results screen
	ActionEnd                 // Escape - end the running round
	ActionNextDuration        // Tab/Right - cycle round duration forward
	ActionPrevDuration        // Shift+Tab/Left - cycle round duration back
	ActionScores              // S - open the scoreboard (outside a round)
	ActionQuit                // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLetter:
		return "Letter"
	case ActionBackspace:
		return "Backspace"
	case ActionClear:
		return "Clear"
	case ActionStart:
		return "Start"
	case ActionEnd:
		return "End"
	case ActionNextDuration:
		return "NextDuration"
	case ActionPrevDuration:
		return "PrevDuration"
	case ActionScores:
		return "Scores"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a single discrete input event.
type Input struct {
	Action Action
	Rune   rune // Set only for ActionLetter
}

// Letter builds a letter input.
func Letter(r rune) Input {
	return Input{Action: ActionLetter, Rune: r}
}
