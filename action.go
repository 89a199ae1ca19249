package vram

// Action is a user command understood by a Session.
type Action int

const (
	// ActionNone has no effect.
	ActionNone Action = iota
	// ActionQuit stops the session.
	ActionQuit
	// ActionNext moves to the next buffer.
	ActionNext
	// ActionPrev moves to the previous buffer.
	ActionPrev
	// ActionForward10 moves ten buffers forward.
	ActionForward10
	// ActionBack10 moves ten buffers back.
	ActionBack10
	// ActionSave writes the displayed frame to disk.
	ActionSave
)

var actionNames = [...]string{
	ActionNone:      "none",
	ActionQuit:      "quit",
	ActionNext:      "next",
	ActionPrev:      "prev",
	ActionForward10: "forward10",
	ActionBack10:    "back10",
	ActionSave:      "save",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Delta returns the cursor movement of a navigation action, 0 otherwise.
func (a Action) Delta() int {
	switch a {
	case ActionNext:
		return 1
	case ActionPrev:
		return -1
	case ActionForward10:
		return 10
	case ActionBack10:
		return -10
	default:
		return 0
	}
}
