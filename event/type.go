package event

// EventType represents the type of widget lifecycle event
type EventType int

const (
	// EventNone is the zero value and never published
	EventNone EventType = iota

	// EventActivated signals the widget was (re)activated and reset to the default pose
	// Trigger: Widget.Activate | Consumer: status, logs
	EventActivated

	// EventDeactivated signals the widget was torn down
	// Trigger: Widget.Deactivate | Consumer: status, logs
	EventDeactivated

	// EventDragStarted signals a new gesture session
	// Trigger: single activation-start | Consumer: audio grab cue, card shadow, status
	EventDragStarted

	// EventDragEnded signals the gesture session ended by release, cancel, or leave
	// Trigger: pointer release | Consumer: card shadow, status
	EventDragEnded

	// EventInertiaStarted signals the decay loop took over after a release
	// Trigger: drag end | Consumer: status
	EventInertiaStarted

	// EventInertiaRested signals velocity fell below the rest threshold
	// Trigger: inertia frame | Consumer: audio rest cue, status
	EventInertiaRested

	// EventDoubleActivation signals two presses inside the double-activation window
	// Trigger: activation-start | Consumer: logs, status
	EventDoubleActivation

	// EventResetStarted signals the ease back to the default pose began
	// Trigger: double activation, explicit reset | Consumer: audio reset cue, status
	EventResetStarted

	// EventResetFinished signals the default pose was reached
	// Trigger: reset frame | Consumer: status
	EventResetFinished
)

var typeToName = map[EventType]string{
	EventNone:             "None",
	EventActivated:        "Activated",
	EventDeactivated:      "Deactivated",
	EventDragStarted:      "DragStarted",
	EventDragEnded:        "DragEnded",
	EventInertiaStarted:   "InertiaStarted",
	EventInertiaRested:    "InertiaRested",
	EventDoubleActivation: "DoubleActivation",
	EventResetStarted:     "ResetStarted",
	EventResetFinished:    "ResetFinished",
}

// String returns the registered event name
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "Unknown"
}
