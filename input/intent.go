package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Ctrl+C, Ctrl+Q
	IntentResize // Terminal resize event

	// Card view
	IntentOpen         // Enter while closed
	IntentClose        // Esc, close button, backdrop click
	IntentReset        // r, ease back to the default pose
	IntentToggleMute   // m
	IntentToggleStatus // s
)

var intentNames = map[IntentType]string{
	IntentNone:         "none",
	IntentQuit:         "quit",
	IntentResize:       "resize",
	IntentOpen:         "open",
	IntentClose:        "close",
	IntentReset:        "reset",
	IntentToggleMute:   "toggle_mute",
	IntentToggleStatus: "toggle_status",
}

func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "unknown"
}
