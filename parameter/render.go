package parameter

import "time"

// Frame Loop
const (
	// FrameRate is the default display refresh rate
	FrameRate = 60

	// FrameInterval is the display refresh interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// PostQueueSize is the capacity of the command channel feeding the frame loop
	PostQueueSize = 256
)

// Card Layout
const (
	// CardMaxRows caps the card height in terminal rows
	CardMaxRows = 24

	// CardMinRows is the smallest card drawn before giving up on the layout
	CardMinRows = 4

	// CellAspect is the width/height ratio of a terminal cell inverted (2 columns ~ 1 row)
	CellAspect = 2.0

	// Perspective is the eye distance in card widths (1200px perspective over a 448px card)
	Perspective = 1200.0 / 448.0

	// ShadowOffsetIdle and ShadowOffsetGrabbed are drop shadow offsets in rows
	ShadowOffsetIdle    = 2
	ShadowOffsetGrabbed = 1

	// HintText is shown under the card while the view is open
	HintText = "drag to rotate · double-click to reset · esc to close"

	// ClosedText is shown while the view is closed
	ClosedText = "enter: open card · q: quit"

	// CloseButton is drawn at the card's top-right corner
	CloseButton = "[x]"
)

// Back face dimming factor
const BackFaceDim = 0.55

// CardWidthPx is the reference card width pointer deltas are scaled to
// Sensitivity constants are tuned in these units
const CardWidthPx = 448.0

// MousePointerID is the pointer id of the local terminal mouse
const MousePointerID = 1

// Default card face
const (
	CardTitle    = "tiltcard"
	CardSubtitle = "drag me"
)
