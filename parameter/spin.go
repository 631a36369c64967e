package parameter

import "time"

// Spin Interaction
const (
	// SpinSensitivity converts pointer pixels into degrees of rotation
	SpinSensitivity = 0.8

	// SpinFriction is applied multiplicatively to velocity on every inertia frame
	SpinFriction = 0.98

	// SpinVelocityScale amplifies the instantaneous pointer velocity sample
	SpinVelocityScale = 2.0

	// SpinNominalFrame is the fixed step used to turn velocity into displacement during inertia
	// Not measured: inertia wall-clock duration depends on the display rate
	SpinNominalFrame = 16 * time.Millisecond

	// SpinRestThreshold stops inertia once both velocity components fall below it
	SpinRestThreshold = 0.001

	// SpinMinSampleInterval floors the time between two pointer samples
	SpinMinSampleInterval = time.Millisecond

	// SpinDoubleActivationWindow is the max gap between two presses read as a reset request
	SpinDoubleActivationWindow = 300 * time.Millisecond

	// SpinResetDuration is the length of the ease back to the default pose
	SpinResetDuration = 500 * time.Millisecond
)

// Default Pose (degrees)
const (
	SpinDefaultRotX = 10.0
	SpinDefaultRotY = -10.0
)
