package service

// Service is the lifecycle of a host subsystem running beside the widget
// Audio output and the pose broadcast endpoint are services
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration handed over at registration
//  3. Start() - open devices, listeners, goroutines
//  4. [runtime operation]
//  5. Stop() - release everything, idempotent
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	// Init configures the service, args are service-specific config values
	Init(args ...any) error

	// Start begins service operation
	Start() error

	// Stop halts service operation, safe to call multiple times
	Stop() error
}

// Optional is implemented by services whose start failure must not abort the program
// A missing audio device degrades to silence
type Optional interface {
	Optional() bool
}
