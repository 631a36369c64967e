package status

import "sync/atomic"

// Metric names
const (
	MetricFrames         = "frames"
	MetricDrags          = "drags"
	MetricDoubles        = "double_activations"
	MetricResets         = "resets"
	MetricInertiaRuns    = "inertia_runs"
	MetricRests          = "rests"
	MetricActivations    = "activations"
	MetricRemoteClients  = "remote_clients"
	MetricRotX           = "rot_x"
	MetricRotY           = "rot_y"
	MetricVelX           = "vel_x"
	MetricVelY           = "vel_y"
	MetricMode           = "mode"
	MetricLastEvent      = "last_event"
	MetricAudioEnabled   = "audio_enabled"
	MetricNetworkEnabled = "network_enabled"
)

// Registry groups metrics by kind
// Writers cache pointers at setup; the status bar reads them each frame
type Registry struct {
	Flags    *MetricMap[atomic.Bool]
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
	Labels   *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Flags:    NewMetricMap[atomic.Bool](),
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
		Labels:   NewMetricMap[Label](),
	}
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Flags.Count() + r.Counters.Count() + r.Gauges.Count() + r.Labels.Count()
}
