package service

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Hub owns registered services and drives them in dependency order
type Hub struct {
	mu       sync.Mutex
	logger   *slog.Logger
	services map[string]Service
	args     map[string][]any
	sorted   []string // topological order, computed on InitAll
	started  []string // for reverse-order stop
}

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:   logger,
		services: make(map[string]Service),
		args:     make(map[string][]any),
	}
}

// Register adds svc; args are passed to its Init
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service %q registered twice", name)
	}
	h.services[name] = svc
	h.args[name] = args
	h.sorted = nil
	return nil
}

// Get returns the service registered under name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	svc, ok := h.services[name]
	return svc, ok
}

// InitAll calls Init on every service in dependency order
// On failure the already initialized services are stopped in reverse order
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	for n, name := range h.sorted {
		if err := h.services[name].Init(h.args[name]...); err != nil {
			h.stopReverse(h.sorted[:n])
			return fmt.Errorf("init %s: %w", name, err)
		}
	}
	return nil
}

// StartAll starts services in dependency order
// An Optional service that fails is logged and skipped, along with anything depending on it
// Any other failure stops the started services in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	skipped := make(map[string]bool)

	for _, name := range h.sorted {
		svc := h.services[name]

		if dep := h.skippedDependency(svc, skipped); dep != "" {
			h.logger.Warn("service skipped", "service", name, "missing", dep)
			skipped[name] = true
			continue
		}

		if err := svc.Start(); err != nil {
			if opt, ok := svc.(Optional); ok && opt.Optional() {
				h.logger.Warn("optional service failed to start", "service", name, "error", err)
				skipped[name] = true
				continue
			}
			h.stopReverse(h.started)
			h.started = nil
			return fmt.Errorf("start %s: %w", name, err)
		}
		h.logger.Debug("service started", "service", name)
		h.started = append(h.started, name)
	}
	return nil
}

func (h *Hub) skippedDependency(svc Service, skipped map[string]bool) string {
	for _, dep := range svc.Dependencies() {
		if skipped[dep] {
			return dep
		}
	}
	return ""
}

// StopAll stops started services in reverse order, logging errors
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopReverse(h.started)
	h.started = nil
}

// stopReverse stops names last to first, logging failures
func (h *Hub) stopReverse(names []string) {
	for _, name := range slices.Backward(names) {
		if err := h.services[name].Stop(); err != nil {
			h.logger.Error("service stop failed", "service", name, "error", err)
		}
	}
}

// Started reports whether name is running
func (h *Hub) Started(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.started, name)
}

// topologicalSort orders services so every dependency precedes its dependents
// Depth-first over sorted names keeps the order stable across runs
func (h *Hub) topologicalSort() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.services))
	order := make([]string, 0, len(h.services))

	var visit func(name, from string) error
	visit = func(name, from string) error {
		svc, ok := h.services[name]
		if !ok {
			return fmt.Errorf("service %s depends on unregistered service: %s", from, name)
		}
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("circular dependency detected at service %s", name)
		}
		state[name] = visiting
		deps := slices.Sorted(slices.Values(svc.Dependencies()))
		for _, dep := range deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.sortedNames() {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (h *Hub) sortedNames() []string {
	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Names returns registered service names in sorted order
func (h *Hub) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sortedNames()
}
