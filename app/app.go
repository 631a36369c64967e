// Package app hosts the tilt card in a terminal: it wires the widget to tcell input, the card renderer and the services
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tiltcard/audio"
	"github.com/lixenwraith/tiltcard/config"
	"github.com/lixenwraith/tiltcard/core"
	"github.com/lixenwraith/tiltcard/engine"
	"github.com/lixenwraith/tiltcard/event"
	"github.com/lixenwraith/tiltcard/input"
	"github.com/lixenwraith/tiltcard/network"
	"github.com/lixenwraith/tiltcard/render"
	"github.com/lixenwraith/tiltcard/service"
	"github.com/lixenwraith/tiltcard/spin"
	"github.com/lixenwraith/tiltcard/status"
)

// Options carries injectable collaborators
type Options struct {
	Logger  *slog.Logger
	Clock   engine.Clock
	Texture render.Texture

	// Scheduler replaces the real frame loop; tests step frames by hand and call Present
	Scheduler engine.FrameScheduler
}

// App is the terminal host
// Every method except Run runs on the frame loop goroutine
type App struct {
	screen tcell.Screen
	cfg    config.Config
	logger *slog.Logger
	clock  engine.Clock

	loop  *engine.Loop // nil with an injected scheduler
	sched engine.FrameScheduler

	bus     *event.Bus
	widget  *spin.Widget
	card    *render.CardRenderer
	router  *input.Router
	mouse   input.MouseTracker
	keys    *input.KeyTable
	tracker *status.Tracker

	hub     *service.Hub
	player  *audio.Player
	network *network.Service

	open      bool
	frames    uint64
	lastMode  spin.Mode
	lastPeers int
}

// New builds the app around an initialized screen
func New(screen tcell.Screen, cfg config.Config, opts Options) (*App, error) {
	a := &App{
		screen: screen,
		cfg:    cfg,
		logger: opts.Logger,
		clock:  opts.Clock,
		keys:   input.DefaultKeyTable(),
		bus:    event.NewBus(),
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.clock == nil {
		a.clock = engine.NewTimeProvider()
	}

	a.sched = opts.Scheduler
	if a.sched == nil {
		a.loop = engine.NewLoop(a.clock, cfg.FrameInterval())
		a.loop.OnFrame(a.Present)
		a.sched = a.loop
	}

	spinCfg, err := cfg.SpinConfig()
	if err != nil {
		return nil, err
	}

	tex := opts.Texture
	if tex == nil {
		if tex, err = loadTexture(cfg.Render); err != nil {
			return nil, err
		}
	}

	a.card = render.NewCardRenderer(screen, tex, cfg.CardConfig())
	a.router = input.NewRouter(a.card.Layout, a.Close)

	a.tracker = status.NewTracker(status.NewRegistry())
	a.tracker.Attach(a.bus)
	a.card.SetStatus(a.tracker.Line)

	a.player = audio.NewPlayer(a.logger)
	a.player.Attach(a.bus)
	a.network = network.NewService(a.logger, a.clock, a.remotePointer)

	a.bus.Subscribe(a.logEvent)

	a.widget, err = spin.New(a.sched, a.clock,
		spin.MultiRenderer{a.card, a.network},
		spin.WithConfig(spinCfg),
		spin.WithCapturer(a.router),
		spin.WithEvents(a.bus),
	)
	if err != nil {
		return nil, err
	}
	a.router.SetSink(a.widget)

	a.hub = service.NewHub(a.logger)
	if err := a.hub.Register(a.player, cfg.AudioConfig()); err != nil {
		return nil, err
	}
	if err := a.hub.Register(a.network, cfg.NetworkConfig()); err != nil {
		return nil, err
	}
	if err := a.hub.InitAll(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	registry := a.tracker.Registry()
	registry.Flags.Get(status.MetricAudioEnabled).Store(cfg.Audio.Enabled)
	registry.Flags.Get(status.MetricNetworkEnabled).Store(cfg.Network.Enabled)
	return a, nil
}

func loadTexture(rc config.RenderConfig) (render.Texture, error) {
	if rc.Image == "" {
		return render.NewLabelTexture(rc.Title, rc.Lines...), nil
	}
	tex, err := render.LoadImageTexture(rc.Image)
	if err != nil {
		return nil, fmt.Errorf("load card image: %w", err)
	}
	return tex, nil
}

// Start starts the services and opens the card view
func (a *App) Start() error {
	if err := a.hub.StartAll(); err != nil {
		return err
	}
	a.Open()
	a.Present(a.clock.Now())
	return nil
}

// Stop deactivates the widget and stops the services
func (a *App) Stop() {
	a.widget.Deactivate()
	a.hub.StopAll()
}

// Run starts the app and blocks until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	if a.loop == nil {
		return errors.New("app: Run needs the frame loop, not an injected scheduler")
	}
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()

	// PollEvent returns nil once the screen is finalized
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			posted := a.loop.Post(func() {
				if !a.HandleEvent(ev) {
					a.loop.Stop()
				}
			})
			if !posted {
				return
			}
		}
	})

	err := a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Open activates the widget and shows the card
func (a *App) Open() {
	if a.open {
		return
	}
	a.open = true
	a.card.SetOpen(true)
	a.widget.Activate()
}

// Close tears the widget down and hides the card
func (a *App) Close() {
	if !a.open {
		return
	}
	a.open = false
	a.widget.Deactivate()
	a.card.SetGrabbed(false)
	a.card.SetOpen(false)
}

// IsOpen reports whether the card view is shown
func (a *App) IsOpen() bool {
	return a.open
}

// Present publishes the frame: status snapshot, shadow state and screen flush
func (a *App) Present(now time.Time) {
	a.frames++
	mode := a.widget.Mode()
	peers := a.network.PeerCount()

	a.tracker.Observe(mode, a.widget.State(), a.frames, peers)
	a.card.SetGrabbed(mode == spin.ModeDragging)
	if a.card.ShowStatus() && (mode != a.lastMode || peers != a.lastPeers) {
		a.card.Redraw()
	}
	a.lastMode, a.lastPeers = mode, peers

	if a.card.TakeDirty() {
		a.screen.Show()
	}
}

// remotePointer is the network sink, called from connection goroutines
func (a *App) remotePointer(ev spin.PointerEvent) {
	a.post(func() {
		a.router.Remote(ev)
	})
}

// post runs fn on the loop goroutine, or inline when frames are stepped by hand
func (a *App) post(fn func()) {
	if a.loop == nil {
		fn()
		return
	}
	a.loop.Post(fn)
}

func (a *App) logEvent(ev event.Event) {
	a.logger.Debug("widget event",
		"type", ev.Type.String(),
		"pointer", ev.Pointer,
		"rot_x", ev.RotX,
		"rot_y", ev.RotY,
		"vel_x", ev.VelX,
		"vel_y", ev.VelY,
	)
}

// Widget exposes the hosted widget
func (a *App) Widget() *spin.Widget {
	return a.widget
}

// Card exposes the card renderer
func (a *App) Card() *render.CardRenderer {
	return a.card
}

// Network exposes the broadcast service
func (a *App) Network() *network.Service {
	return a.network
}

// Player exposes the cue player
func (a *App) Player() *audio.Player {
	return a.player
}

// Tracker exposes the status tracker
func (a *App) Tracker() *status.Tracker {
	return a.tracker
}
