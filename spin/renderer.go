package spin

// Renderer projects a pose onto a visual surface
// Called after every state mutation; implementations derive output from the absolute pose only
type Renderer interface {
	Render(p Pose)
}

// RenderFunc adapts a function to Renderer
type RenderFunc func(p Pose)

func (f RenderFunc) Render(p Pose) { f(p) }

// MultiRenderer fans a pose out to every renderer in order
type MultiRenderer []Renderer

func (m MultiRenderer) Render(p Pose) {
	for _, r := range m {
		if r != nil {
			r.Render(p)
		}
	}
}

type nopRenderer struct{}

func (nopRenderer) Render(Pose) {}
