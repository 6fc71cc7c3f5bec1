package layout

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"sccmap/pkg/digraph"
)

// Layout method names accepted by [Compute].
const (
	MethodDot    = "dot"
	MethodEades  = "eades"
	MethodIsomap = "isomap"
	MethodAuto   = "auto"
)

// ErrUnknownMethod is returned when the requested layout method does not
// exist. Use errors.Is to detect it.
var ErrUnknownMethod = errors.New("unknown layout method")

// Options configures position computation.
type Options struct {
	// Method selects the layout driver. Empty or "auto" tries each method
	// in order until one succeeds.
	Method string

	// Width and Height are the intended canvas dimensions, recorded on the
	// resulting Layout for renderers.
	Width  int
	Height int

	// Seed drives stochastic methods. The same seed always reproduces the
	// same positions.
	Seed int64

	// Logger receives fall-through warnings in auto mode. Nil discards them.
	Logger *log.Logger
}

// driver computes raw, unnormalized positions for every node.
type driver func(ctx context.Context, g *digraph.Graph, opts Options) (map[string]Point, error)

var drivers = map[string]driver{
	MethodDot:    dotPositions,
	MethodEades:  eadesPositions,
	MethodIsomap: isomapPositions,
}

// autoChain is the fall-through order for auto mode. Isomap comes last
// because it rejects disconnected graphs.
var autoChain = []string{MethodDot, MethodEades, MethodIsomap}

// Methods returns the available method names in auto-chain order.
func Methods() []string {
	out := make([]string, len(autoChain))
	copy(out, autoChain)
	return out
}

// Compute calculates positions for every node of g.
//
// With an explicit method a failure is returned as-is. In auto mode each
// method failure is logged as a warning and the next method is tried; the
// error of the final method is returned only when the whole chain fails.
// An empty graph yields an empty layout without invoking any driver.
func Compute(ctx context.Context, g *digraph.Graph, opts Options) (Layout, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	method := opts.Method
	if method == "" {
		method = MethodAuto
	}

	l := Layout{
		Method: method,
		Width:  opts.Width,
		Height: opts.Height,
		Seed:   opts.Seed,
	}

	if g.NodeCount() == 0 {
		if method == MethodAuto {
			l.Method = autoChain[0]
		}
		l.Positions = map[string]Point{}
		return l, nil
	}

	if method != MethodAuto {
		drv, ok := drivers[method]
		if !ok {
			return Layout{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
		}
		raw, err := drv(ctx, g, opts)
		if err != nil {
			return Layout{}, fmt.Errorf("layout %s: %w", method, err)
		}
		l.Positions = normalize(raw)
		return l, nil
	}

	var lastErr error
	for _, name := range autoChain {
		raw, err := drivers[name](ctx, g, opts)
		if err != nil {
			lastErr = err
			opts.Logger.Warn("layout method failed, trying next", "method", name, "err", err)
			continue
		}
		l.Method = name
		l.Positions = normalize(raw)
		return l, nil
	}
	return Layout{}, fmt.Errorf("all layout methods failed: %w", lastErr)
}

// normalize maps raw coordinates into the unit square. Degenerate axes
// (all nodes sharing one coordinate) collapse to the center line, so a
// single node lands at (0.5, 0.5).
func normalize(raw map[string]Point) map[string]Point {
	minX, maxX := raw[first(raw)].X, raw[first(raw)].X
	minY, maxY := raw[first(raw)].Y, raw[first(raw)].Y
	for _, p := range raw {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	out := make(map[string]Point, len(raw))
	for id, p := range raw {
		q := Point{X: 0.5, Y: 0.5}
		if maxX > minX {
			q.X = (p.X - minX) / (maxX - minX)
		}
		if maxY > minY {
			q.Y = (p.Y - minY) / (maxY - minY)
		}
		out[id] = q
	}
	return out
}

func first(m map[string]Point) string {
	for k := range m {
		return k
	}
	return ""
}
