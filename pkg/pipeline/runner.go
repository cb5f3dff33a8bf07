// Package pipeline orchestrates the layout → scene → render stages that turn
// a tree into output artifacts, with content-addressed caching between
// stages.
package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mindgrove/mindgrove/pkg/cache"
	"github.com/mindgrove/mindgrove/pkg/errors"
	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/observability"
	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/render/nodelink"
	"github.com/mindgrove/mindgrove/pkg/render/sink"
	"github.com/mindgrove/mindgrove/pkg/scene"
	"github.com/mindgrove/mindgrove/pkg/tree"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// sceneTTL bounds how long cached scenes live; artifacts inherit it.
const sceneTTL = 24 * time.Hour

// Runner executes the render pipeline.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCache sets the cache backend. Defaults to a null cache.
func WithCache(c cache.Cache) RunnerOption {
	return func(r *Runner) { r.cache = c }
}

// WithKeyer sets the cache keyer.
func WithKeyer(k cache.Keyer) RunnerOption {
	return func(r *Runner) { r.keyer = k }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a pipeline runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result holds the artifacts of one pipeline run.
type Result struct {
	// Artifacts maps format to rendered bytes.
	Artifacts map[Format][]byte

	// Scene is the built scene, for map visualizations.
	Scene scene.Scene

	// Transform is the viewport transform the artifacts were rendered with.
	Transform view.Transform

	// Stats describes the run.
	Stats Stats
}

// Stats describes one pipeline run.
type Stats struct {
	NodeCount      int
	LayoutDuration time.Duration
	RenderDuration time.Duration
	SceneCached    bool
}

// Run executes the pipeline for the given tree and options.
func (r *Runner) Run(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree has no root node")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if dups := tree.Validate(root); len(dups) > 0 {
		r.logger.Warn("tree contains duplicate node IDs; keeping first occurrences",
			"duplicates", len(dups))
	}

	if opts.Viz == VizDot {
		return r.runDot(ctx, root, opts)
	}
	return r.runMap(ctx, root, opts)
}

// runMap executes layout → scene → render with per-stage caching.
func (r *Runner) runMap(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	res := &Result{Artifacts: make(map[Format][]byte)}

	treeJSON, err := json.Marshal(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash tree")
	}
	treeHash := cache.Hash(treeJSON)

	sceneKey := r.keyer.SceneKey(treeHash, sceneKeyOpts(opts.Layout))
	s, cached, err := r.loadScene(ctx, sceneKey)
	if err != nil {
		r.logger.Warn("scene cache read failed", "err", err)
	}

	if cached {
		observability.CacheHit(sceneKey)
		res.Scene = s
		res.Stats.SceneCached = true
		res.Stats.NodeCount = len(s.Nodes)
	} else {
		observability.CacheMiss(sceneKey)
		nodeCount := tree.Count(root)
		observability.LayoutStart(nodeCount)
		start := time.Now()

		positioned := layout.Layout(root, opts.Layout, 0, 0)
		res.Scene = scene.Build(positioned, opts.Layout)

		res.Stats.LayoutDuration = time.Since(start)
		res.Stats.NodeCount = len(res.Scene.Nodes)
		observability.LayoutComplete(nodeCount, res.Stats.LayoutDuration)

		if data, err := scene.Marshal(res.Scene); err == nil {
			if err := r.cache.Set(ctx, sceneKey, data, sceneTTL); err != nil {
				r.logger.Warn("scene cache write failed", "err", err)
			}
		}
	}

	res.Transform = opts.Transform
	if opts.Recenter || res.Transform == (view.Transform{}) {
		res.Transform = view.Recenter(res.Scene, float64(opts.Width), float64(opts.Height), view.DefaultScale)
	}

	sceneData, err := scene.Marshal(res.Scene)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash scene")
	}
	sceneHash := cache.Hash(sceneData)

	renderStart := time.Now()
	for _, f := range opts.Formats {
		artifact, err := r.renderFormat(ctx, res.Scene, res.Transform, sceneHash, f, opts)
		if err != nil {
			return nil, err
		}
		res.Artifacts[f] = artifact
	}
	res.Stats.RenderDuration = time.Since(renderStart)

	r.logger.Debug("pipeline complete",
		"nodes", res.Stats.NodeCount,
		"formats", len(res.Artifacts),
		"scene_cached", res.Stats.SceneCached)
	return res, nil
}

// renderFormat produces one artifact, consulting the artifact cache first.
func (r *Runner) renderFormat(ctx context.Context, s scene.Scene, t view.Transform, sceneHash string, f Format, opts Options) ([]byte, error) {
	key := r.keyer.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{
		Format: string(f),
		Width:  opts.Width,
		Height: opts.Height,
		PanX:   t.PanX,
		PanY:   t.PanY,
		Scale:  t.Scale,
	})
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.CacheHit(key)
		return data, nil
	}
	observability.CacheMiss(key)

	observability.RenderStart(string(f))
	start := time.Now()

	var out render.Sink
	switch f {
	case FormatSVG:
		out = sink.NewSVG()
	case FormatPNG:
		out = sink.NewRaster()
	case FormatJSON:
		out = sink.NewJSON()
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "format %q has no map sink", f)
	}

	data, err := render.Frame(s, t, opts.Width, opts.Height, render.DefaultPalette(), out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}
	observability.RenderComplete(string(f), len(data), time.Since(start))

	if err := r.cache.Set(ctx, key, data, sceneTTL); err != nil {
		r.logger.Warn("artifact cache write failed", "err", err)
	}
	return data, nil
}

// runDot produces graphviz node-link artifacts.
func (r *Runner) runDot(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	res := &Result{Artifacts: make(map[Format][]byte)}
	res.Stats.NodeCount = tree.Count(root)

	dot := nodelink.ToDOT(root)
	start := time.Now()
	for _, f := range opts.Formats {
		switch f {
		case FormatDOT:
			res.Artifacts[f] = []byte(dot)
		case FormatSVG:
			data, err := nodelink.RenderSVG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render dot svg")
			}
			res.Artifacts[f] = data
		case FormatPNG:
			data, err := nodelink.RenderPNG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render dot png")
			}
			res.Artifacts[f] = data
		}
	}
	res.Stats.RenderDuration = time.Since(start)
	return res, nil
}

// loadScene tries the scene cache.
func (r *Runner) loadScene(ctx context.Context, key string) (scene.Scene, bool, error) {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil || !ok {
		return scene.Scene{}, false, err
	}
	s, err := scene.Unmarshal(data)
	if err != nil {
		// Corrupt entry, drop it and rebuild.
		_ = r.cache.Delete(ctx, key)
		return scene.Scene{}, false, nil
	}
	return s, true, nil
}

func sceneKeyOpts(cfg layout.Config) cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		CardWidth:  cfg.CardWidth,
		CardHeight: cfg.CardHeight,
		HGap:       cfg.HGap,
		VGap:       cfg.VGap,
		LevelDrop:  cfg.LevelDrop,
		IndentStep: cfg.IndentStep,
	}
}
