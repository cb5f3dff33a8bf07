package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mindgrove/mindgrove/pkg/expand"
	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/scene"
	"github.com/mindgrove/mindgrove/pkg/tree"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// statusBarHeight is the number of rows reserved below the canvas.
const statusBarHeight = 2

// newViewCmd creates the view command, an interactive terminal viewer with
// mouse pan, wheel zoom, and clickable node controls.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "View a mind map interactively in the terminal",
		Long: `View opens an interactive viewer for a mind map file.

Controls:
  drag           pan the viewport
  wheel          zoom at the pointer
  click body     select a node
  click +        add a child node
  click ✦        expand the node via the suggestion service
  r              recenter on the root
  d              delete the selected node
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0])
		},
	}
}

func runView(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := loadConfig(logger)

	root, err := tree.ImportJSON(path)
	if err != nil {
		return err
	}

	var client *expand.Client
	if cfg.Expand.Endpoint != "" {
		var opts []expand.Option
		if cfg.Expand.APIKey != "" {
			opts = append(opts, expand.WithAPIKey(cfg.Expand.APIKey))
		}
		client, err = expand.NewClient(cfg.Expand.Endpoint, opts...)
		if err != nil {
			return err
		}
	}

	m := &viewModel{
		path:        path,
		root:        root,
		layoutCfg:   cfg.Layout,
		expandLimit: cfg.Expand.Limit,
		client:      client,
	}
	m.relayout()

	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = prog.Run()
	return err
}

// viewModel is the bubbletea model for the interactive viewer.
type viewModel struct {
	path        string
	root        *tree.Node
	layoutCfg   layout.Config
	expandLimit int
	client      *expand.Client

	scene     scene.Scene
	transform view.Transform
	width     int
	height    int
	centered  bool

	dragging     bool
	dragX, dragY int
	dragMoved    bool

	selected string
	status   string
}

// expandDoneMsg delivers the result of an asynchronous expand request.
type expandDoneMsg struct {
	nodeID   string
	children []*tree.Node
	err      error
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

// relayout rebuilds the scene from the current tree and reports the delta
// against the previous scene in the status line.
func (m *viewModel) relayout() {
	prev := m.scene
	positioned := layout.Layout(m.root, m.layoutCfg, 0, 0)
	m.scene = scene.Build(positioned, m.layoutCfg)

	d := scene.Diff(prev, m.scene)
	if d.Changed() && len(prev.Nodes) > 0 {
		moved := 0
		for _, mv := range d.Persisted {
			if mv.From != mv.To {
				moved++
			}
		}
		m.status = fmt.Sprintf("%d added, %d moved, %d removed",
			len(d.Entered), moved, len(d.Exited))
	}
}

// recenter fits the viewport to the root, picking a scale where a card spans
// a readable number of cells.
func (m *viewModel) recenter() {
	if m.width == 0 || m.height == 0 {
		return
	}
	scale := view.ScaleMin
	if minX, _, maxX, _ := m.scene.Bounds(); maxX > minX {
		if fit := float64(m.width) / (maxX - minX); fit < scale {
			scale = fit
		}
	}
	m.transform = view.Recenter(m.scene, float64(m.width), float64(m.canvasHeight()), scale)
}

func (m *viewModel) canvasHeight() int {
	return maxInt(m.height-statusBarHeight, 1)
}

// save persists the tree back to the map file.
func (m *viewModel) save() {
	if err := tree.ExportJSON(m.root, m.path); err != nil {
		m.status = "save failed: " + err.Error()
	}
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Only the projection surface is reallocated on resize; pan and zoom
		// survive except for the very first size message.
		if !m.centered {
			m.recenter()
			m.centered = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case expandDoneMsg:
		return m.handleExpandDone(msg)
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.recenter()
		m.status = "recentered"
	case "d":
		if m.selected != "" {
			m.deleteNode(m.selected)
		}
	case "+", "=":
		m.transform = m.transform.ZoomAt(float64(m.width)/2, float64(m.canvasHeight())/2, 1.2)
	case "-":
		m.transform = m.transform.ZoomAt(float64(m.width)/2, float64(m.canvasHeight())/2, 1/1.2)
	}
	return m, nil
}

func (m *viewModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.transform = m.transform.ZoomAt(x, y, 1.1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.transform = m.transform.ZoomAt(x, y, 1/1.1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonRight {
			m.dragging = true
			m.dragMoved = false
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.dragging {
			dx, dy := msg.X-m.dragX, msg.Y-m.dragY
			if dx != 0 || dy != 0 {
				m.dragMoved = true
				m.transform = m.transform.Pan(float64(dx), float64(dy))
				m.dragX, m.dragY = msg.X, msg.Y
			}
		}
	case tea.MouseActionRelease:
		wasDrag := m.dragging && m.dragMoved
		m.dragging = false
		if !wasDrag {
			return m.handleClick(x, y, msg.Button == tea.MouseButtonRight)
		}
	}
	return m, nil
}

// handleClick resolves a click through hit-testing and dispatches it.
func (m *viewModel) handleClick(x, y float64, secondary bool) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	callbacks := view.Callbacks{
		OnAddChildRequested: func(nodeID string) {
			m.addChild(nodeID)
		},
		OnExpandRequested: func(nodeID string) {
			cmd = m.startExpand(nodeID)
		},
		OnEditRequested: func(nodeID string) {
			m.selected = nodeID
			if n := tree.Find(m.root, nodeID); n != nil {
				m.status = fmt.Sprintf("selected %q", n.Label)
			}
		},
		OnDeleteRequested: func(nodeID string) {
			m.deleteNode(nodeID)
		},
	}

	hit := view.HitTest(m.scene, m.transform, x, y)
	if hit.Kind == view.HitBackground {
		m.selected = ""
		m.status = ""
	}
	callbacks.Dispatch(hit, secondary)
	return m, cmd
}

func (m *viewModel) addChild(parentID string) {
	child := tree.New("New idea")
	updated, err := tree.Insert(m.root, parentID, child)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.root = updated
	m.selected = child.ID
	m.relayout()
	m.save()
}

func (m *viewModel) deleteNode(id string) {
	updated, err := tree.Remove(m.root, id)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.root = updated
	if m.selected == id {
		m.selected = ""
	}
	m.relayout()
	m.save()
}

// startExpand marks the node busy and kicks off the request. The busy flag
// keeps the expand control inert until the result lands.
func (m *viewModel) startExpand(nodeID string) tea.Cmd {
	if m.client == nil {
		m.status = "no expand endpoint configured"
		return nil
	}
	node := tree.Find(m.root, nodeID)
	if node == nil || node.Busy {
		return nil
	}

	updated, err := tree.SetBusy(m.root, nodeID, true)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.root = updated
	m.relayout()
	m.status = fmt.Sprintf("expanding %q...", node.Label)

	label, limit, client := node.Label, m.expandLimit, m.client
	ancestry := pathTo(m.root, nodeID)
	return func() tea.Msg {
		children, err := client.Expand(context.Background(), label, ancestry, limit)
		return expandDoneMsg{nodeID: nodeID, children: children, err: err}
	}
}

func (m *viewModel) handleExpandDone(msg expandDoneMsg) (tea.Model, tea.Cmd) {
	if cleared, err := tree.SetBusy(m.root, msg.nodeID, false); err == nil {
		m.root = cleared
	}
	if msg.err != nil {
		m.status = "expand failed: " + msg.err.Error()
		m.relayout()
		return m, nil
	}
	for _, c := range msg.children {
		if updated, err := tree.Insert(m.root, msg.nodeID, c); err == nil {
			m.root = updated
		}
	}
	m.status = fmt.Sprintf("added %d suggestion(s)", len(msg.children))
	m.relayout()
	m.save()
	return m, nil
}

func (m *viewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	sink := newTermSink(m.selected)
	frame, err := render.Frame(m.scene, m.transform, m.width, m.canvasHeight(), render.DefaultPalette(), sink)
	if err != nil {
		return "render error: " + err.Error()
	}

	bar := StyleDim.Render(fmt.Sprintf(" %d nodes · scale %.2f · r recenter · q quit", len(m.scene.Nodes), m.transform.Scale))
	status := ""
	if m.status != "" {
		status = " " + StyleHighlight.Render(m.status)
	}
	return string(frame) + "\n" + bar + "\n" + status
}
