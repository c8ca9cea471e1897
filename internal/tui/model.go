package tui

import (
	"log/slog"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"globeview/internal/globe"
)

type mode int

const (
	modeGlobe mode = iota
	modeJump
	modePlaces
)

// Layout
const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// hud receives coordinate updates from the navigator.
type hud struct {
	c globe.Coordinates
}

func (h *hud) ShowCoordinates(c globe.Coordinates) { h.c = c }

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	mode        mode

	status    string
	statusErr bool

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Globe
	nav       *globe.Navigator
	canvas    *Canvas
	sched     *Scheduler
	hud       *hud
	dataset   globe.Dataset
	bookmarks []globe.Bookmark

	jump jumpForm
	tbl  table.Model
}

// Options configures a new Model.
type Options struct {
	Dataset   globe.Dataset
	Bookmarks []globe.Bookmark

	// Transition budget; zero values keep the defaults.
	Duration time.Duration
	Steps    int

	Logger *slog.Logger
	// Dir is where the dataset sidebar starts; defaults to the working directory.
	Dir string
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		status:      "globeview ready",
		canvas:      NewCanvas(),
		sched:       NewScheduler(),
		hud:         &hud{},
		dataset:     opts.Dataset,
		bookmarks:   opts.Bookmarks,
		cwd:         opts.Dir,
	}
	engine := globe.NewEngine(m.canvas, m.sched).WithTiming(opts.Duration, opts.Steps)
	m.nav = globe.NewNavigator(globe.NewScene(m.dataset, m.bookmarks), engine).
		WithDisplay(m.hud).
		WithLogger(opts.Logger)

	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.jump = newJumpForm()
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()

	m.nav.Initialize()
	return m
}

// Init starts the opening transition.
func (m Model) Init() tea.Cmd { return m.sched.Flush() }

// contentHeight is the space between header and footer.
func (m Model) contentHeight() int {
	return max(4, m.height-headerHeight-footerHeight)
}

// mapSize is the cell area given to the globe.
func (m Model) mapSize() (int, int) {
	w := max(10, m.width)
	if m.showSidebar {
		w -= sidebarWidth + 1
	}
	return max(10, w), m.contentHeight()
}
