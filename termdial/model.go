package termdial

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/dial"
)

// mousePointer is the pointer id the terminal mouse is reported under.
const mousePointer = 0

// cellAspect converts terminal rows to dial units: a cell is about twice as
// tall as it is wide.
const cellAspect = 2

var (
	statusStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

// Config configures a Model.
type Config struct {
	// IdleTick is the polling interval when no animation is running. Injected
	// and scripted gestures advance one event per tick.
	IdleTick time.Duration
	// KnobFraction is the knob radius as a fraction of the shorter side.
	KnobFraction float64
	// KnobHole is the fraction of the knob radius around the center that
	// ignores presses.
	KnobHole float64
}

// DefaultConfig returns a 50ms idle tick and a knob of 0.4.
func DefaultConfig() Config {
	return Config{IdleTick: 50 * time.Millisecond, KnobFraction: 0.4}
}

// Model is a bubbletea front-end for a dial.Session. The mouse drives a
// single-touch knob centered in the terminal; the session should be
// configured with dial.AnchorSingle.
type Model struct {
	session *dial.Session
	clock   dial.Clock
	cfg     Config

	width, height int
	pressed       bool
	quitting      bool
}

// New creates a model for s.
func New(s *dial.Session, cfg Config) *Model {
	if cfg.IdleTick <= 0 {
		cfg.IdleTick = DefaultConfig().IdleTick
	}
	if cfg.KnobFraction <= 0 {
		cfg.KnobFraction = DefaultConfig().KnobFraction
	}
	return &Model{
		session: s,
		clock:   s.Scheduler().Clock(),
		cfg:     cfg,
	}
}

// Session returns the model's session.
func (m *Model) Session() *dial.Session { return m.session }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.nextTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "c":
			m.pressed = false
			m.session.Cancel(m.clock.NowMs())
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tickMsg:
		m.session.Update(m.clock.NowMs())
		return m, m.nextTick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	now := m.clock.NowMs()
	x, y := toDial(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.pressed || !m.canvas().Contains(x, y) {
			return
		}
		m.pressed = true
		m.session.Down(mousePointer, x, y, now)
	case tea.MouseActionMotion:
		if m.pressed {
			m.session.Move(now, dial.Pointer{ID: mousePointer, X: x, Y: y})
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.session.Up(mousePointer, x, y, now)
		}
	}
}

// nextTick reposts the tick after the session's frame delay, or the idle
// interval when nothing animates.
func (m *Model) nextTick() tea.Cmd {
	d, ok := m.session.NextDelay()
	if !ok {
		d = m.cfg.IdleTick
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	center, radius := m.knob()
	outer := radius + cellAspect
	m.session.SetAnchor(center, radius, dial.KnobShape(center, outer, m.cfg.KnobHole*radius/outer))
}

// knob returns the knob geometry in dial units. The bottom two rows are
// reserved for the status and help lines.
func (m *Model) knob() (dial.Point, float64) {
	rows := m.canvasRows()
	w := float64(m.width)
	h := float64(rows * cellAspect)
	return dial.Pt(w/2, h/2), math.Min(w, h) * m.cfg.KnobFraction
}

// canvas is the drawing area in dial units, excluding the status lines.
func (m *Model) canvas() dial.Rect {
	return dial.Rect{Width: float64(m.width), Height: float64(m.canvasRows() * cellAspect)}
}

func (m *Model) canvasRows() int {
	if m.height > 2 {
		return m.height - 2
	}
	return 0
}

// toDial maps a terminal cell to dial coordinates at the cell center.
func toDial(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row*cellAspect) + cellAspect/2.0
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.render())
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("drag the knob to calibrate • c cancel • q quit"))
	return b.String()
}

func (m *Model) status() string {
	return fmt.Sprintf("%-11s heading %5.1f°  radius %4.1f  gesture %s",
		m.session.State(), m.session.LastAngle(), m.session.Visuals().Radius, m.session.GestureState())
}

// render draws the ring, needle and finger markers as characters.
func (m *Model) render() string {
	rows := m.canvasRows()
	if m.width <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", m.width))
	}
	set := func(p dial.Point, ch rune) {
		col := int(math.Floor(p.X))
		row := int(math.Floor(p.Y / cellAspect))
		if row >= 0 && row < rows && col >= 0 && col < m.width {
			grid[row][col] = ch
		}
	}

	v := m.session.Visuals()
	if v.RingVisible && v.Radius > 0 {
		steps := int(2*math.Pi*v.Radius) + 8
		for i := 0; i < steps; i++ {
			set(dial.FingerAt(v.Center, v.Radius, 360*float64(i)/float64(steps)), 'o')
		}
	}
	if v.NeedleVisible && v.Radius > 0 {
		steps := int(v.Radius) + 1
		for i := 0; i <= steps; i++ {
			set(dial.FingerAt(v.Center, v.Radius*float64(i)/float64(steps), v.Heading), '*')
		}
		set(v.Center, '+')
	}
	if v.FingersVisible {
		set(v.Point1, '@')
		set(v.Point2, '@')
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// Run starts a full-screen bubbletea program with mouse motion reporting.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
