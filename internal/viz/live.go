package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sansuarezs055/gaslab/internal/gas"
)

const (
	liveWidth       = 72
	liveHeight      = 22
	historyCapacity = 600
)

type TickMsg time.Time

// Model animates a gas run in the terminal: the box on a braille canvas
// on the left, run statistics and the pressure history on the right.
type Model struct {
	sim          *gas.Simulation
	cfg          gas.Config
	canvas       *Canvas
	running      bool
	stepsPerTick int
	pressureHist []float64
	err          error
}

func NewModel(cfg gas.Config) (Model, error) {
	sim, err := gas.New(cfg)
	if err != nil {
		return Model{}, err
	}
	return Model{
		sim:          sim,
		cfg:          cfg,
		canvas:       NewCanvas(liveWidth, liveHeight),
		running:      true,
		stepsPerTick: 1,
		pressureHist: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			if m.stepsPerTick < 16 {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerTick; i++ {
				if m.sim.StepCount() >= m.cfg.Steps {
					m.running = false
					break
				}
				if err := m.sim.Step(); err != nil {
					m.err = err
					m.running = false
					break
				}
			}
			m.pressureHist = append(m.pressureHist, m.sim.Box().Pressure())
			if len(m.pressureHist) > historyCapacity {
				m.pressureHist = m.pressureHist[1:]
			}
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) reset() {
	sim, err := gas.New(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.sim = sim
	m.pressureHist = m.pressureHist[:0]
	m.err = nil
	m.running = true
}

// draw renders the box border and every disk onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	m.canvas.DrawRect(0, 0, cw-1, ch-1)

	box := m.sim.Box()
	sx := float64(cw-1) / box.Width()
	sy := float64(ch-1) / box.Height()

	for _, p := range m.sim.Particles() {
		px := int((p.X - box.XMin) * sx)
		py := int((box.YMax - p.Y) * sy)
		r := int(p.Radius * sx)
		m.canvas.FillCircle(px, py, r)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("HARD-DISK GAS") + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = pausedStyle.Render("HALTED: " + m.err.Error())
	case m.sim.StepCount() >= m.cfg.Steps:
		status = "DONE"
	case !m.running:
		status = pausedStyle.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.pressureHist) > 1 {
		chart := asciigraph.Plot(m.pressureHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Pressure"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.sim.StepCount(), m.cfg.Steps)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.sim.KineticEnergy())) + "\n")
	s.WriteString(labelStyle.Render("Pressure") + valueStyle.Render(fmt.Sprintf("%.4f", m.sim.Box().Pressure())) + "\n")
	s.WriteString(labelStyle.Render("Impacts") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Box().Impacts())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.cfg.N)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx", m.stepsPerTick)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(cfg gas.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
