// Package tui is a live terminal view of a running engine: a Braille
// scatter of the particle cloud next to a kinetic-energy sparkline.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pipeflow/internal/metrics"
	"github.com/san-kum/pipeflow/internal/sph"
	"github.com/san-kum/pipeflow/internal/viz"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const (
	canvasWidth  = 48
	canvasHeight = 16
	graphWidth   = 40
	graphHeight  = 12
	historyLen   = 120
)

type tickMsg time.Time

type Model struct {
	eng       *sph.Engine
	dt        float64
	frameRate int
	plane     viz.Plane
	canvas    *viz.Canvas

	paused  bool
	history []float64
	stepErr error
}

func NewModel(eng *sph.Engine, dt float64, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		eng:       eng,
		dt:        dt,
		frameRate: frameRate,
		canvas:    viz.NewCanvas(canvasWidth, canvasHeight),
		history:   make([]float64, 0, historyLen),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "p":
			m.plane = (m.plane + 1) % 3
		case "r":
			if err := m.eng.Reset(); err != nil {
				m.stepErr = err
			} else {
				m.stepErr = nil
				m.history = m.history[:0]
			}
		}
		return m, nil

	case tickMsg:
		if !m.paused && m.stepErr == nil {
			if err := m.eng.Step(m.dt); err != nil {
				m.stepErr = err
			}
			m.history = append(m.history, metrics.Kinetic(m.eng.Velocities()))
			if len(m.history) > historyLen {
				m.history = m.history[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.Scatter(m.eng.Positions(), m.eng.Bounds(), m.plane)

	left := panelStyle.Render(m.canvas.String())

	graph := "collecting..."
	if len(m.history) > 1 {
		graph = asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("kinetic energy"),
		)
	}
	right := panelStyle.Render(graph)

	status := fmt.Sprintf("particles %d   t=%.3fs   plane %s",
		m.eng.Len(), m.eng.Time(), m.plane)
	if m.paused {
		status += "   [paused]"
	}
	footer := dimStyle.Render(status + "\nspace pause · p plane · r reset · q quit")
	if m.stepErr != nil {
		footer = warnStyle.Render(m.stepErr.Error()) + "\n" + footer
	}

	return titleStyle.Render("pipeflow") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n" +
		footer
}

// Run blocks until the user quits the live view.
func Run(eng *sph.Engine, dt float64, frameRate int) error {
	_, err := tea.NewProgram(NewModel(eng, dt, frameRate)).Run()
	return err
}
