// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 BenchLab

package cmd

import (
	"fmt"
	"time"

	"github.com/BenchLab-io/efcx9/pkg/efcx9"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live sensor dashboard",
	Long: `Show a live dashboard of temperatures, input power and fan tachometers,
refreshed once per second. Press q to quit.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	dev, info, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Disconnect()

	m := initialMonitorModel(dev, info)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type monitorModel struct {
	dev  efcx9.Device
	info string

	fans     table.Model
	snap     efcx9.SensorSnapshot
	haveSnap bool
	readErr  error
	failures int

	width  int
	height int
}

type monitorTickMsg time.Time

type monitorReadMsg struct {
	snap efcx9.SensorSnapshot
	err  error
}

func initialMonitorModel(dev efcx9.Device, info string) monitorModel {
	columns := []table.Column{
		{Title: "Fan", Width: 5},
		{Title: "Tach (RPM)", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(efcx9.FanCount+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderBottom(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return monitorModel{
		dev:    dev,
		info:   info,
		fans:   t,
		width:  80,
		height: 24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.readCmd(), monitorTickCmd())
}

func monitorTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

// readCmd performs one blocking sensor read off the UI loop.
func (m monitorModel) readCmd() tea.Cmd {
	dev := m.dev
	return func() tea.Msg {
		snap, err := dev.ReadSensors()
		return monitorReadMsg{snap: snap, err: err}
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case monitorTickMsg:
		return m, tea.Batch(m.readCmd(), monitorTickCmd())

	case monitorReadMsg:
		m.readErr = msg.err
		if msg.err != nil {
			m.failures++
			return m, nil
		}
		m.failures = 0
		m.snap = msg.snap
		m.haveSnap = true

		rows := make([]table.Row, efcx9.FanCount)
		for i, tach := range msg.snap.FanTach {
			rows[i] = table.Row{fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", tach)}
		}
		m.fans.SetRows(rows)
	}

	var cmd tea.Cmd
	m.fans, cmd = m.fans.Update(msg)
	return m, cmd
}

func (m monitorModel) View() string {
	title := titleStyle.Render("EFC-X9 Monitor") + "  " + m.info

	var env string
	if m.haveSnap {
		s := m.snap
		env = fmt.Sprintf(
			"Thermistor 1  %5.1f °C\nThermistor 2  %5.1f °C\nAmbient       %5.1f °C\nHumidity      %5.1f %%RH\nInput         %.1f V  %.1f A",
			float64(s.Thermistor1)/10, float64(s.Thermistor2)/10,
			float64(s.Ambient)/10, float64(s.Humidity)/10,
			float64(s.VoltageIn)/10, float64(s.CurrentIn)/10,
		)
	} else {
		env = "waiting for first reading..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(env),
		panelStyle.Render(m.fans.View()),
	)

	status := helpStyle.Render("q: quit")
	if m.readErr != nil {
		// Repeated timeouts usually mean the board was unplugged.
		status = errStyle.Render(fmt.Sprintf("read failed (%d in a row): %v", m.failures, m.readErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status) + "\n"
}
