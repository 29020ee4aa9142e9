// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Thermoquad/metis/pkg/metis"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live buffer record display",
	Long: `Poll the buffer record at a fixed interval and show the latest values,
status flags and a log of recent events.

Keys:
  q        Quit
  m        Cycle the buffer mode (0-3)
  l        Toggle the targeting light
  space    Pause/resume polling

Log output is suppressed while the display is active.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", time.Second, "Polling interval")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if monitorInterval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	dev, conn, err := OpenDevice()
	if err != nil {
		return err
	}
	defer conn.Close()

	// The alternate screen owns the terminal
	logger.SetOutput(io.Discard)

	info := portName
	if wsURL != "" {
		info = wsURL
	}

	m := newMonitorModel(dev, info, monitorInterval)
	if mode, err := dev.BufferMode(); err != nil {
		m.addLogEntry(fmt.Sprintf("Could not read buffer mode: %v", err), true)
	} else {
		m.mode = mode
		m.addLogEntry(fmt.Sprintf("Buffer mode %d", mode), false)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// Event log entry
type monitorLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// monitorDevice is the subset of the device facade the monitor drives
type monitorDevice interface {
	Address() int
	ReadBuffer() (*metis.BufferRecord, error)
	SetBufferMode(mode metis.BufferMode) error
	TargetingLight(state metis.TargetingLightState) (string, error)
}

// Monitor TUI model
type monitorModel struct {
	dev           monitorDevice
	connInfo      string
	interval      time.Duration
	spinner       spinner.Model
	polling       bool
	paused        bool
	last          *metis.BufferRecord
	lastAt        time.Time
	lastLatency   time.Duration
	mode          metis.BufferMode
	reads         int
	rejected      int
	failures      int
	eventLog      []monitorLogEntry
	maxLogEntries int
	width         int
	height        int
	quitting      bool
}

// Messages
type pollTickMsg time.Time
type bufferReadMsg struct {
	rec     *metis.BufferRecord
	err     error
	latency time.Duration
}
type actionMsg struct {
	message string
	err     error
}
type modeSetMsg struct {
	mode metis.BufferMode
	err  error
}

func newMonitorModel(dev monitorDevice, connInfo string, interval time.Duration) monitorModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("12"))),
	)
	return monitorModel{
		dev:           dev,
		connInfo:      connInfo,
		interval:      interval,
		spinner:       s,
		eventLog:      make([]monitorLogEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return pollTickMsg(time.Now()) },
	)
}

func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func readBufferCmd(dev monitorDevice) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		rec, err := dev.ReadBuffer()
		return bufferReadMsg{rec: rec, err: err, latency: time.Since(start)}
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if m.paused {
				m.addLogEntry("Polling paused", false)
				return m, nil
			}
			m.addLogEntry("Polling resumed", false)
			return m, pollTickCmd(m.interval)
		case "m":
			if m.polling {
				return m, nil
			}
			next := (m.mode + 1) % (metis.BufferModeThree + 1)
			m.polling = true
			dev := m.dev
			return m, func() tea.Msg {
				return modeSetMsg{mode: next, err: dev.SetBufferMode(next)}
			}
		case "l":
			if m.polling {
				return m, nil
			}
			m.polling = true
			dev := m.dev
			return m, func() tea.Msg {
				reply, err := dev.TargetingLight(metis.TargetingLightToggle)
				return actionMsg{message: "Targeting light toggled: " + reply, err: err}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollTickMsg:
		if m.paused || m.polling {
			return m, nil
		}
		m.polling = true
		return m, readBufferCmd(m.dev)

	case bufferReadMsg:
		m.polling = false
		m.reads++
		m.lastLatency = msg.latency
		if msg.err != nil {
			if errors.Is(msg.err, metis.ErrRejected) {
				m.rejected++
			} else {
				m.failures++
			}
			m.addLogEntry(fmt.Sprintf("READ ERROR: %v", msg.err), true)
		} else {
			m.last = msg.rec
			m.lastAt = time.Now()
		}
		if m.paused {
			return m, nil
		}
		return m, pollTickCmd(m.interval)

	case modeSetMsg:
		m.polling = false
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("SET MODE ERROR: %v", msg.err), true)
		} else {
			m.mode = msg.mode
			m.addLogEntry(fmt.Sprintf("Buffer mode set to %d", msg.mode), false)
		}
		if !m.paused {
			return m, pollTickCmd(m.interval)
		}

	case actionMsg:
		m.polling = false
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("ERROR: %v", msg.err), true)
		} else {
			m.addLogEntry(msg.message, false)
		}
		if !m.paused {
			return m, pollTickCmd(m.interval)
		}
	}

	return m, nil
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, monitorLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})

	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("METIS - BUFFER MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Address %02d | Every %s | q: quit  m: mode  l: light  space: pause",
		m.connInfo, m.dev.Address(), m.interval)))
	s.WriteString("\n\n")

	// Polling state
	switch {
	case m.paused:
		s.WriteString(warningStyle.Render("⏸ Paused"))
	case m.polling:
		s.WriteString(m.spinner.View() + " " + headerStyle.Render("Reading..."))
	default:
		s.WriteString(valueStyle.Render("✓ Idle"))
	}
	s.WriteString("\n\n")

	// Statistics
	stats := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("Reads:"), valueStyle.Render(fmt.Sprintf("%d", m.reads)),
		labelStyle.Render("Rejected:"), func() string {
			if m.rejected > 0 {
				return warningStyle.Render(fmt.Sprintf("%d", m.rejected))
			}
			return valueStyle.Render("0")
		}(),
		labelStyle.Render("Errors:"), func() string {
			if m.failures > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", m.failures))
			}
			return valueStyle.Render("0")
		}(),
		labelStyle.Render("Latency:"), valueStyle.Render(m.lastLatency.Round(time.Millisecond).String()),
	)
	s.WriteString(boxStyle.Render(stats))
	s.WriteString("\n\n")

	// Latest record
	s.WriteString(labelStyle.Render("Latest Record:"))
	if m.last != nil {
		s.WriteString(headerStyle.Render(" " + m.lastAt.Format("15:04:05.000")))
	}
	s.WriteString("\n")
	if m.last == nil {
		s.WriteString(boxStyle.Render(headerStyle.Render("(no data yet)")))
	} else {
		record := strings.TrimRight(metis.FormatRecord(m.last), "\n")
		s.WriteString(boxStyle.Render(record))
	}
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 24
	if logHeight < 3 {
		logHeight = 3
	}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	logContent := strings.Builder{}
	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("(no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := headerStyle.Render(entry.timestamp.Format("15:04:05.000"))
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n", timestamp, errorStyle.Render("✗ "+entry.message)))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n", timestamp, warningStyle.Render("ℹ "+entry.message)))
			}
		}
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	s.WriteString(boxStyle.Width(width).Render(strings.TrimRight(logContent.String(), "\n")))

	return s.String()
}
