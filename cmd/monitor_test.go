// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Thermoquad/metis/pkg/metis"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeMonitorDevice records monitor actions without any I/O
type fakeMonitorDevice struct {
	record   *metis.BufferRecord
	readErr  error
	modes    []metis.BufferMode
	lights   []metis.TargetingLightState
	modeErr  error
	lightErr error
}

func (f *fakeMonitorDevice) Address() int { return 3 }

func (f *fakeMonitorDevice) ReadBuffer() (*metis.BufferRecord, error) {
	return f.record, f.readErr
}

func (f *fakeMonitorDevice) SetBufferMode(mode metis.BufferMode) error {
	f.modes = append(f.modes, mode)
	return f.modeErr
}

func (f *fakeMonitorDevice) TargetingLight(state metis.TargetingLightState) (string, error) {
	f.lights = append(f.lights, state)
	return "ok", f.lightErr
}

func update(t *testing.T, m monitorModel, msg tea.Msg) (monitorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(monitorModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMonitor_PollCycle(t *testing.T) {
	rec, err := metis.DecodeBuffer([]byte("0064"))
	if err != nil {
		t.Fatalf("DecodeBuffer error: %v", err)
	}
	dev := &fakeMonitorDevice{record: rec}
	m := newMonitorModel(dev, "/dev/ttyUSB0", time.Second)

	m, cmd := update(t, m, pollTickMsg(time.Now()))
	if !m.polling || cmd == nil {
		t.Fatal("tick should start a read")
	}

	// A second tick while a read is in flight is dropped
	if _, again := update(t, m, pollTickMsg(time.Now())); again != nil {
		t.Error("tick during a read should not start another")
	}

	msg := cmd()
	read, ok := msg.(bufferReadMsg)
	if !ok {
		t.Fatalf("read command produced %T", msg)
	}

	m, cmd = update(t, m, read)
	if m.polling || m.reads != 1 || m.last != rec {
		t.Errorf("unexpected state after read: polling=%v reads=%d", m.polling, m.reads)
	}
	if cmd == nil {
		t.Error("next tick should be scheduled")
	}

	view := m.View()
	for _, want := range []string{"METIS - BUFFER MONITOR", "Address 03", "Measured: 10.0°C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMonitor_ReadErrors(t *testing.T) {
	m := newMonitorModel(&fakeMonitorDevice{}, "test", time.Second)

	m, _ = update(t, m, bufferReadMsg{err: fmt.Errorf("%w: bup", metis.ErrRejected)})
	m, _ = update(t, m, bufferReadMsg{err: errors.New("read timeout")})

	if m.reads != 2 || m.rejected != 1 || m.failures != 1 {
		t.Errorf("reads=%d rejected=%d failures=%d", m.reads, m.rejected, m.failures)
	}
	if len(m.eventLog) != 2 || !m.eventLog[0].isError {
		t.Errorf("errors should be logged: %+v", m.eventLog)
	}
	if m.last != nil {
		t.Error("failed reads must not replace the record")
	}
}

func TestMonitor_Pause(t *testing.T) {
	m := newMonitorModel(&fakeMonitorDevice{}, "test", time.Second)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.paused {
		t.Fatal("space should pause")
	}
	if _, cmd := update(t, m, pollTickMsg(time.Now())); cmd != nil {
		t.Error("paused monitor should not read")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.paused || cmd == nil {
		t.Error("space should resume and schedule a tick")
	}
}

func TestMonitor_CycleBufferMode(t *testing.T) {
	dev := &fakeMonitorDevice{}
	m := newMonitorModel(dev, "test", time.Second)
	m.mode = metis.BufferModeThree

	m, cmd := update(t, m, runeKey('m'))
	if cmd == nil {
		t.Fatal("m should issue a mode change")
	}
	m, _ = update(t, m, cmd())

	if len(dev.modes) != 1 || dev.modes[0] != metis.BufferModeZero {
		t.Errorf("modes sent = %v, want [0]", dev.modes)
	}
	if m.mode != metis.BufferModeZero || m.polling {
		t.Errorf("mode = %d polling = %v", m.mode, m.polling)
	}
}

func TestMonitor_ToggleLight(t *testing.T) {
	dev := &fakeMonitorDevice{lightErr: metis.ErrRejected}
	m := newMonitorModel(dev, "test", time.Second)

	m, cmd := update(t, m, runeKey('l'))
	if cmd == nil {
		t.Fatal("l should issue a light toggle")
	}
	m, _ = update(t, m, cmd())

	if len(dev.lights) != 1 || dev.lights[0] != metis.TargetingLightToggle {
		t.Errorf("lights sent = %v", dev.lights)
	}
	if len(m.eventLog) != 1 || !m.eventLog[0].isError {
		t.Errorf("rejected toggle should be logged as error: %+v", m.eventLog)
	}
}

func TestMonitor_Quit(t *testing.T) {
	m := newMonitorModel(&fakeMonitorDevice{}, "test", time.Second)
	m, cmd := update(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "Shutting down...\n" {
		t.Errorf("View = %q", m.View())
	}
}
