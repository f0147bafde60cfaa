package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/tiappxml/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m tea.Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(key(k))
	}
	model, ok := m.(Model)
	require.True(t, ok)
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModel_DefaultConfig(t *testing.T) {
	m := NewModel(Options{})

	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, config.DefaultLogLevel, m.values.LogLevel)
	assert.Contains(t, m.View(), "tiapp configuration")
	assert.Contains(t, m.View(), "Logging")
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(Options{Config: testConfig()})

	m, _ = press(t, m, "down", "down")
	assert.Equal(t, 2, m.menuIndex)

	m, _ = press(t, m, "up", "up", "up")
	assert.Equal(t, 0, m.menuIndex)

	m, _ = press(t, m, "j", "j", "j", "j", "j", "j")
	assert.Equal(t, len(Categories), m.menuIndex)
}

func TestModel_OpenAndLeaveForm(t *testing.T) {
	m := NewModel(Options{Config: testConfig()})

	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, stateForm, m.state)
	require.NotNil(t, m.currentForm)

	m, _ = press(t, m, "esc")
	assert.Equal(t, stateMenu, m.state)
	assert.False(t, m.dirty)
}

func TestModel_Save(t *testing.T) {
	var saved *config.Config
	m := NewModel(Options{
		Config:   testConfig(),
		Path:     "/home/user/.tiapp/config.yaml",
		SaveFunc: func(cfg *config.Config) error { saved = cfg; return nil },
	})
	assert.Contains(t, m.View(), "/home/user/.tiapp/config.yaml")

	m, _ = press(t, m, "s")
	require.NotNil(t, saved)
	assert.Equal(t, stateSaved, m.state)
	assert.Equal(t, config.FormatYAML, saved.Output.Format)
	assert.Contains(t, m.View(), "saved successfully")

	_, cmd := press(t, m, "x")
	assert.True(t, isQuit(cmd))
}

func TestModel_SaveError(t *testing.T) {
	m := NewModel(Options{
		Config:   testConfig(),
		SaveFunc: func(*config.Config) error { return errors.New("disk full") },
	})

	m, _ = press(t, m, "s")
	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "disk full")
}

func TestModel_QuitWithUnsavedChanges(t *testing.T) {
	saves := 0
	m := NewModel(Options{
		Config:   testConfig(),
		SaveFunc: func(*config.Config) error { saves++; return nil },
	})
	m.dirty = true

	m, _ = press(t, m, "q")
	assert.Equal(t, stateConfirm, m.state)
	assert.Contains(t, m.View(), "unsaved changes")

	m, _ = press(t, m, "c")
	assert.Equal(t, stateMenu, m.state)

	m, _ = press(t, m, "q")
	_, cmd := press(t, m, "n")
	assert.True(t, isQuit(cmd))
	assert.Equal(t, 0, saves)

	m.state = stateConfirm
	m, _ = press(t, m, "y")
	assert.Equal(t, 1, saves)
	assert.Equal(t, stateSaved, m.state)
}

func TestModel_QuitClean(t *testing.T) {
	m := NewModel(Options{Config: testConfig()})

	_, cmd := press(t, m, "q")
	assert.True(t, isQuit(cmd))
}
