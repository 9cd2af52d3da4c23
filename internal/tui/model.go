package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitkit/internal/models"
	"habitkit/internal/storage"
	"habitkit/internal/tui/components/habitlist"
	"habitkit/internal/tui/components/stats"
	"habitkit/internal/tui/components/today"
	"habitkit/internal/validation"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateStats
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
	StateConfirmRestore
)

const tabCount = 3

// HabitFormModel holds the huh form fields for adding or editing a
// habit. Days is a comma-separated weekday list, ignored when Daily is
// set.
type HabitFormModel struct {
	Name        string
	Description string
	Kind        string
	Daily       bool
	Days        string
	Goal        string
}

type Model struct {
	store             storage.Provider
	owner             string
	state             SessionState
	previousState     SessionState
	keys              KeyMap
	help              help.Model
	todayModel        today.Model
	habitList         habitlist.Model
	statsModel        stats.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	editingHabit      *models.Habit
	habitToDeleteID   string
	habitToRestoreID  string
	validationWarning string
	errMessage        string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, owner string) Model {
	m := Model{
		store:      store,
		owner:      owner,
		state:      StateToday,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		todayModel: today.New(time.Now(), 0, 0),
		habitList:  habitlist.New(nil, 0, 0),
		statsModel: stats.New(0, 0),
	}
	m.reloadHabits()
	return m
}

// reloadHabits refreshes every component from the store and re-runs
// validation.
func (m *Model) reloadHabits() {
	habits, err := m.store.GetAllHabits(m.owner, true)
	if err != nil {
		m.errMessage = err.Error()
		return
	}

	m.todayModel.SetHabits(habits)
	m.habitList.SetHabits(habits)
	m.statsModel.SetHabits(habits)

	result := validation.ValidateHabits(habits)
	if len(result.Conflicts) > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Done, m.keys.Skip, m.keys.Clear)
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Done, m.keys.Skip, m.keys.Clear}
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Restore}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
