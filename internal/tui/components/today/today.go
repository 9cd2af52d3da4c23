package today

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
)

// RecordMsg asks the parent model to persist an outcome for a habit on
// the shown day.
type RecordMsg struct {
	HabitID string
	Day     time.Time
	Outcome models.Outcome
}

var (
	stripStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	anchorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type Model struct {
	day    time.Time
	habits []models.Habit
	cursor int
	width  int
	height int
}

func New(day time.Time, width, height int) Model {
	return Model{day: scheduler.DayOf(day), width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetHabits replaces the habit set, keeping only habits due on the shown
// day.
func (m *Model) SetHabits(habits []models.Habit) {
	m.habits = nil
	for _, h := range habits {
		if h.DeletedAt == nil && scheduler.IsDue(h, m.day) {
			m.habits = append(m.habits, h)
		}
	}
	if m.cursor >= len(m.habits) {
		m.cursor = 0
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the habit under the cursor, if any.
func (m Model) Selected() (models.Habit, bool) {
	if len(m.habits) == 0 {
		return models.Habit{}, false
	}
	return m.habits[m.cursor], true
}

func (m Model) Day() time.Time {
	return m.day
}

func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) MoveDown() {
	if m.cursor < len(m.habits)-1 {
		m.cursor++
	}
}

// Record builds the message for recording an outcome on the selected
// habit. Recording the outcome a habit already carries clears it, so a
// repeated keypress acts as a toggle.
func (m Model) Record(outcome models.Outcome) tea.Cmd {
	h, ok := m.Selected()
	if !ok {
		return nil
	}
	if scheduler.OutcomeOn(h, m.day) == outcome {
		outcome = models.OutcomeUnrecorded
	}
	msg := RecordMsg{HabitID: h.ID, Day: m.day, Outcome: outcome}
	return func() tea.Msg { return msg }
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewStrip())
	b.WriteString("\n\n")

	if len(m.habits) == 0 {
		b.WriteString("Nothing scheduled today.")
		return b.String()
	}

	for i, h := range m.habits {
		marker := "[ ]"
		line := h.Name
		switch scheduler.OutcomeOn(h, m.day) {
		case models.OutcomeCompleted:
			marker = doneStyle.Render("[x]")
		case models.OutcomeSkipped:
			marker = skipStyle.Render("[-]")
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, line))
	}

	return b.String()
}

func (m Model) viewStrip() string {
	window := scheduler.DateWindow(m.day, 3, 3)
	var cells []string
	for i, d := range window {
		if i == 3 {
			cells = append(cells, anchorStyle.Render(d.Label))
		} else {
			cells = append(cells, stripStyle.Render(d.Label))
		}
	}
	return strings.Join(cells, "  ")
}
