package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)

	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

type Model struct {
	viewport viewport.Model
	habits   []models.Habit
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "No habits yet. Press 'a' on the Habits tab to add one."
	}
	return m.viewport.View()
}

func (m *Model) SetHabits(habits []models.Habit) {
	m.habits = nil
	for _, h := range habits {
		if h.DeletedAt == nil {
			m.habits = append(m.habits, h)
		}
	}
	m.render()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) render() {
	now := time.Now()
	var b strings.Builder

	for _, h := range m.habits {
		s := scheduler.StatsOf(h, now)

		b.WriteString(nameStyle.Render(h.Name))
		b.WriteString(fmt.Sprintf("  (%s)\n", h.Schedule))
		b.WriteString(labelStyle.Render("Current streak"))
		b.WriteString(fmt.Sprintf("%d\n", s.CurrentStreak))
		b.WriteString(labelStyle.Render("Completions"))
		b.WriteString(fmt.Sprintf("%d\n", s.TotalCompletions))
		b.WriteString(labelStyle.Render("Skips"))
		b.WriteString(fmt.Sprintf("%d\n", s.TotalSkips))
		b.WriteString(labelStyle.Render("Completion rate"))
		b.WriteString(fmt.Sprintf("%.0f%%\n", s.CompletionRate*100))
		if h.Goal != nil {
			b.WriteString(labelStyle.Render("Goal"))
			if s.CurrentStreak >= *h.Goal {
				b.WriteString(goalStyle.Render(fmt.Sprintf("%d day streak (reached!)", *h.Goal)))
			} else {
				b.WriteString(fmt.Sprintf("%d day streak", *h.Goal))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}
