package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
	"habitkit/internal/tui/components/habitlist"
	"habitkit/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.todayModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.habitList.SetSize(msg.Width-h, msg.Height-v-4)
		m.statsModel.SetSize(msg.Width-h, msg.Height-v-4)

	case today.RecordMsg:
		return m.handleRecord(msg)

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Kind: "good", Daily: true}
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		habit := msg.Habit
		m.editingHabit = &habit
		m.habitForm = formModelFor(habit)
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateEditHabit
		return m, m.form.Init()

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case habitlist.RestoreHabitMsg:
		m.habitToRestoreID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmRestore
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateEditHabit:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateConfirmRestore:
		return m.updateConfirmRestore(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The list filter consumes every key while active.
	if m.state == StateHabits && m.habitList.Filtering() {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateToday:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.todayModel.MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.todayModel.MoveDown()
		case key.Matches(msg, m.keys.Done), key.Matches(msg, m.keys.Enter):
			return m, m.todayModel.Record(models.OutcomeCompleted)
		case key.Matches(msg, m.keys.Skip):
			return m, m.todayModel.Record(models.OutcomeSkipped)
		case key.Matches(msg, m.keys.Clear):
			return m, m.todayModel.Record(models.OutcomeUnrecorded)
		}
		return m, nil

	case StateHabits:
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return habitlist.AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if h, ok := m.habitList.Selected(); ok && h.DeletedAt == nil {
				return m, func() tea.Msg { return habitlist.EditHabitMsg{Habit: h} }
			}
		case key.Matches(msg, m.keys.Delete):
			if h, ok := m.habitList.Selected(); ok && h.DeletedAt == nil {
				return m, func() tea.Msg { return habitlist.DeleteHabitMsg{ID: h.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if h, ok := m.habitList.Selected(); ok && h.DeletedAt != nil {
				return m, func() tea.Msg { return habitlist.RestoreHabitMsg{ID: h.ID} }
			}
		}
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd

	case StateStats:
		var cmd tea.Cmd
		m.statsModel, cmd = m.statsModel.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleRecord(msg today.RecordMsg) (tea.Model, tea.Cmd) {
	habit, err := m.store.GetHabit(msg.HabitID)
	if err != nil {
		m.errMessage = err.Error()
		return m, nil
	}

	updated, err := scheduler.RecordOutcome(habit, msg.Day, msg.Outcome)
	if err != nil {
		m.errMessage = err.Error()
		return m, nil
	}

	if err := m.store.UpdateHabit(updated); err != nil {
		m.errMessage = err.Error()
		return m, nil
	}

	m.errMessage = ""
	m.reloadHabits()
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		m.editingHabit = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		var base models.Habit
		if m.state == StateEditHabit && m.editingHabit != nil {
			base = *m.editingHabit
		}

		habit, err := applyForm(m.habitForm, base, m.owner)
		if err != nil {
			m.errMessage = err.Error()
		} else {
			if m.state == StateEditHabit {
				err = m.store.UpdateHabit(habit)
			} else {
				err = m.store.AddHabit(habit)
			}
			if err != nil {
				m.errMessage = err.Error()
			} else {
				m.errMessage = ""
			}
		}

		m.state = m.previousState
		m.form = nil
		m.editingHabit = nil
		m.reloadHabits()
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		if err := m.store.DeleteHabit(m.habitToDeleteID); err != nil {
			m.errMessage = err.Error()
		}
		m.habitToDeleteID = ""
		m.state = m.previousState
		m.reloadHabits()
	case "n", "N", "esc", "q":
		m.habitToDeleteID = ""
		m.state = m.previousState
	}

	return m, nil
}

func (m Model) updateConfirmRestore(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		if err := m.store.RestoreHabit(m.habitToRestoreID); err != nil {
			m.errMessage = err.Error()
		}
		m.habitToRestoreID = ""
		m.state = m.previousState
		m.reloadHabits()
	case "n", "N", "esc", "q":
		m.habitToRestoreID = ""
		m.state = m.previousState
	}

	return m, nil
}
