package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/day"
	"github.com/julianstephens/dayring/internal/gym"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/month"
	"github.com/julianstephens/dayring/internal/validation"
)

var mainStates = []SessionState{StateToday, StateMonth, StateGym, StatePulse}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case todayLoadedMsg:
		if msg.err != nil {
			m.statusLine = "load failed: " + msg.err.Error()
		}
		return m, nil

	case monthLoadedMsg:
		if msg.err != nil {
			m.statusLine = "month load failed: " + msg.err.Error()
			return m, nil
		}
		m.monthProj = msg.proj
		return m, nil

	case gymLoadedMsg:
		if msg.err != nil {
			m.statusLine = "gym load failed: " + msg.err.Error()
			return m, nil
		}
		return m, m.loadTrendCmd()

	case trendLoadedMsg:
		if msg.err == nil {
			m.trend = msg.points
		}
		return m, nil

	case pulseLoadedMsg:
		if msg.err == nil {
			m.pulseTasks = msg.tasks
		}
		return m, nil

	case backlogLoadedMsg:
		if msg.err == nil {
			m.backlog = msg.tasks
		}
		return m, nil

	case planLoadedMsg:
		if msg.err == nil {
			m.plan = msg.week
		}
		return m, nil

	case profileLoadedMsg:
		if msg.profile != nil {
			m.signupDate = msg.profile.SignupDate
		}
		m.streaks = msg.streaks
		m.habits = msg.habits
		if msg.err != nil {
			m.statusLine = "profile load failed: " + msg.err.Error()
			return m, nil
		}
		// Projections built before the signup date arrived lack the
		// before-signup forcing; rebuild with it.
		return m, m.loadMonthCmd(m.monthYear, m.monthMonth)

	case savedMsg:
		return m.handleSaved(msg)

	case habitCreatedMsg:
		if msg.err != nil {
			m.statusLine = "create failed: " + msg.err.Error()
			return m, nil
		}
		if msg.habit != nil {
			m.habits = append(m.habits, *msg.habit)
			m.statusLine = "habit created: " + msg.habit.Title
		}
		return m, m.loadTodayCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateAddHabit || m.state == StateAddTask {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, day.ErrSaveInFlight), errors.Is(msg.err, gym.ErrSaveInFlight):
			m.statusLine = "save already in progress"
		case errors.Is(msg.err, day.ErrNotEditable), errors.Is(msg.err, gym.ErrNotEditable):
			m.statusLine = "read-only day"
		default:
			m.statusLine = "save failed: " + msg.err.Error()
		}
		return m, nil
	}
	m.statusLine = msg.what
	if msg.what == "day" {
		m.statusLine = "saved"
		// A committed day can change the month grid.
		return m, m.loadMonthCmd(m.monthYear, m.monthMonth)
	}
	if msg.what == "weights copied" {
		m.statusLine = "weights copied from last workout"
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddHabit, StateAddTask:
		if msg.Type == tea.KeyEsc {
			m.state = m.previousState
			m.formError = ""
			return m, nil
		}
		return m.updateForm(msg)
	case StateEditValue:
		return m.handleEditValueKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		_ = m.gymSess.FlushNotes()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = nextState(m.state, 1)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = nextState(m.state, -1)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.statusLine = ""
		return m, m.Init()
	}

	switch m.state {
	case StateToday:
		return m.handleTodayKey(msg)
	case StateMonth:
		return m.handleMonthKey(msg)
	case StateGym:
		return m.handleGymKey(msg)
	case StatePulse:
		return m.handlePulseKey(msg)
	}
	return m, nil
}

func nextState(s SessionState, delta int) SessionState {
	for i, st := range mainStates {
		if st == s {
			n := (i + delta + len(mainStates)) % len(mainStates)
			return mainStates[n]
		}
	}
	return StateToday
}

func (m Model) handleTodayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := m.daySess.EffectiveEntry().Habits
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(habits)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(habits) {
			h := habits[m.cursor]
			row, _ := m.daySess.ResolveRow(h.HabitID)
			if err := m.daySess.SetCompleted(h.HabitID, !row.Completed); err != nil {
				m.statusLine = statusForEditErr(err)
			} else {
				m.statusLine = ""
			}
		}
	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(habits) && habits[m.cursor].TargetValue != nil {
			h := habits[m.cursor]
			m.editingHabit = h.HabitID
			m.weightEditing = false
			m.valueInput.SetValue("")
			if row, ok := m.daySess.ResolveRow(h.HabitID); ok && row.ActualValue != nil {
				m.valueInput.SetValue(trimFloat(*row.ActualValue))
			}
			m.valueInput.Focus()
			m.previousState = m.state
			m.state = StateEditValue
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Save):
		m.statusLine = "saving…"
		return m, m.commitDayCmd()
	case key.Matches(msg, m.keys.Add):
		m.habitForm = &HabitFormModel{Category: models.CategoryOther, Type: "CHECKLIST", FrequencyType: "DAILY"}
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		m.formError = ""
		return m, m.form.Init()
	}
	return m, nil
}

// monthMetas lists the grid rows for the displayed month, in render
// order.
func (m Model) monthMetas() []month.HabitMeta {
	if m.monthProj == nil {
		return nil
	}
	activeIDs := make(map[int64]bool, len(m.habits))
	for _, h := range m.habits {
		if h.Active {
			activeIDs[h.ID] = true
		}
	}
	entry := m.daySess.EffectiveEntry()
	return m.monthProj.HabitMetaList(&entry, activeIDs)
}

func (m Model) handleMonthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.monthYear, m.monthMonth = dates.StepMonth(m.monthYear, m.monthMonth, -1)
		m.monthProj = nil
		return m, m.loadMonthCmd(m.monthYear, m.monthMonth)
	case key.Matches(msg, m.keys.Right):
		m.monthYear, m.monthMonth = dates.StepMonth(m.monthYear, m.monthMonth, 1)
		m.monthProj = nil
		return m, m.loadMonthCmd(m.monthYear, m.monthMonth)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if metas := m.monthMetas(); m.cursor < len(metas)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		// Only the today column is interactive; every other cell is
		// history or future.
		if !dates.InYearMonth(dates.Today(), m.monthYear, m.monthMonth) {
			return m, nil
		}
		metas := m.monthMetas()
		if m.cursor < len(metas) {
			meta := metas[m.cursor]
			row, _ := m.daySess.ResolveRow(meta.HabitID)
			if err := m.daySess.SetCompleted(meta.HabitID, !row.Completed); err != nil {
				m.statusLine = statusForEditErr(err)
			} else {
				m.statusLine = ""
			}
		}
	}
	return m, nil
}

func (m Model) handleGymKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	exercises := m.gymSess.VisibleExercises()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(exercises)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(exercises) {
			ex := exercises[m.cursor]
			m.editingHabit = ex.ExerciseID
			m.weightEditing = true
			m.valueInput.SetValue(m.gymSess.WeightText(ex.ExerciseID))
			m.valueInput.Focus()
			m.previousState = m.state
			m.state = StateEditValue
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.CopyLast):
		m.statusLine = "looking up last workout…"
		return m, m.copyLastWeightsCmd()
	case key.Matches(msg, m.keys.Trend):
		m.trendOpen = !m.trendOpen
		savePref(m.store, constants.TrendOpenKey, m.trendOpen)
	case key.Matches(msg, m.keys.Plan):
		m.planOpen = !m.planOpen
		savePref(m.store, constants.WeekDetailOpenKey, m.planOpen)
	case key.Matches(msg, m.keys.Save):
		m.statusLine = "saving…"
		return m, tea.Batch(m.saveWorkoutCmd(), m.saveMealsCmd())
	}
	return m, nil
}

func (m Model) handlePulseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.pulseTasks
	if m.showBacklog {
		visible = m.backlog
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Backlog):
		m.showBacklog = !m.showBacklog
		m.cursor = 0
		savePref(m.store, constants.PulseViewKey, m.showBacklog)
	case key.Matches(msg, m.keys.Enter):
		if m.showBacklog && m.cursor < len(m.backlog) {
			id := m.backlog[m.cursor].ID
			if err := day.PromoteFutureTask(m.store, id, m.pulseDate); err != nil {
				m.statusLine = "promote failed: " + err.Error()
				return m, nil
			}
			m.cursor = 0
			return m, tea.Batch(m.loadPulseCmd(m.pulseDate), m.loadBacklogCmd())
		}
	case key.Matches(msg, m.keys.Toggle):
		if !m.showBacklog && m.cursor < len(m.pulseTasks) {
			id := m.pulseTasks[m.cursor].ID
			if day.TogglePulseTask(m.pulseTasks, id) {
				if err := day.SavePulseTasks(m.store, m.pulseDate, m.pulseTasks); err != nil {
					m.statusLine = "save failed: " + err.Error()
				}
			}
		}
	case key.Matches(msg, m.keys.Add):
		m.taskForm = &TaskFormModel{Kind: models.PulseQuick}
		m.form = NewTaskForm(m.taskForm)
		m.previousState = m.state
		m.state = StateAddTask
		m.formError = ""
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) handleEditValueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = m.previousState
		m.valueInput.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.valueInput.Value())
		m.valueInput.Blur()
		m.state = m.previousState
		if m.weightEditing {
			if err := m.gymSess.SetExerciseWeight(m.editingHabit, text); err != nil {
				m.statusLine = statusForEditErr(err)
			}
			return m, nil
		}
		value := validation.ParseWeightInput(text)
		if err := m.daySess.SetActualValue(m.editingHabit, value); err != nil {
			m.statusLine = statusForEditErr(err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.valueInput, cmd = m.valueInput.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddHabit {
			req, err := m.habitForm.habitRequest(m.habits)
			if err != nil {
				m.formError = err.Error()
				m.state = m.previousState
				return m, nil
			}
			m.state = m.previousState
			return m, m.createHabitCmd(req)
		}
		task := day.NewPulseTask(m.taskForm.Title, m.taskForm.Kind, m.taskForm.ProjectName)
		m.pulseTasks = append(m.pulseTasks, task)
		if err := day.SavePulseTasks(m.store, m.pulseDate, m.pulseTasks); err != nil {
			m.statusLine = "save failed: " + err.Error()
		}
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func statusForEditErr(err error) string {
	if errors.Is(err, day.ErrNotEditable) || errors.Is(err, gym.ErrNotEditable) {
		return "read-only day"
	}
	return err.Error()
}
