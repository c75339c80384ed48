package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/gym"
	"github.com/julianstephens/dayring/internal/month"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.viewToday())
	case StateMonth:
		content = docStyle.Render(m.viewMonth())
	case StateGym:
		content = docStyle.Render(m.viewGym())
	case StatePulse:
		content = docStyle.Render(m.viewPulse())
	case StateAddHabit, StateAddTask:
		content = m.form.View()
	case StateEditValue:
		content = docStyle.Render(m.viewEditValue())
	}

	var banner string
	if m.formError != "" {
		banner = warningStyle.Render("⚠ " + m.formError)
	} else if m.statusLine != "" {
		banner = mutedStyle.Render(m.statusLine)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	titles := []string{"Today", "Month", "Gym", "Pulse"}
	current := m.state
	if current == StateEditValue || current == StateAddHabit || current == StateAddTask {
		current = m.previousState
	}
	for i, title := range titles {
		if current == mainStates[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	entry := m.daySess.EffectiveEntry()
	var b strings.Builder

	header := entry.Date
	if m.streaks != nil && m.streaks.CurrentStreakDays > 0 {
		header += fmt.Sprintf("  🔥 %d day streak", m.streaks.CurrentStreakDays)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if len(entry.Habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Press 'a' to add one."))
		return b.String()
	}

	for i, h := range entry.Habits {
		row, _ := m.daySess.ResolveRow(h.HabitID)
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if row.Completed {
			box = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, h.HabitTitle)
		if h.TargetValue != nil {
			actual := "–"
			if row.ActualValue != nil {
				actual = trimFloat(*row.ActualValue)
			}
			line += mutedStyle.Render(fmt.Sprintf("  %s/%s %s", actual, trimFloat(*h.TargetValue), h.Unit))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Ring(m.daySess.CompletionPercent()))
	if !m.daySess.IsEditable() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("read-only day"))
	}
	return b.String()
}

func (m Model) viewMonth() string {
	if m.monthProj == nil {
		return mutedStyle.Render("Loading…")
	}

	todayISO := dates.Today()
	live := func(habitID int64) (bool, bool) {
		row, ok := m.daySess.ResolveRow(habitID)
		return row.Completed, ok
	}
	hasLive := dates.InYearMonth(todayISO, m.monthYear, m.monthMonth)
	livePercent := float64(m.daySess.CompletionPercent())

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%04d-%02d", m.monthYear, m.monthMonth)))
	b.WriteString("\n\n")

	metas := m.monthMetas()
	days := dates.DaysInMonth(m.monthYear, m.monthMonth)

	nameWidth := 0
	for _, meta := range metas {
		if len(meta.Title) > nameWidth {
			nameWidth = len(meta.Title)
		}
	}
	for i, meta := range metas {
		kinds := make([]month.CellKind, 0, days)
		for d := 1; d <= days; d++ {
			iso := dates.ISO(m.monthYear, m.monthMonth, d)
			kinds = append(kinds, m.monthProj.Classify(meta.HabitID, iso, todayISO, live))
		}
		marker := "  "
		if i == m.cursor && hasLive {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-*s %s\n", marker, nameWidth, meta.Title, CheckpointRow(kinds)))
	}

	perDay := m.monthProj.PerDay(todayISO, livePercent, hasLive)
	avg := m.monthProj.Average(todayISO, livePercent, hasLive)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-*s %s\n", nameWidth, "daily %", Sparkline(perDay)))
	b.WriteString(fmt.Sprintf("  month average %.0f%%\n\n", avg))
	b.WriteString(WeekBars(m.monthProj.WeeklyBars(todayISO, livePercent, hasLive)))
	if hasLive {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("space toggles today's column"))
	}
	return b.String()
}

func (m Model) viewGym() string {
	dash := m.gymSess.Dashboard()
	if dash == nil {
		return mutedStyle.Render("Loading…")
	}

	var b strings.Builder
	title := dash.Date + "  rest day"
	if dash.Workout != nil {
		title = dash.Date + "  " + dash.Workout.Name
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	exercises := m.gymSess.VisibleExercises()
	for i, ex := range exercises {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		weight := m.gymSess.WeightText(ex.ExerciseID)
		if weight == "" {
			weight = mutedStyle.Render("–")
		} else {
			weight += " kg"
		}
		extra := ""
		if ex.Extra {
			extra = mutedStyle.Render(" (extra)")
		}
		b.WriteString(fmt.Sprintf("%s%-20s %s%s\n", cursor, ex.Name, weight, extra))
	}
	if len(exercises) == 0 && dash.Workout != nil {
		b.WriteString(mutedStyle.Render("no exercises\n"))
	}

	protein, carbs, fats, calories := m.gymSess.MacroProgress()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("protein  %s\n", Ring(protein)))
	b.WriteString(fmt.Sprintf("carbs    %s\n", Ring(carbs)))
	b.WriteString(fmt.Sprintf("fats     %s\n", Ring(fats)))
	b.WriteString(fmt.Sprintf("calories %s\n", Ring(calories)))

	if m.trendOpen {
		if points := gym.TrendPoints(m.trend); points != nil {
			b.WriteString("\n")
			b.WriteString(fmt.Sprintf("weight trend %s\n", Sparkline(points)))
			for _, p := range gym.LastMeasured(m.trend, 1) {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("last: %s kg on %s", trimFloat(*p.WeightKg), p.Date)))
			}
		}
	}

	if m.planOpen && len(m.plan) > 0 {
		b.WriteString("\n\n")
		for _, d := range m.plan {
			marker := "  "
			if d.IsToday {
				marker = cursorStyle.Render("> ")
			}
			label := d.WorkoutName
			if d.WorkoutID == nil {
				label = mutedStyle.Render("rest")
			}
			b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, d.Label, label))
		}
	}

	if !m.gymSess.CanEdit() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("read-only day"))
	}
	return b.String()
}

func (m Model) viewPulse() string {
	var b strings.Builder
	if m.showBacklog {
		b.WriteString(headerStyle.Render("Pulse backlog"))
		b.WriteString("\n\n")
		if len(m.backlog) == 0 {
			b.WriteString(mutedStyle.Render("Backlog is empty."))
			return b.String()
		}
		for i, t := range m.backlog {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			label := t.Title
			if t.ProjectName != "" {
				label += mutedStyle.Render(" · " + t.ProjectName)
			}
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("enter to promote onto today"))
		return b.String()
	}

	b.WriteString(headerStyle.Render("Pulse  " + m.pulseDate))
	b.WriteString("\n\n")

	if len(m.pulseTasks) == 0 {
		b.WriteString(mutedStyle.Render("No tasks. Press 'a' to add one."))
		return b.String()
	}

	done := 0
	for i, t := range m.pulseTasks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if t.Completed {
			box = doneStyle.Render("[x]")
			done++
		}
		label := t.Title
		if t.ProjectName != "" {
			label += mutedStyle.Render(" · " + t.ProjectName)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, label))
	}

	b.WriteString("\n")
	b.WriteString(Ring(done * 100 / len(m.pulseTasks)))
	return b.String()
}

func (m Model) viewEditValue() string {
	label := "Actual value"
	if m.weightEditing {
		label = "Weight (kg)"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(label),
		m.valueInput.View(),
		mutedStyle.Render("enter to apply, esc to cancel"),
	)
}
