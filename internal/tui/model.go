package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/day"
	"github.com/julianstephens/dayring/internal/gym"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/month"
	"github.com/julianstephens/dayring/internal/storage"
)

// SessionState selects which screen the model renders.
type SessionState int

const (
	StateToday SessionState = iota
	StateMonth
	StateGym
	StatePulse
	StateAddHabit
	StateEditValue
	StateAddTask
)

const requestTimeout = 15 * time.Second

type Model struct {
	client  *api.Client
	store   storage.Provider
	daySess *day.Session
	gymSess *gym.Session

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	cursor int
	width  int
	height int

	form      *huh.Form
	habitForm *HabitFormModel
	taskForm  *TaskFormModel

	valueInput    textinput.Model
	editingHabit  int64
	weightEditing bool

	monthProj  *month.Projection
	monthYear  int
	monthMonth int
	signupDate string
	streaks    *models.StreakStats
	habits     []models.Habit
	trend      []gym.WeightPoint
	pulseTasks []models.PulseTask
	backlog    []models.PulseTask
	plan       []gym.PlanDay
	pulseDate  string

	// Persisted view preferences.
	trendOpen   bool
	planOpen    bool
	showBacklog bool

	formError  string
	statusLine string
	quitting   bool
}

func NewModel(client *api.Client, store storage.Provider, daySess *day.Session, gymSess *gym.Session) Model {
	now := time.Now()
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 12
	return Model{
		client:      client,
		store:       store,
		daySess:     daySess,
		gymSess:     gymSess,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		valueInput:  ti,
		monthYear:   now.Year(),
		monthMonth:  int(now.Month()),
		pulseDate:   dates.Today(),
		trendOpen:   prefOn(store, constants.TrendOpenKey, true),
		planOpen:    prefOn(store, constants.WeekDetailOpenKey, false),
		showBacklog: prefOn(store, constants.PulseViewKey, false),
	}
}

// prefOn reads a "1"/"0" view preference, falling back when unset.
func prefOn(store storage.Provider, key string, fallback bool) bool {
	v, err := store.Get(key)
	if err != nil {
		return fallback
	}
	return v == "1"
}

func savePref(store storage.Provider, key string, on bool) {
	v := "0"
	if on {
		v = "1"
	}
	_ = store.Set(key, v)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTodayCmd(),
		m.loadMonthCmd(m.monthYear, m.monthMonth),
		m.loadGymCmd(dates.Today()),
		m.loadPulseCmd(m.pulseDate),
		m.loadBacklogCmd(),
		m.loadPlanCmd(),
		m.loadProfileCmd(),
	)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Enter, m.keys.Save, m.keys.Add)
	case StateMonth:
		keys = append(keys, m.keys.Left, m.keys.Right)
	case StateGym:
		keys = append(keys, m.keys.Enter, m.keys.CopyLast, m.keys.Trend, m.keys.Plan, m.keys.Save)
	case StatePulse:
		keys = append(keys, m.keys.Toggle, m.keys.Backlog, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}
	actions := []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Save, m.keys.CopyLast, m.keys.Trend, m.keys.Plan, m.keys.Backlog}
	return [][]key.Binding{global, navigation, actions}
}

// Messages carry the results of background loads and saves back into Update.

type todayLoadedMsg struct{ err error }

type monthLoadedMsg struct {
	proj *month.Projection
	err  error
}

type gymLoadedMsg struct{ err error }

type trendLoadedMsg struct {
	points []gym.WeightPoint
	err    error
}

type pulseLoadedMsg struct {
	tasks []models.PulseTask
	err   error
}

type backlogLoadedMsg struct {
	tasks []models.PulseTask
	err   error
}

type planLoadedMsg struct {
	week []gym.PlanDay
	err  error
}

type profileLoadedMsg struct {
	profile *models.Profile
	streaks *models.StreakStats
	habits  []models.Habit
	err     error
}

type savedMsg struct {
	what string
	err  error
}

type habitCreatedMsg struct {
	habit *models.Habit
	err   error
}

func (m Model) loadTodayCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return todayLoadedMsg{err: m.daySess.Load(ctx)}
	}
}

func (m Model) loadMonthCmd(year, mon int) tea.Cmd {
	client := m.client
	signup := m.signupDate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		entries, err := client.MonthEntries(ctx, year, mon)
		if err != nil {
			return monthLoadedMsg{err: err}
		}
		start := dates.ISO(year, mon, 1)
		end := dates.ISO(year, mon, dates.DaysInMonth(year, mon))
		stats, err := client.DailyStats(ctx, start, end)
		if err != nil {
			return monthLoadedMsg{err: err}
		}
		return monthLoadedMsg{proj: month.New(year, mon, entries, stats, signup)}
	}
}

func (m Model) loadGymCmd(date string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return gymLoadedMsg{err: m.gymSess.Load(ctx, date)}
	}
}

func (m Model) loadTrendCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		points, err := m.gymSess.LoadTrend(ctx)
		return trendLoadedMsg{points: points, err: err}
	}
}

func (m Model) loadPulseCmd(date string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		tasks, err := day.LoadPulseTasks(store, date)
		return pulseLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) loadBacklogCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		tasks, err := day.LoadFutureTasks(store)
		return backlogLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) loadPlanCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		plan, err := client.GymPlanCurrent(ctx)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		today := dates.Today()
		week, err := gym.WeekPlan(plan, today, today, gym.WorkoutNames(plan.WorkoutExercises))
		return planLoadedMsg{week: week, err: err}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := client.Me(ctx)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		streaks, err := client.StreakStats(ctx)
		if err != nil {
			return profileLoadedMsg{profile: profile, err: err}
		}
		habits, err := client.Habits(ctx)
		return profileLoadedMsg{profile: profile, streaks: streaks, habits: habits, err: err}
	}
}

func (m Model) commitDayCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := m.daySess.Commit(ctx)
		return savedMsg{what: "day", err: err}
	}
}

func (m Model) saveWorkoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return savedMsg{what: "workout", err: m.gymSess.SaveWorkout(ctx)}
	}
}

func (m Model) saveMealsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return savedMsg{what: "meals", err: m.gymSess.SaveMeals(ctx)}
	}
}

func (m Model) copyLastWeightsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		applied, err := m.gymSess.ApplyLastWorkoutWeights(ctx)
		if err == nil && !applied {
			return savedMsg{what: "no earlier workout found"}
		}
		return savedMsg{what: "weights copied", err: err}
	}
}

func (m Model) createHabitCmd(req api.HabitRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		h, err := client.CreateHabit(ctx, req)
		return habitCreatedMsg{habit: h, err: err}
	}
}
