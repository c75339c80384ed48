// Package day owns the editable-day state: the server entry for the
// selected date, the local draft overriding it, and the save path that
// reconciles the two. Renderers read derived values from the session but
// never touch the draft directly.
package day

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/debounce"
	"github.com/julianstephens/dayring/internal/draft"
	"github.com/julianstephens/dayring/internal/metrics"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/storage"
)

// ErrNotEditable is returned when a mutation targets a day other than
// today. Only today is ever editable, regardless of the entry's locked
// flag.
var ErrNotEditable = errors.New("only today's entry can be edited")

// ErrSaveInFlight is returned when a commit is requested while a
// previous one has not finished.
var ErrSaveInFlight = errors.New("a save is already in progress")

// Gateway is the slice of the API client the session needs.
type Gateway interface {
	Today(ctx context.Context) (*models.DayEntry, error)
	DayByDate(ctx context.Context, date string) (*models.DayEntry, error)
	SaveToday(ctx context.Context, req api.SaveDayRequest) (*models.DayEntry, error)
}

type Session struct {
	gateway Gateway
	store   storage.Provider
	logger  *log.Logger
	now     func() time.Time

	autosave *debounce.Debouncer

	mu       sync.Mutex
	entry    *models.DayEntry
	draft    *models.Draft
	selected string
	saving   bool

	autosaveOn bool
	onSaved    func(models.DayEntry)
}

type Option func(*Session)

// WithClock injects the time source. Tests pin it to a fixed instant.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOnSaved registers a hook run after every successful commit, with
// the fresh server entry. The month projection uses it to patch today's
// slot without a refetch.
func WithOnSaved(fn func(models.DayEntry)) Option {
	return func(s *Session) { s.onSaved = fn }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func NewSession(gateway Gateway, store storage.Provider, opts ...Option) *Session {
	s := &Session{
		gateway:  gateway,
		store:    store,
		logger:   log.Default(),
		now:      time.Now,
		autosave: debounce.New(constants.AutoSaveDebounce),
		draft:    models.NewDraft(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) today() string { return dates.Format(s.now()) }

// Load fetches today's entry and restores the local draft. Autosave
// preference is restored from the store, defaulting to enabled.
func (s *Session) Load(ctx context.Context) error {
	entry, err := s.gateway.Today(ctx)
	if err != nil {
		return err
	}
	d, err := draft.Load(s.store)
	if err != nil {
		s.logger.Warn("failed to load draft, starting clean", "err", err)
		d = models.NewDraft()
	}
	today := s.today()
	if d.Date != "" && d.Date != today {
		// Rows persisted for an earlier day must not override the new
		// day's entry. Undated documents only come from legacy key
		// versions and are adopted as-is.
		s.logger.Warn("discarding stale draft", "draftDate", d.Date, "today", today)
		if err := draft.Clear(s.store); err != nil {
			s.logger.Warn("failed to clear stale draft", "err", err)
		}
		d = models.NewDraft()
	}
	d.Date = today

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = entry
	s.draft = d
	s.selected = today
	s.autosaveOn = true
	if v, err := s.store.Get(constants.AutoSaveEnabledKey); err == nil && v == "0" {
		s.autosaveOn = false
	}
	return nil
}

// SelectDate switches the session to another date. Selecting today is
// equivalent to Load; any other date is read-only.
func (s *Session) SelectDate(ctx context.Context, date string) error {
	if date == s.today() {
		return s.Load(ctx)
	}
	entry, err := s.gateway.DayByDate(ctx, date)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = entry
	s.selected = date
	return nil
}

// IsEditable reports whether the selected date accepts edits. The rule
// is exact date equality with the current clock; the entry's locked
// flag is ignored.
func (s *Session) IsEditable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected == s.today()
}

func (s *Session) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// ResolveRow returns the effective state of one habit: the draft row if
// the day is editable and one exists, else the server values.
func (s *Session) ResolveRow(habitID int64) (models.DraftRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveRowLocked(habitID)
}

func (s *Session) resolveRowLocked(habitID int64) (models.DraftRow, bool) {
	if s.selected == s.today() {
		if row, ok := s.draft.ByHabitID[habitID]; ok {
			return row, true
		}
	}
	if s.entry == nil {
		return models.DraftRow{}, false
	}
	h := s.entry.HabitByID(habitID)
	if h == nil {
		return models.DraftRow{}, false
	}
	return models.DraftRow{HabitID: habitID, Completed: h.Completed, ActualValue: h.ActualValue}, true
}

// EffectiveEntry returns a copy of the selected entry with the draft
// applied. Mutating the copy has no effect on session state.
func (s *Session) EffectiveEntry() models.DayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == nil {
		return models.DayEntry{}
	}
	out := *s.entry
	out.Habits = make([]models.HabitStatus, len(s.entry.Habits))
	copy(out.Habits, s.entry.Habits)
	for i := range out.Habits {
		if row, ok := s.resolveRowLocked(out.Habits[i].HabitID); ok {
			out.Habits[i].Completed = row.Completed
			out.Habits[i].ActualValue = row.ActualValue
		}
	}
	return out
}

// CompletionPercent computes the selected day's completion with draft
// overrides applied.
func (s *Session) CompletionPercent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == nil {
		return 0
	}
	return metrics.CompletionPercent(s.entry.Habits, func(h models.HabitStatus) bool {
		row, ok := s.resolveRowLocked(h.HabitID)
		if !ok {
			return h.Completed
		}
		return row.Completed
	})
}

// SetCompleted records a checkbox toggle in the draft. The row is seeded
// from the server state on first touch so the untouched field survives.
func (s *Session) SetCompleted(habitID int64, completed bool) error {
	return s.applyEdit(habitID, func(row *models.DraftRow) {
		row.Completed = completed
	})
}

// SetActualValue records a measured-value edit in the draft. A nil value
// clears the field.
func (s *Session) SetActualValue(habitID int64, value *float64) error {
	return s.applyEdit(habitID, func(row *models.DraftRow) {
		row.ActualValue = value
	})
}

func (s *Session) applyEdit(habitID int64, mutate func(*models.DraftRow)) error {
	s.mu.Lock()
	if s.selected != s.today() {
		s.mu.Unlock()
		return ErrNotEditable
	}
	row, ok := s.draft.ByHabitID[habitID]
	if !ok {
		seed, found := s.resolveRowLocked(habitID)
		if !found {
			s.mu.Unlock()
			return fmt.Errorf("unknown habit %d", habitID)
		}
		row = seed
	}
	mutate(&row)
	s.draft.ByHabitID[habitID] = row
	d := s.draft
	s.mu.Unlock()

	if err := draft.Save(s.store, d); err != nil {
		return err
	}
	s.scheduleAutosave()
	return nil
}

// scheduleAutosave arms the debounced background commit. Every edit
// resets the clock; an in-flight save suppresses arming entirely.
func (s *Session) scheduleAutosave() {
	s.mu.Lock()
	enabled := s.autosaveOn && !s.saving
	s.mu.Unlock()
	if !enabled {
		return
	}
	s.autosave.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Commit(ctx); err != nil && !errors.Is(err, ErrSaveInFlight) {
			s.logger.Warn("autosave failed, edits kept locally", "err", err)
		}
	})
}

// SetAutoSaveEnabled flips the autosave preference and persists it.
func (s *Session) SetAutoSaveEnabled(enabled bool) error {
	s.mu.Lock()
	s.autosaveOn = enabled
	s.mu.Unlock()
	if !enabled {
		s.autosave.Cancel()
	}
	v := "1"
	if !enabled {
		v = "0"
	}
	return s.store.Set(constants.AutoSaveEnabledKey, v)
}

// Commit serializes every habit's resolved row plus the untouched
// mood/energy/journal/pulse fields, saves to the server, swaps in the
// response, and drops the draft rows that went into the request. Rows
// edited while the request was in flight stay in the draft for the
// next save. A failed save leaves the draft and entry untouched so a
// retry sees identical state.
func (s *Session) Commit(ctx context.Context) (*models.DayEntry, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	if s.selected != s.today() {
		s.mu.Unlock()
		return nil, ErrNotEditable
	}
	if s.entry == nil {
		s.mu.Unlock()
		return nil, errors.New("no entry loaded")
	}
	s.saving = true
	req := s.buildSaveRequestLocked()
	sent := make(map[int64]models.DraftRow, len(s.draft.ByHabitID))
	for id, row := range s.draft.ByHabitID {
		sent[id] = row
	}
	s.mu.Unlock()

	s.autosave.Cancel()

	saved, err := s.gateway.SaveToday(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.entry = saved
	for id, row := range sent {
		// A row that changed since serialization carries an edit the
		// server never saw; keep it.
		if cur, ok := s.draft.ByHabitID[id]; ok && cur == row {
			delete(s.draft.ByHabitID, id)
		}
	}
	remaining := models.NewDraft()
	remaining.Date = s.draft.Date
	for id, row := range s.draft.ByHabitID {
		remaining.ByHabitID[id] = row
	}
	s.saving = false
	hook := s.onSaved
	s.mu.Unlock()

	if remaining.Empty() {
		if err := draft.Clear(s.store); err != nil {
			s.logger.Warn("failed to clear draft after save", "err", err)
		}
	} else {
		if err := draft.Save(s.store, remaining); err != nil {
			s.logger.Warn("failed to persist draft after save", "err", err)
		}
		s.scheduleAutosave()
	}

	if hook != nil {
		hook(*saved)
	}
	return saved, nil
}

func (s *Session) buildSaveRequestLocked() api.SaveDayRequest {
	req := api.SaveDayRequest{
		MoodScore:   s.entry.MoodScore,
		EnergyScore: s.entry.EnergyScore,
		MoodTags:    s.entry.MoodTags,
		JournalText: s.entry.JournalText,
		PulseTasks:  s.entry.PulseTasks,
	}
	req.Habits = make([]api.SaveDayRow, 0, len(s.entry.Habits))
	for _, h := range s.entry.Habits {
		row, _ := s.resolveRowLocked(h.HabitID)
		req.Habits = append(req.Habits, api.SaveDayRow{
			HabitID:     h.HabitID,
			Completed:   row.Completed,
			ActualValue: row.ActualValue,
		})
	}
	return req
}
