package models

// HabitCategory is the server's discrete tag set for habits.
type HabitCategory string

const (
	CategoryHealth       HabitCategory = "HEALTH"
	CategoryFitness      HabitCategory = "FITNESS"
	CategoryMindfulness  HabitCategory = "MINDFULNESS"
	CategoryProductivity HabitCategory = "PRODUCTIVITY"
	CategoryLearning     HabitCategory = "LEARNING"
	CategoryOther        HabitCategory = "OTHER"
)

// HabitStatus is one habit's state for one day. TargetValue being present
// distinguishes target-tracked habits from plain checklist habits; Unit and
// ActualValue are only meaningful alongside a target.
type HabitStatus struct {
	HabitID     int64         `json:"habitId"`
	HabitTitle  string        `json:"habitTitle"`
	Category    HabitCategory `json:"category,omitempty"`
	TargetValue *float64      `json:"targetValue,omitempty"`
	Unit        string        `json:"unit,omitempty"`
	Completed   bool          `json:"completed"`
	ActualValue *float64      `json:"actualValue,omitempty"`
	Note        string        `json:"note,omitempty"`
}

// PulseTaskKind distinguishes 24h-only quick tasks from project tasks.
type PulseTaskKind string

const (
	PulseQuick   PulseTaskKind = "QUICK_24H"
	PulseProject PulseTaskKind = "PROJECT"
)

// PulseTask is an ad-hoc task attached to a day entry.
type PulseTask struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Kind        PulseTaskKind `json:"kind"`
	ProjectName string        `json:"projectName,omitempty"`
	Completed   bool          `json:"completed"`
}

// DayEntry is the persisted record for one calendar date. The Locked field is
// historical; editability is decided purely by comparing the entry date with
// the local clock's today.
type DayEntry struct {
	Date        string        `json:"date"`
	Habits      []HabitStatus `json:"habits"`
	MoodScore   *int          `json:"moodScore,omitempty"`
	EnergyScore *int          `json:"energyScore,omitempty"`
	MoodTags    []string      `json:"moodTags,omitempty"`
	JournalText string        `json:"journalText,omitempty"`
	PulseTasks  []PulseTask   `json:"pulseTasks,omitempty"`
	Locked      bool          `json:"locked"`
}

// HabitByID returns the status for the given habit id, or nil.
func (e *DayEntry) HabitByID(habitID int64) *HabitStatus {
	if e == nil {
		return nil
	}
	for i := range e.Habits {
		if e.Habits[i].HabitID == habitID {
			return &e.Habits[i]
		}
	}
	return nil
}

// DraftRow is one habit's unsaved local edit. A row overrides the server
// value for its habit until the draft is discarded or committed.
type DraftRow struct {
	HabitID     int64    `json:"habitId"`
	Completed   bool     `json:"completed"`
	ActualValue *float64 `json:"actualValue"`
}

// Draft holds the unsaved edits to the currently editable day, keyed by habit
// id. It is only ever non-empty for that day and is cleared on commit.
type Draft struct {
	// Date is the day the rows belong to. A draft found for a
	// different day on load is stale and must be discarded.
	Date      string             `json:"date,omitempty"`
	ByHabitID map[int64]DraftRow `json:"byHabitId"`
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{ByHabitID: map[int64]DraftRow{}}
}

// Empty reports whether the draft carries no rows.
func (d *Draft) Empty() bool {
	return d == nil || len(d.ByHabitID) == 0
}

// Habit is a user-defined recurring action definition (setup surface).
type Habit struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Category       HabitCategory `json:"category,omitempty"`
	Type           string        `json:"type,omitempty"`
	TargetValue    *float64      `json:"targetValue,omitempty"`
	Unit           string        `json:"unit,omitempty"`
	FrequencyType  string        `json:"frequencyType,omitempty"`
	FrequencyValue *int          `json:"frequencyValue,omitempty"`
	DaysOfWeek     string        `json:"daysOfWeek,omitempty"`
	Active         bool          `json:"active"`
}

// Profile is the authenticated user's account record.
type Profile struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Role         string `json:"role,omitempty"`
	SignupDate   string `json:"signupDate,omitempty"`
	AutoSaveTime string `json:"autoSaveTime,omitempty"`
	TimeZoneID   string `json:"timeZoneId,omitempty"`
}

// DailyStat is one day's server-side completion aggregate.
type DailyStat struct {
	Date              string  `json:"date"`
	CompletionPercent float64 `json:"completionPercent"`
}

// StreakStats is the server's streak aggregate.
type StreakStats struct {
	CurrentStreakDays int     `json:"currentStreakDays"`
	LongestStreakDays int     `json:"longestStreakDays"`
	ThresholdPercent  float64 `json:"thresholdPercent"`
}
