package constants

const (
	AppName            = "dayring"
	DefaultKeyringUser = "api-token"
	DefaultConfigPath  = "~/.config/dayring/dayring.db"
	DefaultAPIBase     = "http://localhost:8080"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)

// Local persistence keys. Draft keys are versioned; Load falls back through
// the legacy versions in order and Clear removes every version.
const (
	DraftKeyV3 = "draft.today.v3"
	DraftKeyV2 = "draft.today.v2"
	DraftKeyV1 = "draft.today.v1"

	AutoSaveEnabledKey = "autosave.enabled.v1"
	TrendOpenKey       = "gym.trend.open.v1"
	WeekDetailOpenKey  = "gym.weekdetail.open.v1"
	PulseViewKey       = "pulse.view.v1"
	PulseFutureKey     = "pulse.future.v1"
)

// GymNotesKey returns the per-date key for locally saved gym notes.
func GymNotesKey(date string) string {
	return "gym.notes.v1." + date
}

// PulseDailyKey returns the per-date key for locally saved pulse tasks.
func PulseDailyKey(date string) string {
	return "pulse.daily." + date + ".v1"
}
