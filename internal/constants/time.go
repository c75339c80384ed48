package constants

import "time"

const (
	// AutoSaveDebounce is how long the autosave timer waits after the last
	// edit before firing. A new edit resets the timer.
	AutoSaveDebounce = 800 * time.Millisecond

	// NotesDebounce is the delay for the save-as-you-type notes path.
	NotesDebounce = 350 * time.Millisecond

	// WeightLookbackDays bounds the "use last weights" scan.
	WeightLookbackDays = 21

	// WeightTrendDays is the window length for the body-weight trend panel.
	WeightTrendDays = 14
)
