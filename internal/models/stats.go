package models

// MonthlyStats is the server's per-month completion aggregate.
type MonthlyStats struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	AveragePercent float64 `json:"averagePercent"`
	DaysTracked    int     `json:"daysTracked"`
}

// CategoryStat is one habit category's completion aggregate for a month.
type CategoryStat struct {
	Category          HabitCategory `json:"category"`
	CompletionPercent float64       `json:"completionPercent"`
	HabitCount        int           `json:"habitCount"`
}

// WeightEntry is one logged body-weight measurement.
type WeightEntry struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}
