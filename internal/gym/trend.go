package gym

import (
	"context"

	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/dates"
)

// LoadTrend fills the body-weight window ending at the selected date,
// one lookup per day with missing days kept as nil points. Loading is
// idempotent per date; a repeat call for the same selection returns the
// cached window.
func (s *Session) LoadTrend(ctx context.Context) ([]WeightPoint, error) {
	s.mu.Lock()
	selected := s.selected
	if s.trendLoadedFor == selected {
		cached := s.trend
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	window := make([]WeightPoint, 0, constants.WeightTrendDays)
	for back := constants.WeightTrendDays - 1; back >= 0; back-- {
		date, err := dates.AddDays(selected, -back)
		if err != nil {
			return nil, err
		}
		point := WeightPoint{Date: date}
		body, err := s.gateway.GymBody(ctx, date)
		if err != nil {
			return nil, err
		}
		if body != nil {
			point.WeightKg = body.WeightKg
		}
		window = append(window, point)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trend = window
	s.trendLoadedFor = selected
	return window, nil
}

// TrendPoints normalizes the measured points of a window to 0..1 by the
// window's min/max. A flat or single-point window maps to 0.5. Missing
// days carry no point.
func TrendPoints(window []WeightPoint) []float64 {
	min, max := 0.0, 0.0
	seen := false
	for _, p := range window {
		if p.WeightKg == nil {
			continue
		}
		v := *p.WeightKg
		if !seen {
			min, max = v, v
			seen = true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !seen {
		return nil
	}

	var out []float64
	for _, p := range window {
		if p.WeightKg == nil {
			continue
		}
		if max == min {
			out = append(out, 0.5)
			continue
		}
		out = append(out, (*p.WeightKg-min)/(max-min))
	}
	return out
}

// LastMeasured returns up to n most recent measured points, newest
// first.
func LastMeasured(window []WeightPoint, n int) []WeightPoint {
	var out []WeightPoint
	for i := len(window) - 1; i >= 0 && len(out) < n; i-- {
		if window[i].WeightKg != nil {
			out = append(out, window[i])
		}
	}
	return out
}

// Notes returns the locally stored note text for the selected date.
func (s *Session) Notes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

// SetNotes updates the note text and schedules the debounced local
// write. Notes are local-only and editable for any date.
func (s *Session) SetNotes(text string) {
	s.mu.Lock()
	s.notes = text
	date := s.selected
	s.mu.Unlock()

	s.notesSave.Trigger(func() {
		if err := s.saveNotes(date, text); err != nil {
			s.logger.Warn("failed to persist gym notes", "date", date, "err", err)
		}
	})
}

// FlushNotes writes the current note text immediately, cancelling any
// pending debounced write. Used on date switch and shutdown.
func (s *Session) FlushNotes() error {
	s.notesSave.Cancel()
	s.mu.Lock()
	date, text := s.selected, s.notes
	s.mu.Unlock()
	return s.saveNotes(date, text)
}

func (s *Session) saveNotes(date, text string) error {
	key := constants.GymNotesKey(date)
	if text == "" {
		return s.store.Delete(key)
	}
	return s.store.Set(key, text)
}
