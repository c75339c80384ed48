package month

import (
	"sort"
	"strings"

	"github.com/julianstephens/dayring/internal/models"
)

// Habit notes are stored as line-marked text so two fields can share one
// string column: "[Feel]=..." and "[Other]=...". Unmarked text is
// treated as the free-form half.

type Note struct {
	Feel  string
	Other string
}

const (
	feelMarker  = "[Feel]="
	otherMarker = "[Other]="
)

func DecodeNote(raw string) Note {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Note{}
	}
	var n Note
	marked := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, feelMarker):
			n.Feel = strings.TrimSpace(strings.TrimPrefix(line, feelMarker))
			marked = true
		case strings.HasPrefix(line, otherMarker):
			n.Other = strings.TrimSpace(strings.TrimPrefix(line, otherMarker))
			marked = true
		}
	}
	if !marked {
		n.Other = raw
	}
	return n
}

func EncodeNote(n Note) string {
	var lines []string
	if n.Feel != "" {
		lines = append(lines, feelMarker+n.Feel)
	}
	if n.Other != "" {
		lines = append(lines, otherMarker+n.Other)
	}
	return strings.Join(lines, "\n")
}

// FeelCount is one feel value with its occurrence count.
type FeelCount struct {
	Feel  string
	Count int
}

// NotesSummary aggregates a month's habit notes for the history view.
type NotesSummary struct {
	Total      int
	TopFeels   []FeelCount
	Highlights []string
}

// SummarizeNotes decodes every habit note in the given entries, counts
// feels, and collects non-empty free-form notes as highlights.
func SummarizeNotes(entries []models.DayEntry, maxFeels, maxHighlights int) NotesSummary {
	counts := map[string]int{}
	var sum NotesSummary
	for _, e := range entries {
		for _, h := range e.Habits {
			if strings.TrimSpace(h.Note) == "" {
				continue
			}
			sum.Total++
			n := DecodeNote(h.Note)
			if n.Feel != "" {
				counts[strings.ToLower(n.Feel)]++
			}
			if n.Other != "" && len(sum.Highlights) < maxHighlights {
				sum.Highlights = append(sum.Highlights, n.Other)
			}
		}
	}

	feels := make([]FeelCount, 0, len(counts))
	for feel, count := range counts {
		feels = append(feels, FeelCount{Feel: feel, Count: count})
	}
	sort.Slice(feels, func(i, j int) bool {
		if feels[i].Count != feels[j].Count {
			return feels[i].Count > feels[j].Count
		}
		return feels[i].Feel < feels[j].Feel
	})
	if len(feels) > maxFeels {
		feels = feels[:maxFeels]
	}
	sum.TopFeels = feels
	return sum
}
