package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/dayring/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingTitle      ConflictType = "missing_title"
	ConflictDuplicateTitle    ConflictType = "duplicate_title"
	ConflictTargetRequired    ConflictType = "target_required"
	ConflictInvalidTarget     ConflictType = "invalid_target"
	ConflictInvalidFrequency  ConflictType = "invalid_frequency"
	ConflictInvalidDaysOfWeek ConflictType = "invalid_days_of_week"
	ConflictMissingItems      ConflictType = "missing_items"
	ConflictInvalidQuantity   ConflictType = "invalid_quantity"
	ConflictNegativeMacro     ConflictType = "negative_macro"
)

// Conflict represents a detected problem in user-entered setup data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit/item names involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}
	report := "Problems detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates setup-surface input before it is sent to the server
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabit checks one habit definition. existing is the current
// habit list, used to flag duplicate titles; the habit being edited is
// excluded by id.
func (v *Validator) ValidateHabit(title, habitType string, target *float64, frequencyType string, frequencyValue *int, daysOfWeek string, id int64, existing []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	title = strings.TrimSpace(title)
	if title == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingTitle,
			Description: "Habit title must not be empty",
		})
	}
	for _, h := range existing {
		if h.ID != id && h.Active && strings.EqualFold(h.Title, title) && title != "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTitle,
				Description: fmt.Sprintf("An active habit named %q already exists", h.Title),
				Items:       []string{title},
			})
		}
	}

	if habitType == "TARGET" {
		if target == nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictTargetRequired,
				Description: "Target-tracked habits need a target value",
				Items:       []string{title},
			})
		} else if *target <= 0 || math.IsNaN(*target) || math.IsInf(*target, 0) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTarget,
				Description: fmt.Sprintf("Target value %v must be a positive number", *target),
				Items:       []string{title},
			})
		}
	}

	switch frequencyType {
	case "", "DAILY":
	case "TIMES_PER_WEEK":
		if frequencyValue == nil || *frequencyValue < 1 || *frequencyValue > 7 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidFrequency,
				Description: "Times-per-week frequency must be between 1 and 7",
				Items:       []string{title},
			})
		}
	case "DAYS_OF_WEEK":
		if !validDaysOfWeek(daysOfWeek) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDaysOfWeek,
				Description: fmt.Sprintf("Days-of-week list %q must be comma-separated digits 0-6", daysOfWeek),
				Items:       []string{title},
			})
		}
	default:
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidFrequency,
			Description: fmt.Sprintf("Unknown frequency type %q", frequencyType),
			Items:       []string{title},
		})
	}

	return result
}

// ValidateMealTemplate checks a meal template definition.
func (v *Validator) ValidateMealTemplate(name string, items []models.MealTemplateItem) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if strings.TrimSpace(name) == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingTitle,
			Description: "Meal template name must not be empty",
		})
	}
	if len(items) == 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingItems,
			Description: "A meal template needs at least one item",
			Items:       []string{name},
		})
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingTitle,
				Description: "Meal items must be named",
				Items:       []string{name},
			})
		}
		if item.BaseQuantity <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidQuantity,
				Description: fmt.Sprintf("Item %q base quantity must be positive", item.Name),
				Items:       []string{name, item.Name},
			})
		}
		if item.ProteinG < 0 || item.CarbsG < 0 || item.FatsG < 0 || item.CaloriesKcal < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeMacro,
				Description: fmt.Sprintf("Item %q has a negative macro value", item.Name),
				Items:       []string{name, item.Name},
			})
		}
	}
	return result
}

// ParseWeightInput turns a weight text field into a value. Empty,
// unparsable, negative, or non-finite input all mean "no weight logged"
// and return nil.
func ParseWeightInput(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseQuantityInput turns a quantity text field into a value. Anything
// that is not a finite non-negative number is coerced to 0.
func ParseQuantityInput(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func validDaysOfWeek(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if len(part) != 1 || part[0] < '0' || part[0] > '6' {
			return false
		}
		if seen[part] {
			return false
		}
		seen[part] = true
	}
	return true
}
