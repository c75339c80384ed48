package validation

import (
	"math"
	"testing"

	"github.com/julianstephens/dayring/internal/models"
)

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func conflictTypes(r ValidationResult) map[ConflictType]bool {
	m := map[ConflictType]bool{}
	for _, c := range r.Conflicts {
		m[c.Type] = true
	}
	return m
}

func TestValidateHabit_CleanChecklist(t *testing.T) {
	v := New()
	r := v.ValidateHabit("Meditate", "CHECKLIST", nil, "DAILY", nil, "", 0, nil)
	if r.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", r.FormatReport())
	}
}

func TestValidateHabit_Title(t *testing.T) {
	v := New()

	r := v.ValidateHabit("   ", "CHECKLIST", nil, "DAILY", nil, "", 0, nil)
	if !conflictTypes(r)[ConflictMissingTitle] {
		t.Error("blank title not flagged")
	}

	existing := []models.Habit{{ID: 4, Title: "meditate", Active: true}}
	r = v.ValidateHabit("Meditate", "CHECKLIST", nil, "DAILY", nil, "", 0, existing)
	if !conflictTypes(r)[ConflictDuplicateTitle] {
		t.Error("case-insensitive duplicate not flagged")
	}

	// Editing the habit itself is not a duplicate.
	r = v.ValidateHabit("Meditate", "CHECKLIST", nil, "DAILY", nil, "", 4, existing)
	if conflictTypes(r)[ConflictDuplicateTitle] {
		t.Error("self flagged as duplicate")
	}

	// Inactive habits don't block reuse of the title.
	existing[0].Active = false
	r = v.ValidateHabit("Meditate", "CHECKLIST", nil, "DAILY", nil, "", 0, existing)
	if conflictTypes(r)[ConflictDuplicateTitle] {
		t.Error("inactive habit blocked title reuse")
	}
}

func TestValidateHabit_Target(t *testing.T) {
	v := New()

	r := v.ValidateHabit("Read", "TARGET", nil, "DAILY", nil, "", 0, nil)
	if !conflictTypes(r)[ConflictTargetRequired] {
		t.Error("missing target not flagged")
	}

	for _, bad := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		r = v.ValidateHabit("Read", "TARGET", f64(bad), "DAILY", nil, "", 0, nil)
		if !conflictTypes(r)[ConflictInvalidTarget] {
			t.Errorf("target %v not flagged", bad)
		}
	}

	r = v.ValidateHabit("Read", "TARGET", f64(20), "DAILY", nil, "", 0, nil)
	if r.HasConflicts() {
		t.Errorf("valid target flagged: %s", r.FormatReport())
	}
}

func TestValidateHabit_Frequency(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		fType string
		fVal  *int
		days  string
		bad   bool
	}{
		{"daily", "DAILY", nil, "", false},
		{"empty defaults to daily", "", nil, "", false},
		{"times per week valid", "TIMES_PER_WEEK", iptr(3), "", false},
		{"times per week missing value", "TIMES_PER_WEEK", nil, "", true},
		{"times per week out of range", "TIMES_PER_WEEK", iptr(8), "", true},
		{"days of week valid", "DAYS_OF_WEEK", nil, "0,2,4", false},
		{"days of week empty", "DAYS_OF_WEEK", nil, "", true},
		{"days of week out of range", "DAYS_OF_WEEK", nil, "1,7", true},
		{"days of week duplicate", "DAYS_OF_WEEK", nil, "1,1", true},
		{"unknown type", "MONTHLY", nil, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := v.ValidateHabit("Run", "CHECKLIST", nil, tc.fType, tc.fVal, tc.days, 0, nil)
			if r.HasConflicts() != tc.bad {
				t.Errorf("conflicts = %v, want bad=%v (%s)", r.Conflicts, tc.bad, r.FormatReport())
			}
		})
	}
}

func TestValidateMealTemplate(t *testing.T) {
	v := New()

	item := models.MealTemplateItem{Name: "Oats", BaseQuantity: 100, ProteinG: 13, CarbsG: 68, FatsG: 7, CaloriesKcal: 389}
	if r := v.ValidateMealTemplate("Breakfast", []models.MealTemplateItem{item}); r.HasConflicts() {
		t.Errorf("valid template flagged: %s", r.FormatReport())
	}

	if r := v.ValidateMealTemplate("", nil); !conflictTypes(r)[ConflictMissingTitle] || !conflictTypes(r)[ConflictMissingItems] {
		t.Errorf("empty template conflicts = %v", r.Conflicts)
	}

	zeroBase := item
	zeroBase.BaseQuantity = 0
	if r := v.ValidateMealTemplate("Breakfast", []models.MealTemplateItem{zeroBase}); !conflictTypes(r)[ConflictInvalidQuantity] {
		t.Error("zero base quantity not flagged")
	}

	negative := item
	negative.FatsG = -1
	if r := v.ValidateMealTemplate("Breakfast", []models.MealTemplateItem{negative}); !conflictTypes(r)[ConflictNegativeMacro] {
		t.Error("negative macro not flagged")
	}
}

func TestParseWeightInput(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"   ", nil},
		{"abc", nil},
		{"-5", nil},
		{"NaN", nil},
		{"+Inf", nil},
		{"0", f64(0)},
		{"82.5", f64(82.5)},
		{" 82.5 ", f64(82.5)},
	}
	for _, tc := range tests {
		got := ParseWeightInput(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("ParseWeightInput(%q) = %v, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("ParseWeightInput(%q) = %v, want %v", tc.in, got, *tc.want)
		}
	}
}

func TestParseQuantityInput(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"junk", 0},
		{"-3", 0},
		{"Inf", 0},
		{"250", 250},
		{"1.5", 1.5},
	}
	for _, tc := range tests {
		if got := ParseQuantityInput(tc.in); got != tc.want {
			t.Errorf("ParseQuantityInput(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
