package gym

import (
	"context"
	"testing"

	"github.com/julianstephens/dayring/internal/models"
)

func mealDashboard() models.GymDashboard {
	oats := models.MealTemplateItem{
		ID: 11, Name: "Oats", UnitLabel: "g", BaseQuantity: 100,
		ProteinG: 13, CarbsG: 68, FatsG: 7, CaloriesKcal: 389,
	}
	whey := models.MealTemplateItem{
		ID: 12, Name: "Whey", UnitLabel: "g", BaseQuantity: 30,
		ProteinG: 24, CarbsG: 3, FatsG: 2, CaloriesKcal: 120,
	}
	return models.GymDashboard{
		Date: testToday,
		MealTemplates: []models.MealTemplate{
			{ID: 100, Name: "Breakfast", Active: true, Items: []models.MealTemplateItem{oats, whey}},
		},
	}
}

func TestAddMeal_ZeroQuantities(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: mealDashboard()}}
	s, _ := newTestSession(t, gw)

	if err := s.AddMeal(100); err != nil {
		t.Fatalf("AddMeal: %v", err)
	}
	dash := s.Dashboard()
	meal := dash.MealByTemplateID(100)
	if meal == nil || len(meal.Items) != 2 {
		t.Fatalf("meal = %+v", meal)
	}
	for _, item := range meal.Items {
		if item.Quantity != 0 || item.Consumed != (models.Totals{}) {
			t.Errorf("item %s not zeroed: %+v", item.Name, item)
		}
	}
	if dash.ConsumedTotals != (models.Totals{}) {
		t.Errorf("dashboard totals = %+v", dash.ConsumedTotals)
	}

	// Re-adding is a no-op.
	if err := s.AddMeal(100); err != nil {
		t.Fatal(err)
	}
	if len(s.Dashboard().DayMeals) != 1 {
		t.Error("duplicate AddMeal created a second meal")
	}

	if err := s.AddMeal(999); err == nil {
		t.Error("unknown template accepted")
	}
}

func TestSetMealQuantity_RecomputesTotals(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: mealDashboard()}}
	s, _ := newTestSession(t, gw)
	s.AddMeal(100)

	// 250g of oats at a 100g base scales macros by 2.5.
	if err := s.SetMealQuantity(100, 11, "250"); err != nil {
		t.Fatalf("SetMealQuantity: %v", err)
	}

	meal := s.Dashboard().MealByTemplateID(100)
	oats := meal.Items[0]
	want := models.Totals{ProteinG: 32.5, CarbsG: 170, FatsG: 17.5, CaloriesKcal: 972.5}
	if oats.Consumed != want {
		t.Errorf("consumed = %+v, want %+v", oats.Consumed, want)
	}
	if meal.ConsumedTotals != want {
		t.Errorf("meal totals = %+v", meal.ConsumedTotals)
	}
	if s.Dashboard().ConsumedTotals != want {
		t.Errorf("dashboard totals = %+v", s.Dashboard().ConsumedTotals)
	}

	// Invalid text coerces to zero and totals follow.
	if err := s.SetMealQuantity(100, 11, "junk"); err != nil {
		t.Fatal(err)
	}
	if s.Dashboard().ConsumedTotals != (models.Totals{}) {
		t.Errorf("totals after invalid input = %+v", s.Dashboard().ConsumedTotals)
	}
}

func TestFillMealToBase(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: mealDashboard()}}
	s, _ := newTestSession(t, gw)
	s.AddMeal(100)

	if err := s.FillMealToBase(100); err != nil {
		t.Fatalf("FillMealToBase: %v", err)
	}
	meal := s.Dashboard().MealByTemplateID(100)
	if meal.Items[0].Quantity != 100 || meal.Items[1].Quantity != 30 {
		t.Errorf("quantities = %v, %v", meal.Items[0].Quantity, meal.Items[1].Quantity)
	}
	// One serving of everything equals the plain macro sums.
	want := models.Totals{ProteinG: 37, CarbsG: 71, FatsG: 9, CaloriesKcal: 509}
	if meal.ConsumedTotals != want {
		t.Errorf("meal totals = %+v, want %+v", meal.ConsumedTotals, want)
	}
}

func TestRemoveMeal(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: mealDashboard()}}
	s, _ := newTestSession(t, gw)
	s.AddMeal(100)
	s.SetMealQuantity(100, 11, "250")

	if err := s.RemoveMeal(100); err != nil {
		t.Fatalf("RemoveMeal: %v", err)
	}
	if len(s.Dashboard().DayMeals) != 0 {
		t.Error("meal not removed")
	}
	if s.Dashboard().ConsumedTotals != (models.Totals{}) {
		t.Errorf("totals after removal = %+v", s.Dashboard().ConsumedTotals)
	}
}

func TestSaveMeals_SerializationAndCoercion(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: mealDashboard()}}
	s, _ := newTestSession(t, gw)
	s.AddMeal(100)
	s.SetMealQuantity(100, 11, "250")
	s.SetMealQuantity(100, 12, "-5")

	if err := s.SaveMeals(context.Background()); err != nil {
		t.Fatalf("SaveMeals: %v", err)
	}

	req := gw.lastMealsSave
	if req == nil || len(req.Meals) != 1 {
		t.Fatalf("payload = %+v", req)
	}
	meal := req.Meals[0]
	if meal.MealTemplateID != 100 || len(meal.Items) != 2 {
		t.Fatalf("meal save = %+v", meal)
	}
	if meal.Items[0].TemplateItemID != 11 || meal.Items[0].Quantity != 250 {
		t.Errorf("item 11 = %+v", meal.Items[0])
	}
	if meal.Items[1].TemplateItemID != 12 || meal.Items[1].Quantity != 0 {
		t.Errorf("negative quantity not coerced: %+v", meal.Items[1])
	}
}

func TestMacroProgress(t *testing.T) {
	dash := mealDashboard()
	dash.BodyProfile = &models.BodyProfile{
		WeightKg: f64(80),
		Targets:  &models.MacroTargets{ProteinG: 160, CarbsG: 200, FatsG: 70, CaloriesKcal: 2500},
	}
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: dash}}
	s, _ := newTestSession(t, gw)
	s.AddMeal(100)
	s.SetMealQuantity(100, 11, "250") // 32.5g protein of a 160g target

	protein, _, _, _ := s.MacroProgress()
	if protein != 20 {
		t.Errorf("protein progress = %d, want 20", protein)
	}

	// No targets means zero progress, never a division error.
	s.Dashboard().BodyProfile = nil
	p, c, f, k := s.MacroProgress()
	if p+c+f+k != 0 {
		t.Errorf("progress without targets = %d %d %d %d", p, c, f, k)
	}
}
