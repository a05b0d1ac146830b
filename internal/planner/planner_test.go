package planner

import (
	"testing"

	"grocery-planner/internal/grocery"
)

func price(v float64) *float64 {
	return &v
}

func TestPlan(t *testing.T) {
	items := []grocery.Item{
		{Name: "Milk", Store: "A", Price: price(2), Purchased: false},
		{Name: "Eggs", Store: "B", Price: price(3), Purchased: false},
		{Name: "Bread", Store: "A", Price: price(1.5), Purchased: true},
	}

	plan := Plan(items)
	if len(plan) != 2 {
		t.Fatalf("Expected 2 store entries, got %d", len(plan))
	}

	if plan[0].Store != "A" || plan[0].TotalCost != 2 {
		t.Errorf("Expected store A with total 2 first, got %s/%f", plan[0].Store, plan[0].TotalCost)
	}
	if len(plan[0].Items) != 1 || plan[0].Items[0].Name != "Milk" {
		t.Errorf("Expected only Milk in store A (Bread is purchased), got %v", plan[0].Items)
	}
	if plan[1].Store != "B" || plan[1].TotalCost != 3 {
		t.Errorf("Expected store B with total 3 second, got %s/%f", plan[1].Store, plan[1].TotalCost)
	}
}

func TestPlan_ExcludesStorelessItems(t *testing.T) {
	items := []grocery.Item{
		{Name: "Milk", Store: "A", Price: price(2)},
		{Name: "Honey", Price: price(9)}, // no store assigned
	}

	plan := Plan(items)
	if len(plan) != 1 {
		t.Fatalf("Expected 1 store entry, got %d", len(plan))
	}

	var total float64
	for _, sp := range plan {
		for _, item := range sp.Items {
			if item.Name == "Honey" {
				t.Error("Expected storeless item to be excluded from every entry")
			}
		}
		total += sp.TotalCost
	}
	if total != 2 {
		t.Errorf("Expected storeless item excluded from totals, got %f", total)
	}
}

func TestPlan_NilPriceCountsAsZero(t *testing.T) {
	items := []grocery.Item{
		{Name: "Milk", Store: "A", Price: price(2)},
		{Name: "Salt", Store: "A"}, // no price recorded
	}

	plan := Plan(items)
	if len(plan) != 1 {
		t.Fatalf("Expected 1 store entry, got %d", len(plan))
	}
	if plan[0].TotalCost != 2 {
		t.Errorf("Expected total 2, got %f", plan[0].TotalCost)
	}
	if len(plan[0].Items) != 2 {
		t.Errorf("Expected priceless item still grouped, got %d items", len(plan[0].Items))
	}
}

func TestPlan_StableOnTies(t *testing.T) {
	items := []grocery.Item{
		{Name: "Tea", Store: "C", Price: price(4)},
		{Name: "Jam", Store: "A", Price: price(4)},
		{Name: "Oil", Store: "B", Price: price(4)},
	}

	plan := Plan(items)
	if len(plan) != 3 {
		t.Fatalf("Expected 3 store entries, got %d", len(plan))
	}
	// Equal totals keep first-seen grouping order.
	want := []string{"C", "A", "B"}
	for i, w := range want {
		if plan[i].Store != w {
			t.Errorf("Expected store %s at position %d, got %s", w, i, plan[i].Store)
		}
	}
}

func TestPlan_Empty(t *testing.T) {
	if plan := Plan(nil); len(plan) != 0 {
		t.Errorf("Expected empty plan for no items, got %d entries", len(plan))
	}
}

func TestPlan_Deterministic(t *testing.T) {
	items := []grocery.Item{
		{Name: "Milk", Store: "A", Price: price(2)},
		{Name: "Eggs", Store: "B", Price: price(3)},
		{Name: "Tofu", Store: "A", Price: price(1)},
	}

	first := Plan(items)
	second := Plan(items)
	if len(first) != len(second) {
		t.Fatalf("Expected identical plans, got %d vs %d entries", len(first), len(second))
	}
	for i := range first {
		if first[i].Store != second[i].Store || first[i].TotalCost != second[i].TotalCost {
			t.Errorf("Expected identical entry at %d, got %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	plan := []StorePlan{
		{Store: "A", TotalCost: 20},
		{Store: "B", TotalCost: 35.5},
	}

	summary := Summarize(plan, 100)
	if summary.TotalCost != 55.5 {
		t.Errorf("Expected total 55.5, got %f", summary.TotalCost)
	}
	if summary.OverBudget {
		t.Error("Expected under budget")
	}

	summary = Summarize(plan, 50)
	if !summary.OverBudget {
		t.Error("Expected over budget")
	}
}
