// Package planner computes shopping plans over a user's grocery list.
package planner

import (
	"sort"

	"grocery-planner/internal/grocery"
)

// StorePlan groups the unpurchased items assigned to one store with their
// summed cost.
type StorePlan struct {
	Store     string         `json:"store"`
	Items     []grocery.Item `json:"items"`
	TotalCost float64        `json:"total_cost"`
}

// BudgetSummary compares a plan's total against the user's weekly budget.
type BudgetSummary struct {
	TotalCost  float64 `json:"total_cost"`
	Budget     float64 `json:"budget"`
	OverBudget bool    `json:"over_budget"`
}

// Plan groups unpurchased, store-assigned items by store and returns one
// entry per store sorted ascending by total cost. Items without a store are
// excluded entirely. Pure and deterministic: grouping preserves first-seen
// store order and the sort is stable, so ties keep that order.
func Plan(items []grocery.Item) []StorePlan {
	index := make(map[string]int)
	var plans []StorePlan

	for _, item := range items {
		if item.Purchased || item.Store == "" {
			continue
		}
		i, ok := index[item.Store]
		if !ok {
			i = len(plans)
			index[item.Store] = i
			plans = append(plans, StorePlan{Store: item.Store})
		}
		plans[i].Items = append(plans[i].Items, item)
		if item.Price != nil {
			plans[i].TotalCost += *item.Price
		}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].TotalCost < plans[j].TotalCost
	})
	return plans
}

// Summarize totals a plan across stores and flags budget overruns.
func Summarize(plans []StorePlan, budget float64) BudgetSummary {
	var total float64
	for _, p := range plans {
		total += p.TotalCost
	}
	return BudgetSummary{
		TotalCost:  total,
		Budget:     budget,
		OverBudget: total > budget,
	}
}
