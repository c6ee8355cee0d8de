package services

import (
	"sort"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// Assignment pairs one order with the driver chosen for it.
type Assignment struct {
	// OrderID is the assigned order.
	OrderID kernel.UUID

	// DriverID is the chosen driver.
	DriverID kernel.UUID

	// Score is the fitness the pairing was chosen at.
	Score float64

	// ColdChainViolation is true when the order needs cold-chain transport
	// and the chosen driver has no cold box. The assignment stands; the
	// caller emits a warning.
	ColdChainViolation bool
}

// PlanSummary aggregates one planning run.
type PlanSummary struct {
	// AssignedCount is the number of orders paired with a driver.
	AssignedCount int

	// UnassignedCount is the number of orders left ready.
	UnassignedCount int

	// AvgOrdersPerDriver is AssignedCount spread over the drivers that
	// received at least one order. Zero when nothing was assigned.
	AvgOrdersPerDriver float64
}

// Plan is the outcome of one batch planning run.
type Plan struct {
	// Assignments are the chosen pairings, in the order they were made.
	Assignments []Assignment

	// UnassignedOrderIDs are the orders no driver could take.
	UnassignedOrderIDs []kernel.UUID

	// Summary aggregates the run.
	Summary PlanSummary
}

// DispatchPlanner is a domain service matching a batch of ready orders to
// a fleet of drivers.
//
// The plan is greedy and load-levelling: drivers are visited by ascending
// active-order count (ties by id), and each takes up to its remaining
// capacity of the highest-scoring orders still unassigned. The planner is
// pure: it works on a snapshot and mutates neither orders nor drivers.
// Identical inputs always produce the identical plan.
type DispatchPlanner struct {
	scorer DispatchScorer
}

// NewDispatchPlanner creates a planner using the given scorer.
func NewDispatchPlanner(scorer DispatchScorer) DispatchPlanner {
	return DispatchPlanner{scorer: scorer}
}

// PlanAssignments matches ready orders to drivers and returns the plan.
// Orders that fail transport validation or that no driver can take are
// reported as unassigned, never dropped.
func (p DispatchPlanner) PlanAssignments(orders []*order.Order, drivers []*driver.Driver) Plan {
	byLoad := make([]*driver.Driver, len(drivers))
	copy(byLoad, drivers)
	sort.SliceStable(byLoad, func(i, j int) bool {
		if byLoad[i].ActiveOrders() != byLoad[j].ActiveOrders() {
			return byLoad[i].ActiveOrders() < byLoad[j].ActiveOrders()
		}
		return byLoad[i].ID().String() < byLoad[j].ID().String()
	})

	pending := make([]*order.Order, 0, len(orders))
	var unassigned []kernel.UUID
	for _, o := range orders {
		if err := o.ValidateAssign(); err != nil {
			unassigned = append(unassigned, o.ID())
			continue
		}
		pending = append(pending, o)
	}

	var assignments []Assignment
	driversUsed := make(map[string]struct{})

	for _, d := range byLoad {
		if !d.CanTakeOrder() {
			continue
		}
		remaining := d.RemainingCapacity()

		for remaining > 0 && len(pending) > 0 {
			best, bestIdx := -1.0, -1
			for i, o := range pending {
				score := p.scorer.Score(d, o)
				if score > best {
					best, bestIdx = score, i
				}
			}

			o := pending[bestIdx]
			assignments = append(assignments, Assignment{
				OrderID:            o.ID(),
				DriverID:           d.ID(),
				Score:              best,
				ColdChainViolation: o.RequiresColdChain() && !d.HasColdBox(),
			})
			driversUsed[d.ID().String()] = struct{}{}
			pending = append(pending[:bestIdx], pending[bestIdx+1:]...)
			remaining--
		}
	}

	for _, o := range pending {
		unassigned = append(unassigned, o.ID())
	}

	summary := PlanSummary{
		AssignedCount:   len(assignments),
		UnassignedCount: len(unassigned),
	}
	if len(driversUsed) > 0 {
		summary.AvgOrdersPerDriver = float64(len(assignments)) / float64(len(driversUsed))
	}

	return Plan{
		Assignments:        assignments,
		UnassignedOrderIDs: unassigned,
		Summary:            summary,
	}
}
