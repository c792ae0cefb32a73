package application

import (
	"fmt"
	"sync"
	"time"

	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

const keyDiningPlan = "dining_plan"

// PlanStore owns the session's dining plan: the only mutation path is
// Set(patch), which merges, persists and then notifies subscribers
// synchronously in subscription order.
type PlanStore struct {
	store repository.KeyValueStore

	mu   sync.Mutex
	plan model.DiningPlan
	subs []func(model.DiningPlan)
}

// NewPlanStore loads the persisted plan or seeds defaults (tonight, 19:30,
// party of two, business vibe, mid budget).
func NewPlanStore(store repository.KeyValueStore) *PlanStore {
	p := &PlanStore{store: store}

	var saved model.DiningPlan
	if ok, err := store.Get(keyDiningPlan, &saved); err == nil && ok {
		p.plan = saved
	}
	if p.plan.Date == "" {
		p.plan.Date = time.Now().Format("2006-01-02")
	}
	if p.plan.Time == "" {
		p.plan.Time = "19:30"
	}
	if p.plan.PartySize < 1 {
		p.plan.PartySize = 2
	}
	if !model.IsValidVibe(p.plan.Vibe) {
		p.plan.Vibe = model.VibeBusiness
	}
	if !model.IsValidBudget(p.plan.Budget) {
		p.plan.Budget = model.BudgetMid
	}
	if p.plan.WalkMinutes < model.MinWalkMinutes || p.plan.WalkMinutes > model.MaxWalkMinutes {
		p.plan.WalkMinutes = 15
	}
	return p
}

// Get returns a copy of the current plan.
func (p *PlanStore) Get() model.DiningPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan
}

// Subscribe registers a listener; the returned function unsubscribes it.
func (p *PlanStore) Subscribe(fn func(model.DiningPlan)) func() {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	idx := len(p.subs) - 1
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if idx < len(p.subs) {
			p.subs[idx] = nil
		}
	}
}

// Set merges the patch, persists atomically under one key, then notifies all
// subscribers synchronously, in subscription order.
func (p *PlanStore) Set(patch model.PlanPatch) (model.DiningPlan, error) {
	p.mu.Lock()
	p.plan = p.plan.Apply(patch)
	updated := p.plan
	subs := make([]func(model.DiningPlan), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	if err := p.store.Set(keyDiningPlan, updated); err != nil {
		return updated, fmt.Errorf("persist dining plan: %w", err)
	}

	for _, fn := range subs {
		if fn != nil {
			fn(updated)
		}
	}
	return updated, nil
}
