package triage

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"trade-reconciliation/internal/domain"
	"trade-reconciliation/internal/logger"
)

// PolicyStore persists the append-only reward event log that backs the
// learned routing policy.
//
//go:generate mockgen -destination=mocks/mock_policy_store.go -source=policy.go PolicyStore
type PolicyStore interface {
	AppendReward(ctx context.Context, ev domain.RewardEvent) error
	ListRewards(ctx context.Context) ([]domain.RewardEvent, error)
}

// Policy is the effective learned routing policy, recomputed from the
// reward event log. It is advisory only: the router consults it solely for
// the default triage rule, never to override the fixed rules.
type Policy struct {
	preferred  map[string]domain.RoutingDestination
	avgReward  map[string]float64
	EventCount int
}

// ComputePolicy folds the reward event stream into an effective policy.
// Per reason code the destination with the highest cumulative reward wins,
// with an alphabetical tie-break for determinism.
func ComputePolicy(events []domain.RewardEvent) *Policy {
	type key struct {
		reason string
		dest   domain.RoutingDestination
	}
	cumulative := make(map[key]float64)
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, ev := range events {
		cumulative[key{ev.ReasonCode, ev.Destination}] += ev.Reward
		totals[ev.ReasonCode] += ev.Reward
		counts[ev.ReasonCode]++
	}

	pol := &Policy{
		preferred:  make(map[string]domain.RoutingDestination),
		avgReward:  make(map[string]float64),
		EventCount: len(events),
	}
	for reason, n := range counts {
		pol.avgReward[reason] = totals[reason] / float64(n)

		var candidates []key
		for k := range cumulative {
			if k.reason == reason {
				candidates = append(candidates, k)
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			ci, cj := cumulative[candidates[i]], cumulative[candidates[j]]
			if ci != cj {
				return ci > cj
			}
			return candidates[i].dest < candidates[j].dest
		})
		if len(candidates) > 0 && cumulative[candidates[0]] > 0 {
			pol.preferred[reason] = candidates[0].dest
		}
	}
	return pol
}

// Destination returns the learned destination for a reason code, if the
// event log supports one.
func (p *Policy) Destination(reason string) (domain.RoutingDestination, bool) {
	dest, ok := p.preferred[reason]
	return dest, ok
}

// SeverityCorrection derives a bounded severity adjustment from the
// average reward observed for a reason code. Consistently bad outcomes
// (negative rewards) push severity up, good outcomes pull it down. The
// correction never exceeds ±0.10.
func (p *Policy) SeverityCorrection(reason string) float64 {
	avg, ok := p.avgReward[reason]
	if !ok {
		return 0
	}
	corr := -0.10 * avg
	return math.Min(0.10, math.Max(-0.10, corr))
}

const policyCacheKey = "effective_policy"

// PolicyProvider serves the current effective policy, recomputing it
// lazily from the store and caching the result for a TTL. A missing or
// unavailable store is a valid state: lookups degrade to nil and the
// router falls back to its fixed rules.
type PolicyProvider struct {
	store PolicyStore
	cache *cache.Cache
}

func NewPolicyProvider(store PolicyStore, ttl time.Duration) *PolicyProvider {
	return &PolicyProvider{
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Current returns the effective policy, or nil when none is available.
func (pp *PolicyProvider) Current(ctx context.Context) *Policy {
	if pp == nil || pp.store == nil {
		return nil
	}
	if cached, ok := pp.cache.Get(policyCacheKey); ok {
		return cached.(*Policy)
	}
	pol, err := pp.recompute(ctx)
	if err != nil {
		logger.L.Warn("policy recomputation failed, falling back to fixed rules", "error", err)
		return nil
	}
	return pol
}

// Refresh forces a recomputation, bypassing the cache. Used by the
// scheduled recomputation job.
func (pp *PolicyProvider) Refresh(ctx context.Context) error {
	if pp == nil || pp.store == nil {
		return nil
	}
	_, err := pp.recompute(ctx)
	return err
}

func (pp *PolicyProvider) recompute(ctx context.Context) (*Policy, error) {
	events, err := pp.store.ListRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reward events: %w", err)
	}
	pol := ComputePolicy(events)
	pp.cache.Set(policyCacheKey, pol, cache.DefaultExpiration)
	return pol, nil
}
