package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"

	"github.com/google/uuid"
)

// planner turns a composition into concrete resource assignments. It is
// shared by availability resolution (probe every grid start) and hold
// creation (probe the one requested start); both go through the same
// code so a start reported as feasible is reservable barring a race,
// and the race is caught by the ledger's serializable re-validation.
type planner struct {
	repo        *repository.Repository
	granularity int
}

func newPlanner(repo *repository.Repository, granularityMinutes int) *planner {
	return &planner{repo: repo, granularity: granularityMinutes}
}

// planContext carries the candidate resources for one composition,
// prefetched once so probing many starts does not hit the catalog
// per slot.
type planContext struct {
	comp          *Composition
	anchors       []*entity.Resource
	humansBySkill map[string][]*entity.Resource
	support       map[entity.ResourceType][]*entity.Resource
}

type window struct {
	start, end time.Time
}

// prepare prefetches every resource that could participate in a plan
// for the composition. Anchors are the resources whose slot grids
// define the candidate start times: under same_human, the humans
// covering every member skill; otherwise the humans for the first
// human-requiring member, falling back to support resources for
// compositions with no human role at all.
func (p *planner) prepare(ctx context.Context, comp *Composition) (*planContext, error) {
	pc := &planContext{
		comp:          comp,
		humansBySkill: make(map[string][]*entity.Resource),
		support:       make(map[entity.ResourceType][]*entity.Resource),
	}

	needsHuman := false
	for _, item := range comp.Items {
		for _, role := range item.Service.ResourceTypes {
			switch role {
			case entity.ResourceTypeHuman:
				needsHuman = true
				if _, ok := pc.humansBySkill[item.Service.Skill]; !ok {
					humans, err := p.repo.Resource.FindHumansWithSkills(ctx, []string{item.Service.Skill})
					if err != nil {
						return nil, fmt.Errorf("load humans for skill %s: %w", item.Service.Skill, err)
					}
					pc.humansBySkill[item.Service.Skill] = humans
				}
			case entity.ResourceTypeRoom, entity.ResourceTypeEquipment:
				if _, ok := pc.support[role]; !ok {
					resources, err := p.repo.Resource.FindByType(ctx, role)
					if err != nil {
						return nil, fmt.Errorf("load %s resources: %w", role, err)
					}
					pc.support[role] = resources
				}
			}
		}
	}

	switch {
	case comp.HumanPolicy == entity.HumanPolicySame:
		anchors, err := p.repo.Resource.FindHumansWithSkills(ctx, comp.Skills)
		if err != nil {
			return nil, fmt.Errorf("load same-human anchors: %w", err)
		}
		pc.anchors = anchors
	case needsHuman:
		for _, item := range comp.Items {
			if requiresRole(item.Service, entity.ResourceTypeHuman) {
				pc.anchors = pc.humansBySkill[item.Service.Skill]
				break
			}
		}
	default:
		if len(comp.Items) > 0 && len(comp.Items[0].Service.ResourceTypes) > 0 {
			pc.anchors = pc.support[comp.Items[0].Service.ResourceTypes[0]]
		}
	}

	return pc, nil
}

func requiresRole(service *entity.Service, role entity.ResourceType) bool {
	for _, r := range service.ResourceTypes {
		if r == role {
			return true
		}
	}
	return false
}

// resourceIDs returns every distinct resource a plan could touch, for
// cache version snapshots.
func (pc *planContext) resourceIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	add := func(resources []*entity.Resource) {
		for _, r := range resources {
			if !seen[r.ID] {
				seen[r.ID] = true
				ids = append(ids, r.ID)
			}
		}
	}

	add(pc.anchors)
	for _, humans := range pc.humansBySkill {
		add(humans)
	}
	for _, resources := range pc.support {
		add(resources)
	}

	return ids
}

// feasibleStarts probes every candidate grid start on the date and
// returns the ones a full resource assignment exists for, ascending.
// Starts already in the past at asOf are excluded.
func (p *planner) feasibleStarts(ctx context.Context, pc *planContext, date time.Time, asOf time.Time) ([]time.Time, error) {
	candidates := p.gridStarts(pc, date)

	var feasible []time.Time
	for _, start := range candidates {
		if start.Before(asOf) {
			continue
		}
		_, ok, err := p.assignmentFor(ctx, pc, start, asOf)
		if err != nil {
			return nil, err
		}
		if ok {
			feasible = append(feasible, start)
		}
	}

	return feasible, nil
}

// gridStarts is the deduplicated, sorted union of the anchors' slot
// grids for the date.
func (p *planner) gridStarts(pc *planContext, date time.Time) []time.Time {
	seen := make(map[int64]bool)
	var starts []time.Time
	for _, anchor := range pc.anchors {
		for _, start := range slotStarts(anchor, date, p.granularity) {
			key := start.Unix()
			if !seen[key] {
				seen[key] = true
				starts = append(starts, start)
			}
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts
}

// onGrid reports whether start is a slot boundary for at least one
// anchor on its date. Holds may only begin on the grid.
func (p *planner) onGrid(pc *planContext, start time.Time) bool {
	for _, anchor := range pc.anchors {
		for _, candidate := range slotStarts(anchor, start, p.granularity) {
			if candidate.Equal(start) {
				return true
			}
		}
	}
	return false
}

// assignmentFor builds the full set of resource windows for the
// composition beginning at start, or reports that none exists. Under
// same_human each anchor is tried as the single human for every member;
// otherwise resources are picked greedily per member window.
func (p *planner) assignmentFor(ctx context.Context, pc *planContext, start time.Time, asOf time.Time) ([]entity.HoldResource, bool, error) {
	if pc.comp.HumanPolicy == entity.HumanPolicySame {
		for _, anchor := range pc.anchors {
			plan, ok, err := p.tryPlan(ctx, pc, start, asOf, anchor)
			if err != nil {
				return nil, false, err
			}
			if ok {
				return plan, true, nil
			}
		}
		return nil, false, nil
	}

	return p.tryPlan(ctx, pc, start, asOf, nil)
}

func (p *planner) tryPlan(ctx context.Context, pc *planContext, start time.Time, asOf time.Time, anchor *entity.Resource) ([]entity.HoldResource, bool, error) {
	used := make(map[uuid.UUID][]window)
	var plan []entity.HoldResource

	for _, item := range pc.comp.Items {
		itemStart := start.Add(time.Duration(item.OffsetMinutes) * time.Minute)
		itemEnd := itemStart.Add(time.Duration(item.Service.DurationMinutes) * time.Minute)

		for _, role := range item.Service.ResourceTypes {
			var candidates []*entity.Resource
			if role == entity.ResourceTypeHuman {
				if anchor != nil {
					candidates = []*entity.Resource{anchor}
				} else {
					candidates = pc.humansBySkill[item.Service.Skill]
				}
			} else {
				candidates = pc.support[role]
			}

			picked, ok, err := p.pick(ctx, pc, candidates, itemStart, itemEnd, asOf, used, anchor)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}

			plan = append(plan, entity.HoldResource{
				ServiceID:  item.Service.ID,
				Role:       role,
				ResourceID: picked.ID,
				StartTime:  itemStart,
				EndTime:    itemEnd,
			})
			used[picked.ID] = append(used[picked.ID], window{start: itemStart, end: itemEnd})
		}
	}

	return plan, true, nil
}

// pick selects the first candidate that works the window, is not
// already claimed by this plan for an overlapping window, and is free
// in the ledger. The same-human anchor of a parallel bundle may carry
// overlapping windows: the single visit covers the concurrent members.
func (p *planner) pick(ctx context.Context, pc *planContext, candidates []*entity.Resource, start, end time.Time, asOf time.Time, used map[uuid.UUID][]window, anchor *entity.Resource) (*entity.Resource, bool, error) {
	for _, candidate := range candidates {
		if !windowWithinHours(candidate, start, end) {
			continue
		}

		allowOverlap := anchor != nil &&
			candidate.ID == anchor.ID &&
			pc.comp.Concurrency == entity.ConcurrencyParallel
		if !allowOverlap && planConflict(used[candidate.ID], start, end) {
			continue
		}

		free, err := p.repo.Ledger.IsFree(ctx, candidate.ID, start, end, asOf)
		if err != nil {
			return nil, false, err
		}
		if free {
			return candidate, true, nil
		}
	}

	return nil, false, nil
}

func planConflict(claimed []window, start, end time.Time) bool {
	for _, w := range claimed {
		if overlaps(w.start, w.end, start, end) {
			return true
		}
	}
	return false
}
