// Package taskfilter derives displayable task sets from a task collection and
// a filter specification. It is a pure in-memory transform: no store access,
// no side effects, and input order is preserved.
package taskfilter

import (
	"slices"
	"time"

	"github.com/ashokvas/flowspace/internal/models"
)

// FilterAll is the wildcard value for every filter field.
const FilterAll = "all"

// Spec is a conjunctive filter: a task survives only if every non-wildcard
// field matches.
type Spec struct {
	Priority  string // "all" or high|med|low
	Status    string // "all" or todo|inprog|done
	Due       string // "all" or overdue|today|upcoming|nodate
	ProjectID string // "all" or a project id
	Tag       string // "all" or a tag that must appear in the task's tag list
}

// Partition splits tasks into the active and archived sets. The two are
// disjoint and together cover the input.
func Partition(tasks []models.Task) (active, archived []models.Task) {
	for _, t := range tasks {
		if t.Archived {
			archived = append(archived, t)
		} else {
			active = append(active, t)
		}
	}
	return active, archived
}

// Filter selects one archived/active partition and applies the conjunctive
// predicate. Due-date classification is computed against today. The result
// keeps the input's relative order.
func Filter(tasks []models.Task, spec Spec, showArchived bool, today time.Time) []models.Task {
	active, archived := Partition(tasks)
	pool := active
	if showArchived {
		pool = archived
	}

	out := make([]models.Task, 0, len(pool))
	for _, t := range pool {
		if !matches(t, spec, today) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(t models.Task, spec Spec, today time.Time) bool {
	if spec.Priority != "" && spec.Priority != FilterAll && t.Priority != spec.Priority {
		return false
	}
	if spec.Status != "" && spec.Status != FilterAll && t.Status != spec.Status {
		return false
	}
	if spec.ProjectID != "" && spec.ProjectID != FilterAll && t.ProjectID.String() != spec.ProjectID {
		return false
	}
	if spec.Tag != "" && spec.Tag != FilterAll && !slices.Contains(t.Tags, spec.Tag) {
		return false
	}
	class, _ := ClassifyDue(t.DueDate, today)
	return matchesDueFilter(class, spec.Due)
}

// CycleStatus rotates a task status one step: todo -> inprog -> done -> todo.
func CycleStatus(status string) string {
	switch status {
	case models.StatusTodo:
		return models.StatusInProgress
	case models.StatusInProgress:
		return models.StatusDone
	default:
		return models.StatusTodo
	}
}

// TagFacets returns the distinct tags across all tasks in first-seen order.
// Used to populate filter options; never persisted.
func TagFacets(tasks []models.Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
