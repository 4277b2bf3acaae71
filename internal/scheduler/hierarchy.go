package scheduler

import "strings"

// groupHierarchy answers, for a pair of target-group names, whether one
// is an ancestor of the other. Group P is a parent of C iff P is a
// proper substring of C (e.g. "SY-A" is a parent of "SY-A-B1"). This is
// the naming heuristic the source relies on in place of an explicit
// hierarchy input; it is brittle by construction (see design notes) but
// requires no additional input field.
type groupHierarchy struct {
	all []string
}

// newGroupHierarchy builds the hierarchy from the union of every
// workload's target groups across the whole faculty roster.
func newGroupHierarchy(allGroups []string) *groupHierarchy {
	seen := make(map[string]struct{}, len(allGroups))
	var uniq []string
	for _, g := range allGroups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		uniq = append(uniq, g)
	}
	return &groupHierarchy{all: uniq}
}

// related reports whether a and b are the same group, or one is an
// ancestor/descendant of the other. The constraint compiler does not
// call it: C5 matches exact group names and C6 uses parentPairs.
func (h *groupHierarchy) related(a, b string) bool {
	if a == b {
		return true
	}
	return isParent(a, b) || isParent(b, a)
}

// isParent reports whether parent is a proper substring of child.
func isParent(parent, child string) bool {
	return len(parent) < len(child) && strings.Contains(child, parent)
}

// isStrictParent reports whether parent is a proper substring of child,
// matching the parent role in C6 — the direction matters there, unlike
// the symmetric "related" check.
func isStrictParent(parent, child string) bool {
	return isParent(parent, child)
}

// parentPairs returns every (parent, child) pair in the hierarchy, for
// C6 to iterate over directly.
func (h *groupHierarchy) parentPairs() [][2]string {
	var pairs [][2]string
	for _, p := range h.all {
		for _, c := range h.all {
			if p != c && isStrictParent(p, c) {
				pairs = append(pairs, [2]string{p, c})
			}
		}
	}
	return pairs
}
