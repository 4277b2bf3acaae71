package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupHierarchy_Related(t *testing.T) {
	h := newGroupHierarchy([]string{"SY-A", "SY-A-B1", "SY-A-B2", "TY-A"})

	assert.True(t, h.related("SY-A", "SY-A"), "a group is related to itself")
	assert.True(t, h.related("SY-A", "SY-A-B1"), "a parent is related to its child")
	assert.True(t, h.related("SY-A-B1", "SY-A"), "related is symmetric")
	assert.False(t, h.related("SY-A-B1", "SY-A-B2"), "sibling batches are not related")
	assert.False(t, h.related("SY-A", "TY-A"), "unrelated groups are not related")
}

func TestGroupHierarchy_ParentPairs(t *testing.T) {
	h := newGroupHierarchy([]string{"SY-A", "SY-A-B1", "SY-A-B2", "TY-A"})

	pairs := h.parentPairs()
	assert.Contains(t, pairs, [2]string{"SY-A", "SY-A-B1"})
	assert.Contains(t, pairs, [2]string{"SY-A", "SY-A-B2"})
	assert.Len(t, pairs, 2, "only SY-A has descendants among the given groups")
}
