package activities

import (
	"sort"

	"github.com/geo-directory/backend/internal/models"
)

type treeNode struct {
	activity models.Activity
	children []int64
}

// BuildTree assembles flat activity rows into a forest. Input order does not matter.
//
// A row whose parent is not among rows becomes a root. With a maxDepth filter applied upstream this
// yields synthetic roots for nodes whose ancestors were filtered out; that is intended. Roots and every
// children list are ordered by ascending id.
func BuildTree(rows []models.Activity) []models.ActivityNode {
	arena := make(map[int64]*treeNode, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, a := range rows {
		if _, dup := arena[a.ID]; dup {
			continue
		}
		arena[a.ID] = &treeNode{activity: a}
		ids = append(ids, a.ID)
	}
	sortIDs(ids)

	roots := make([]int64, 0, 8)
	for _, id := range ids {
		n := arena[id]
		if pid := n.activity.ParentID; pid != nil && *pid != id {
			if parent, ok := arena[*pid]; ok {
				parent.children = append(parent.children, id)
				continue
			}
		}
		roots = append(roots, id)
	}

	visited := make(map[int64]struct{}, len(arena))
	var materialize func(id int64) models.ActivityNode
	materialize = func(id int64) models.ActivityNode {
		visited[id] = struct{}{}
		n := arena[id]
		out := models.ActivityNode{Activity: n.activity, Children: make([]models.ActivityNode, 0, len(n.children))}
		for _, c := range n.children {
			if _, seen := visited[c]; seen {
				continue
			}
			out.Children = append(out.Children, materialize(c))
		}
		return out
	}

	forest := make([]models.ActivityNode, 0, len(roots))
	for _, id := range roots {
		forest = append(forest, materialize(id))
	}

	// Rows on a parent cycle are unreachable from any root; surface them instead of dropping them.
	if len(visited) < len(arena) {
		for _, id := range ids {
			if _, seen := visited[id]; !seen {
				forest = append(forest, materialize(id))
			}
		}
		sort.Slice(forest, func(i, j int) bool { return forest[i].ID < forest[j].ID })
	}
	return forest
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
