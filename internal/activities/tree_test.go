package activities

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geo-directory/backend/internal/models"
)

func ptr(v int64) *int64 { return &v }

func act(id int64, parent *int64, depth int) models.Activity {
	return models.Activity{ID: id, Name: "a", ParentID: parent, Depth: depth}
}

func ids(nodes []models.ActivityNode) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildTree_Chain(t *testing.T) {
	tree := BuildTree([]models.Activity{
		act(1, nil, 1),
		act(2, ptr(1), 2),
		act(3, ptr(2), 3),
	})

	require.Len(t, tree, 1)
	require.Equal(t, int64(1), tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	require.Equal(t, int64(2), tree[0].Children[0].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	require.Equal(t, int64(3), tree[0].Children[0].Children[0].ID)
	require.Empty(t, tree[0].Children[0].Children[0].Children)
}

func TestBuildTree_TreatsMissingParentAsRoot(t *testing.T) {
	tree := BuildTree([]models.Activity{act(2, ptr(1), 2)})

	require.Len(t, tree, 1)
	require.Equal(t, int64(2), tree[0].ID)
	require.Equal(t, ptr(1), tree[0].ParentID)
}

func TestBuildTree_ChildrenBeforeParentsAndSortedByID(t *testing.T) {
	tree := BuildTree([]models.Activity{
		act(7, ptr(1), 2),
		act(5, ptr(4), 2),
		act(3, ptr(1), 2),
		act(4, nil, 1),
		act(1, nil, 1),
		act(9, ptr(3), 3),
	})

	require.Equal(t, []int64{1, 4}, ids(tree))
	require.Equal(t, []int64{3, 7}, ids(tree[0].Children))
	require.Equal(t, []int64{9}, ids(tree[0].Children[0].Children))
	require.Equal(t, []int64{5}, ids(tree[1].Children))
}

func TestBuildTree_EmptyInput(t *testing.T) {
	tree := BuildTree(nil)
	require.NotNil(t, tree)
	require.Empty(t, tree)
}

func TestBuildTree_TerminatesOnParentCycle(t *testing.T) {
	tree := BuildTree([]models.Activity{
		act(1, nil, 1),
		act(4, ptr(5), 2),
		act(5, ptr(4), 2),
		act(6, ptr(6), 1),
	})

	// 6 points at itself and becomes a root; 4 and 5 are unreachable and surface as one subtree.
	require.Equal(t, []int64{1, 4, 6}, ids(tree))
	require.Equal(t, []int64{5}, ids(tree[1].Children))
	require.Empty(t, tree[1].Children[0].Children)
}

func TestBuildTree_IgnoresDuplicateRows(t *testing.T) {
	tree := BuildTree([]models.Activity{act(1, nil, 1), act(1, nil, 1), act(2, ptr(1), 2)})
	require.Equal(t, []int64{1}, ids(tree))
	require.Equal(t, []int64{2}, ids(tree[0].Children))
}
