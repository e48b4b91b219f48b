package models

// MaxActivityDepth is the deepest level of the activity classification.
const MaxActivityDepth = 3

// Activity is a node of the activity classification tree.
type Activity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
	Depth    int    `json:"depth"`
}

// ActivityNode is an Activity with its children, built in memory for tree responses.
type ActivityNode struct {
	Activity
	Children []ActivityNode `json:"children"`
}
