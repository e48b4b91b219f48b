// Package pagination holds the limit/offset contract shared by every listing operation.
package pagination

const (
	// DefaultLimit applies when a caller does not ask for a page size.
	DefaultLimit = 50
	// MaxLimit is the largest page the HTTP layer accepts.
	MaxLimit = 200
)

// Params is a limit/offset window over an ordered result.
type Params struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// New returns Params for the given window.
func New(limit, offset int) Params {
	return Params{Limit: limit, Offset: offset}
}

// Bounded clamps the window: a non-positive limit becomes DefaultLimit, a limit above max becomes max,
// and a negative offset becomes zero. max <= 0 means MaxLimit.
func (p Params) Bounded(max int) Params {
	if max <= 0 {
		max = MaxLimit
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Slice applies the window to an already-ordered in-memory result.
func Slice[T any](items []T, p Params) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
