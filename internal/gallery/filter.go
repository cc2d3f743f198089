package gallery

import (
	"strings"

	"github.com/zhubert/cardtray/internal/tray"
)

// Matches reports whether name contains query, ignoring case. An empty
// query matches everything.
func Matches(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// FilterController hides source tiles whose name does not match the query.
type FilterController struct {
	manager *tray.Manager
	query   string
}

// NewFilterController creates a filter that refreshes manager's count after
// every application.
func NewFilterController(manager *tray.Manager) *FilterController {
	return &FilterController{manager: manager}
}

// Query returns the last applied query.
func (f *FilterController) Query() string {
	return f.query
}

// Apply sets the visibility of every tile and returns how many stay visible.
// Tray contents are not affected.
func (f *FilterController) Apply(query string, tiles []*tray.Tile) int {
	f.query = query
	lower := strings.ToLower(query)

	visible := 0
	for _, t := range tiles {
		t.Hidden = !strings.Contains(strings.ToLower(t.Item.DisplayName), lower)
		if !t.Hidden {
			visible++
		}
	}

	if f.manager != nil {
		f.manager.Refresh()
	}
	return visible
}
