package tabular

import (
	"fmt"
	"strings"
	"time"

	"planner/internal/core"
)

// dateLayouts are the date encodings accepted on read. Writes always use
// core.DateLayout.
var dateLayouts = []string{
	core.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

func parseDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t), nil
		}
	}
	return core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
}
