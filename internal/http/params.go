package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
)

// pathID parses the :id parameter. Ids that cannot exist are reported as missing.
func pathID(c *gin.Context, notFound error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// idValue accepts a JSON number or a numeric string; the web client posts select values as strings.
type idValue int64

func (v *idValue) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*v = idValue(n)
	return nil
}

// parseDueDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only the calendar date.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}
	if d, err := time.Parse(domain.DateLayout, s); err == nil {
		return &d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		d := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, domain.Validation("due_date must be a date in YYYY-MM-DD format")
}
