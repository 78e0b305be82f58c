package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a simple resource identifier (product/customer/sale ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Qty parses a quantity query value, clamping to a sane window.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// DeliveryDate accepts YYYY-MM-DD and rejects dates in the past.
func DeliveryDate(s string, now time.Time) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	if d.Before(now.Truncate(24 * time.Hour)) {
		return "", false
	}
	return d.Format("2006-01-02"), true
}
