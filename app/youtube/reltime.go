package youtube

import (
	"strconv"
	"strings"
	"time"
)

const (
	day = 24 * time.Hour
	// Calendar approximations: a month counts as 30 days, a year as 365.
	month = 30 * day
	year  = 365 * day
)

// ResolveRelativeTime converts publish-time phrases of the shape
// "<prefix> <amount> <unit>" (for example "há 5 minutos") into an absolute
// timestamp relative to now. It returns nil when the text does not have that
// shape, the amount is not an integer, or the unit stem is unknown; callers
// treat that as an absent publish time, not an error.
func ResolveRelativeTime(text string, now time.Time) *time.Time {
	tokens := strings.Fields(text)
	if len(tokens) < 3 {
		return nil
	}

	amount, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return nil
	}

	// Unit stems as they appear on pt-BR pages.
	var unit time.Duration
	switch stem := tokens[2]; {
	case strings.HasPrefix(stem, "segundo"):
		unit = time.Second
	case strings.HasPrefix(stem, "minuto"):
		unit = time.Minute
	case strings.HasPrefix(stem, "hora"):
		unit = time.Hour
	case strings.HasPrefix(stem, "dia"):
		unit = day
	case stem == "mês" || stem == "meses":
		unit = month
	case strings.HasPrefix(stem, "ano"):
		unit = year
	default:
		return nil
	}

	t := now.Add(-time.Duration(amount) * unit)
	return &t
}
