package catalog

import (
	"strings"
	"time"
)

type Season int

const (
	SeasonNone Season = iota
	Kharif
	Rabi
	Zaid
	Perennial
)

var seasonLabels = map[Season]string{
	Kharif:    "Kharif (Monsoon)",
	Rabi:      "Rabi (Winter)",
	Zaid:      "Zaid (Summer)",
	Perennial: "Perennial (All Year)",
}

// seasonByMonth is the single source of truth for sowing-month buckets:
// Jun-Oct Kharif, Nov-Mar Rabi, Apr-May Zaid. Index 0 is unused.
var seasonByMonth = [13]Season{
	time.January:   Rabi,
	time.February:  Rabi,
	time.March:     Rabi,
	time.April:     Zaid,
	time.May:       Zaid,
	time.June:      Kharif,
	time.July:      Kharif,
	time.August:    Kharif,
	time.September: Kharif,
	time.October:   Kharif,
	time.November:  Rabi,
	time.December:  Rabi,
}

func SeasonForMonth(m time.Month) Season {
	if m < time.January || m > time.December {
		return SeasonNone
	}
	return seasonByMonth[m]
}

// SeasonForDate infers the season from a sowing date; the zero date has none.
func SeasonForDate(d time.Time) Season {
	if d.IsZero() {
		return SeasonNone
	}
	return SeasonForMonth(d.Month())
}

func (s Season) String() string { return seasonLabels[s] }

// ParseSeason accepts either the full label or the short name ("Kharif").
func ParseSeason(v string) Season {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return SeasonNone
	}
	for s, label := range seasonLabels {
		l := strings.ToLower(label)
		if v == l || strings.HasPrefix(l, v+" ") {
			return s
		}
	}
	return SeasonNone
}
