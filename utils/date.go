package utils

import (
	"fmt"
	"time"
)

// ReportingTZ is the fixed civil time zone all reporting dates and deadlines
// are defined in. Workers and servers may run in other zones; callers convert
// before handing dates to the core.
var ReportingTZ = time.FixedZone("IST", 5*3600+30*60)

func ReportingNow() time.Time {
	return time.Now().In(ReportingTZ)
}

// ReportingDate truncates an instant to its civil date in the reporting zone.
func ReportingDate(t time.Time) time.Time {
	t = t.In(ReportingTZ)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ReportingTZ)
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, ReportingTZ)
	return t
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats, assumed to be reporting-zone local already
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, ReportingTZ); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
