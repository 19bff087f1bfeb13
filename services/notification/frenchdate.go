package notification

import (
	"fmt"
	"time"
)

// time.Format has no locale tables, so the French names live here.
var frenchWeekdays = [7]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatFrenchDate renders t like "lundi 2 mars 2026", the way the
// confirmation emails present appointment dates.
func FormatFrenchDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		frenchWeekdays[t.Weekday()],
		t.Day(),
		frenchMonths[t.Month()-1],
		t.Year(),
	)
}
