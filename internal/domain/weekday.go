package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the closed set of canonical weekday values used by the
// schedule. All schedule logic operates on this enum; free-form day names
// only exist at the system boundary, where ParseWeekday normalizes them.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "lunes",
	Tuesday:   "martes",
	Wednesday: "miercoles",
	Thursday:  "jueves",
	Friday:    "viernes",
	Saturday:  "sabado",
	Sunday:    "domingo",
}

// String returns the canonical (lowercase, diacritic-free) Spanish name.
func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("weekday(%d)", int(w))
}

// diacriticReplacer strips the accented vowels that appear in Spanish day
// names. Day names reach the system from browsers, admin forms and the
// external calendar with inconsistent encodings; every membership test must
// go through this one normalization.
var diacriticReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
)

// CanonicalDayName lowercases a day name and strips diacritics.
func CanonicalDayName(name string) string {
	return diacriticReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

var weekdayByName = map[string]Weekday{
	"lunes":     Monday,
	"martes":    Tuesday,
	"miercoles": Wednesday,
	"jueves":    Thursday,
	"viernes":   Friday,
	"sabado":    Saturday,
	"domingo":   Sunday,
	// English variants accepted at the boundary.
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseWeekday converts a locale day name ("Miércoles", "miercoles",
// "SÁBADO", ...) into its canonical Weekday value.
func ParseWeekday(name string) (Weekday, error) {
	if w, ok := weekdayByName[CanonicalDayName(name)]; ok {
		return w, nil
	}
	return 0, fmt.Errorf("unknown weekday name %q", name)
}

// WeekdayFromTime maps time.Weekday onto the schedule enum.
func WeekdayFromTime(w time.Weekday) Weekday {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}
