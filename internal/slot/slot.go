// Package slot defines the fixed catalog of daily reservation slots.  The
// restaurant day has exactly seven 90-minute slots separated by 15-minute
// gaps; slot identity is purely by name.  The catalog is process-wide
// read-only data: it is built once at init and never mutated.
package slot

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is one bookable window of the day.  Start and End are local times of
// day in HH:mm; StartMin and EndMin are the same boundaries as minutes since
// midnight for arithmetic.
type Slot struct {
	Name     string
	Index    int
	Start    string
	End      string
	StartMin int
	EndMin   int
}

var catalog = buildCatalog([][2]string{
	{"10:30", "12:00"},
	{"12:15", "13:45"},
	{"14:00", "15:30"},
	{"15:45", "17:15"},
	{"17:30", "19:00"},
	{"19:15", "20:45"},
	{"21:00", "22:30"},
})

var (
	byName  = map[string]Slot{}
	byStart = map[string]Slot{}
	byEnd   = map[string]Slot{}
)

func init() {
	for _, s := range catalog {
		byName[s.Name] = s
		byStart[s.Start] = s
		byEnd[s.End] = s
	}
}

func buildCatalog(windows [][2]string) []Slot {
	slots := make([]Slot, 0, len(windows))
	for i, w := range windows {
		slots = append(slots, Slot{
			Name:     "slot" + strconv.Itoa(i+1),
			Index:    i + 1,
			Start:    w[0],
			End:      w[1],
			StartMin: mustMinutes(w[0]),
			EndMin:   mustMinutes(w[1]),
		})
	}
	return slots
}

func mustMinutes(hhmm string) int {
	m, ok := Minutes(hhmm)
	if !ok {
		panic(fmt.Sprintf("slot: bad catalog time %q", hhmm))
	}
	return m
}

// Minutes parses an HH:mm time of day into minutes since midnight.
func Minutes(hhmm string) (int, bool) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// All returns the seven slots in slot1..slot7 order.  The returned slice is
// shared; callers must not modify it.
func All() []Slot { return catalog }

// Count is the number of slots per day.
const Count = 7

// ByName looks up a slot by its name (e.g. "slot3").
func ByName(name string) (Slot, bool) {
	s, ok := byName[name]
	return s, ok
}

// ByIndex looks up a slot by its 1-based index.
func ByIndex(i int) (Slot, bool) {
	if i < 1 || i > len(catalog) {
		return Slot{}, false
	}
	return catalog[i-1], true
}

// ByStart looks up the slot whose window starts exactly at the given HH:mm.
func ByStart(hhmm string) (Slot, bool) {
	s, ok := byStart[hhmm]
	return s, ok
}

// ByEnd looks up the slot whose window ends exactly at the given HH:mm.
func ByEnd(hhmm string) (Slot, bool) {
	s, ok := byEnd[hhmm]
	return s, ok
}

// IsBoundary reports whether the given HH:mm is the start or end of some
// slot.  Booking requests must supply boundary times only.
func IsBoundary(hhmm string) bool {
	if _, ok := byStart[hhmm]; ok {
		return true
	}
	_, ok := byEnd[hhmm]
	return ok
}

// Range resolves a start boundary and an end boundary to the inclusive slot
// range they span.  The start must be some slot's start time and the end some
// slot's end time; they need not belong to the same slot.  ok is false when
// either time does not match.
func Range(start, end string) (from, to Slot, ok bool) {
	from, okFrom := byStart[start]
	to, okTo := byEnd[end]
	return from, to, okFrom && okTo
}

// Window formats the slot's boundaries as "HH:mm - HH:mm" for display.
func (s Slot) Window() string { return s.Start + " - " + s.End }

// Contains reports whether the given minute of the day falls inside the slot
// window, boundaries included.
func (s Slot) Contains(minuteOfDay int) bool {
	return minuteOfDay >= s.StartMin && minuteOfDay <= s.EndMin
}

// EndedBefore reports whether the slot's window has fully elapsed at the
// given minute of the day.
func (s Slot) EndedBefore(minuteOfDay int) bool {
	return s.EndMin < minuteOfDay
}
