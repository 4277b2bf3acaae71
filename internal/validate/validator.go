// Package validate runs the cheap, purely arithmetic pre-solve
// feasibility checks described in spec.md §4.1. It rejects obviously
// impossible inputs before a Model is ever built, so the solver's
// wall-clock budget is never spent on inputs that cannot possibly work.
package validate

import (
	"fmt"

	"github.com/shiftsync/timetable-api/internal/models"
)

// Result carries the validator's verdict. A non-empty Errors list means
// the payload must not be handed to the scheduler.
type Result struct {
	Errors []string
}

// OK reports whether the payload passed every check.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Payload runs all four checks from spec.md §4.1 against the full input.
func Payload(p models.GenerationPayload) Result {
	var errs []string

	errs = append(errs, contractAndTemporal(p)...)
	errs = append(errs, tagCoverage(p)...)
	errs = append(errs, globalPigeonhole(p)...)
	errs = append(errs, divisibility(p)...)

	return Result{Errors: errs}
}

// contractAndTemporal implements checks 1 and 2: per-faculty workload
// sum must not exceed max_load_hrs, and max_load_hrs must itself be
// achievable given the faculty's shift, lunch, and blocked slots.
func contractAndTemporal(p models.GenerationPayload) []string {
	var errs []string
	days := len(p.CollegeSettings.DaysActive)

	for _, f := range p.Faculty {
		load := f.TotalLoad()
		if load > f.MaxLoadHrs {
			errs = append(errs, fmt.Sprintf(
				"faculty %s (%s): workload totals %d hours but max_load_hrs is %d",
				f.Name, f.ID, load, f.MaxLoadHrs))
		}

		shiftSize := len(f.Shift)
		if f.HasLunch(p.CollegeSettings.LunchSlot) {
			shiftSize--
		}
		maxPossible := shiftSize*days - blockedWithinShift(f, p.CollegeSettings.DaysActive)
		if f.MaxLoadHrs > maxPossible {
			errs = append(errs, fmt.Sprintf(
				"faculty %s (%s): max_load_hrs %d exceeds the %d hours their shift can physically provide across %d days",
				f.Name, f.ID, f.MaxLoadHrs, maxPossible, days))
		}
	}

	return errs
}

// blockedWithinShift counts only the blocked slots that actually erode a
// faculty member's capacity: those on an active day and inside their
// shift. A blocked slot on a day off, or at an hour they never work
// anyway, costs nothing against max_load_hrs.
func blockedWithinShift(f models.Faculty, daysActive []string) int {
	active := make(map[string]struct{}, len(daysActive))
	for _, d := range daysActive {
		active[d] = struct{}{}
	}

	n := 0
	for _, b := range f.BlockedSlots {
		if _, ok := active[b.Day]; !ok {
			continue
		}
		if !f.InShift(b.Time) {
			continue
		}
		n++
	}
	return n
}

// tagCoverage implements check 3: every required tag on every workload
// must be carried by at least one room in the inventory.
func tagCoverage(p models.GenerationPayload) []string {
	var errs []string

	available := make(map[string]struct{})
	for _, r := range p.RoomsConfig.Rooms {
		for _, t := range r.Tags {
			available[t] = struct{}{}
		}
	}

	for _, f := range p.Faculty {
		for _, w := range f.Workload {
			for _, tag := range w.RequiredTags {
				if _, ok := available[tag]; !ok {
					errs = append(errs, fmt.Sprintf(
						"workload %s (%s): required tag %q is not carried by any room in the inventory",
						w.Subject, w.ID, tag))
				}
			}
		}
	}

	return errs
}

// globalPigeonhole implements check 4: the sum of all requested hours
// cannot exceed the total room-hours the inventory can offer in a week.
func globalPigeonhole(p models.GenerationPayload) []string {
	days := len(p.CollegeSettings.DaysActive)
	slotsPerDay := len(p.CollegeSettings.TimeSlots)
	if p.CollegeSettings.HasLunch() {
		slotsPerDay--
	}
	capacity := len(p.RoomsConfig.Rooms) * slotsPerDay * days

	total := 0
	for _, f := range p.Faculty {
		total += f.TotalLoad()
	}

	if total > capacity {
		return []string{fmt.Sprintf(
			"total requested hours %d exceed the %d room-hours the inventory can provide across %d days",
			total, capacity, days)}
	}
	return nil
}

// divisibility is the reference behavior from spec.md §9: hours not
// evenly divisible by consecutive_hours is rejected outright rather than
// rounded, since the start-time encoding cannot satisfy C2 exactly for
// such a workload.
func divisibility(p models.GenerationPayload) []string {
	var errs []string
	for _, f := range p.Faculty {
		for _, w := range f.Workload {
			k := w.ConsecutiveHours
			if k <= 0 {
				k = 1
			}
			if w.Hours%k != 0 {
				errs = append(errs, fmt.Sprintf(
					"workload %s (%s): hours %d is not divisible by consecutive_hours %d",
					w.Subject, w.ID, w.Hours, k))
			}
		}
	}
	return errs
}
