package scheduler

import (
	"sort"

	"github.com/shiftsync/timetable-api/internal/models"
	"github.com/shiftsync/timetable-api/internal/scheduler/cpsat"
)

// extractSchedule expands every start variable the solver set true into
// its per-hour occupancy records, per §4.5. Ordering is deterministic
// (by workload, then room, then day, then start) given a fixed solver
// seed, matching the idempotence property the spec requires of repeated
// calls with identical input.
func extractSchedule(p models.GenerationPayload, vs *variableSet, sol cpsat.Solution) []models.ScheduleEntry {
	facultyByIdx := make([]models.Faculty, len(p.Faculty))
	copy(facultyByIdx, p.Faculty)

	var active []placement
	for _, pl := range vs.all {
		if sol.Value(pl.varID) {
			active = append(active, pl)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.workloadID != b.workloadID {
			return a.workloadID < b.workloadID
		}
		if a.roomID != b.roomID {
			return a.roomID < b.roomID
		}
		if a.day != b.day {
			return a.day < b.day
		}
		return a.start < b.start
	})

	var out []models.ScheduleEntry
	for _, pl := range active {
		f := facultyByIdx[pl.facultyIdx]
		for _, h := range pl.hours() {
			out = append(out, models.ScheduleEntry{
				WorkloadID:  pl.workloadID,
				FacultyID:   f.ID,
				FacultyName: f.Name,
				Subject:     pl.subject,
				Targets:     pl.targets,
				Type:        pl.wType,
				Room:        pl.roomID,
				Day:         pl.day,
				TimeSlot:    h,
			})
		}
	}
	return out
}
