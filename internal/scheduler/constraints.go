package scheduler

import (
	"github.com/shiftsync/timetable-api/internal/models"
	"github.com/shiftsync/timetable-api/internal/scheduler/cpsat"
)

// compileConstraints emits C2 through C7 onto vs.model. C1 (the boundary
// lock) is already satisfied by construction: buildVariables never
// creates a variable whose block would violate it, which is the folding
// the component design explicitly permits.
func compileConstraints(p models.GenerationPayload, vs *variableSet) {
	compileWorkloadFulfillment(p, vs)
	compileRoomNonOverlap(vs)
	compileFacultyNonOverlap(vs)
	compileGroupNonOverlap(vs)
	compileParentChildExclusivity(p, vs)
	compileCustomRules(p, vs)
}

// compileWorkloadFulfillment is C2: for every workload, the number of
// realized events equals hours/consecutive_hours exactly.
func compileWorkloadFulfillment(p models.GenerationPayload, vs *variableSet) {
	for _, f := range p.Faculty {
		for _, w := range f.Workload {
			idxs := vs.byWorkload[w.ID]
			vars := make([]cpsat.VarID, len(idxs))
			for i, idx := range idxs {
				vars[i] = vs.all[idx].varID
			}
			vs.model.AddExactly(vars, w.Events())
		}
	}
}

// compileRoomNonOverlap is C3: at most one active block per (room, day,
// hour).
func compileRoomNonOverlap(vs *variableSet) {
	for _, dayMap := range vs.byRoomDayHour {
		for _, hourMap := range dayMap {
			for _, idxs := range hourMap {
				vs.model.AddAtMost(varsOf(vs, idxs), 1)
			}
		}
	}
}

// compileFacultyNonOverlap is C4: at most one active block per (faculty,
// day, hour).
func compileFacultyNonOverlap(vs *variableSet) {
	for _, dayMap := range vs.byFacultyDayHour {
		for _, hourMap := range dayMap {
			for _, idxs := range hourMap {
				vs.model.AddAtMost(varsOf(vs, idxs), 1)
			}
		}
	}
}

// compileGroupNonOverlap is C5: at most one active block per (group,
// day, hour), catching merged-class clashes through shared group
// membership.
func compileGroupNonOverlap(vs *variableSet) {
	for _, dayMap := range vs.byGroupDayHour {
		for _, hourMap := range dayMap {
			for _, idxs := range hourMap {
				vs.model.AddAtMost(varsOf(vs, idxs), 1)
			}
		}
	}
}

// compileParentChildExclusivity is C6: a parent group cannot hold a
// Theory session while any descendant holds a Practical or Tutorial
// session at the same (day, hour).
func compileParentChildExclusivity(p models.GenerationPayload, vs *variableSet) {
	hierarchy := newGroupHierarchy(allTargetGroups(p))
	pairs := hierarchy.parentPairs()
	if len(pairs) == 0 {
		return
	}

	for _, day := range p.CollegeSettings.DaysActive {
		for _, hour := range p.CollegeSettings.TimeSlots {
			for _, pair := range pairs {
				parent, child := pair[0], pair[1]

				var vars []cpsat.VarID
				for _, idx := range groupHourVars(vs.byGroupDayHour, parent, day, hour) {
					if vs.all[idx].wType == models.Theory {
						vars = append(vars, vs.all[idx].varID)
					}
				}
				for _, idx := range groupHourVars(vs.byGroupDayHour, child, day, hour) {
					t := vs.all[idx].wType
					if t == models.Practical || t == models.Tutorial {
						vars = append(vars, vs.all[idx].varID)
					}
				}
				if len(vars) > 1 {
					vs.model.AddAtMost(vars, 1)
				}
			}
		}
	}
}

// compileCustomRules is C7: RESTRICT_TIME, FORCE_PIN, and FORCE_ROOM.
func compileCustomRules(p models.GenerationPayload, vs *variableSet) {
	rules := parseRules(p.CollegeSettings.CustomRules)

	for _, rule := range rules.restrictTime {
		for i, pl := range vs.all {
			if pl.subject != rule.subject {
				continue
			}
			if _, ok := rule.allowed[pl.start]; !ok {
				vs.model.Fix(vs.all[i].varID, false)
			}
		}
	}

	for _, rule := range rules.forceRoom {
		for i, pl := range vs.all {
			if pl.subject != rule.subject {
				continue
			}
			if pl.roomID != rule.room {
				vs.model.Fix(vs.all[i].varID, false)
			}
		}
	}

	for _, rule := range rules.forcePin {
		var vars []cpsat.VarID
		for _, idx := range vs.byWorkload[rule.workloadID] {
			pl := vs.all[idx]
			if pl.roomID != rule.room || pl.day != rule.day {
				continue
			}
			if rule.start >= pl.start && rule.start < pl.start+pl.k {
				vars = append(vars, pl.varID)
			}
		}
		if len(vars) > 0 {
			vs.model.AddExactly(vars, 1)
		}
	}
}

func varsOf(vs *variableSet, idxs []int) []cpsat.VarID {
	vars := make([]cpsat.VarID, len(idxs))
	for i, idx := range idxs {
		vars[i] = vs.all[idx].varID
	}
	return vars
}

func groupHourVars(byGroupDayHour map[string]map[string]map[int][]int, group, day string, hour int) []int {
	dayMap, ok := byGroupDayHour[group]
	if !ok {
		return nil
	}
	hourMap, ok := dayMap[day]
	if !ok {
		return nil
	}
	return hourMap[hour]
}

func allTargetGroups(p models.GenerationPayload) []string {
	var out []string
	for _, f := range p.Faculty {
		for _, w := range f.Workload {
			out = append(out, w.TargetGroups...)
		}
	}
	return out
}
