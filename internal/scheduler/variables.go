package scheduler

import (
	"sort"
	"strconv"

	"github.com/shiftsync/timetable-api/internal/models"
	"github.com/shiftsync/timetable-api/internal/scheduler/cpsat"
)

// placement is one candidate (faculty, workload, room, day, start)
// tuple: a start variable together with everything the constraint
// compiler needs to know about it without re-deriving it from the
// underlying faculty/workload/room each time.
type placement struct {
	varID      cpsat.VarID
	facultyIdx int
	workloadID string
	roomID     string
	day        string
	start      int
	k          int // consecutive_hours, normalized to ≥ 1
	subject    string
	wType      models.WorkloadType
	targets    []string
}

// hours returns every hour this placement's block occupies.
func (p placement) hours() []int {
	out := make([]int, p.k)
	for i := 0; i < p.k; i++ {
		out[i] = p.start + i
	}
	return out
}

// variableSet is the sparse decision-variable space plus the indices the
// constraint compiler needs to emit C3–C6 without rescanning every
// placement per resource/day/hour triple.
type variableSet struct {
	model *cpsat.Model
	all   []placement

	// byRoomDayHour[room][day][hour] lists placements whose block covers
	// that hour in that room — the sliding window for C3.
	byRoomDayHour map[string]map[string]map[int][]int // -> index into all
	// byFacultyDayHour is the same shape for C4.
	byFacultyDayHour map[int]map[string]map[int][]int
	// byGroupDayHour is the same shape for C5, keyed by group name.
	byGroupDayHour map[string]map[string]map[int][]int
	// byWorkload groups placement indices by workload id, for C2.
	byWorkload map[string][]int
}

// buildVariables constructs every variable the start-time encoding
// permits: one per (faculty, workload, room, day, start) whose block
// fits entirely inside the active slots and whose room satisfies the
// workload's required tags. Shift, lunch, and blocked-slot masking is
// folded in here as variable-creation pruning, per the allowance in the
// design notes — a pruned variable and a variable fixed false by C1 are
// observationally identical to every later stage.
func buildVariables(p models.GenerationPayload) *variableSet {
	m := cpsat.NewModel()
	vs := &variableSet{
		model:            m,
		byRoomDayHour:    map[string]map[string]map[int][]int{},
		byFacultyDayHour: map[int]map[string]map[int][]int{},
		byGroupDayHour:   map[string]map[string]map[int][]int{},
		byWorkload:       map[string][]int{},
	}

	slots := sortedCopy(p.CollegeSettings.TimeSlots)
	starts := contiguousStarts(slots)

	for fi, f := range p.Faculty {
		for _, w := range f.Workload {
			k := w.ConsecutiveHours
			if k <= 0 {
				k = 1
			}
			for _, r := range p.RoomsConfig.Rooms {
				if !r.HasTags(w.RequiredTags) {
					continue
				}
				for _, d := range p.CollegeSettings.DaysActive {
					for _, s := range starts[k] {
						if blocked(f, p.CollegeSettings, d, s, k) {
							continue
						}
						name := w.ID + "/" + r.ID + "/" + d + "/" + strconv.Itoa(s)
						v := m.NewBoolVar(name)
						pl := placement{
							varID:      v,
							facultyIdx: fi,
							workloadID: w.ID,
							roomID:     r.ID,
							day:        d,
							start:      s,
							k:          k,
							subject:    w.Subject,
							wType:      w.Type,
							targets:    w.TargetGroups,
						}
						idx := len(vs.all)
						vs.all = append(vs.all, pl)
						vs.index(idx, pl)
					}
				}
			}
		}
	}

	return vs
}

// blocked reports whether any hour of the block [s, s+k) is forbidden
// for faculty f on day d by lunch, shift, or an explicit blocked slot —
// C1 applied at creation time.
func blocked(f models.Faculty, cs models.CollegeSettings, day string, s, k int) bool {
	for h := s; h < s+k; h++ {
		if cs.HasLunch() && h == cs.LunchSlot {
			return true
		}
		if !f.InShift(h) {
			return true
		}
		if f.IsBlocked(day, h) {
			return true
		}
	}
	return false
}

// contiguousStarts precomputes, for every block length k from 1 up to
// the number of active slots, the set of start slots whose [s, s+k) block lies entirely
// within consecutive entries of the (sorted) active slots — the
// variable builder's contiguity check from §4.2.
func contiguousStarts(slots []int) map[int][]int {
	starts := map[int][]int{}
	pos := make(map[int]int, len(slots))
	for i, s := range slots {
		pos[s] = i
	}
	maxK := len(slots)
	for k := 1; k <= maxK; k++ {
		var ok []int
		for i, s := range slots {
			if i+k > len(slots) {
				break
			}
			contiguous := true
			for j := 1; j < k; j++ {
				if slots[i+j] != slots[i+j-1]+1 {
					contiguous = false
					break
				}
			}
			if contiguous {
				ok = append(ok, s)
			}
		}
		starts[k] = ok
	}
	return starts
}

func (vs *variableSet) index(idx int, pl placement) {
	vs.byWorkload[pl.workloadID] = append(vs.byWorkload[pl.workloadID], idx)

	roomDay := mapGetDay(vs.byRoomDayHour, pl.roomID)
	dayMap := mapGet(roomDay, pl.day)

	facDay := mapGetInt(vs.byFacultyDayHour, pl.facultyIdx)
	facDayMap := mapGet(facDay, pl.day)

	for _, h := range pl.hours() {
		dayMap[h] = append(dayMap[h], idx)
		facDayMap[h] = append(facDayMap[h], idx)
	}

	for _, g := range pl.targets {
		groupDay := mapGetDay(vs.byGroupDayHour, g)
		gDayMap := mapGet(groupDay, pl.day)
		for _, h := range pl.hours() {
			gDayMap[h] = append(gDayMap[h], idx)
		}
	}
}

func mapGet(m map[string]map[int][]int, key string) map[int][]int {
	inner, ok := m[key]
	if !ok {
		inner = map[int][]int{}
		m[key] = inner
	}
	return inner
}

func mapGetDay(m map[string]map[string]map[int][]int, key string) map[string]map[int][]int {
	inner, ok := m[key]
	if !ok {
		inner = map[string]map[int][]int{}
		m[key] = inner
	}
	return inner
}

func mapGetInt(m map[int]map[string]map[int][]int, key int) map[string]map[int][]int {
	inner, ok := m[key]
	if !ok {
		inner = map[string]map[int][]int{}
		m[key] = inner
	}
	return inner
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}
