package service

import (
	"github.com/shiftsync/timetable-api/internal/dto"
)

// SubstituteService answers "who can cover this slot" queries. It is
// explicitly not part of the constraint-solving core: it only filters
// the faculty roster already supplied in the request body.
type SubstituteService struct{}

// NewSubstituteService constructs the (stateless) substitute-search
// service.
func NewSubstituteService() *SubstituteService {
	return &SubstituteService{}
}

// Search filters faculty to those whose shift contains timeIndex and
// who have no existing schedule record occupying (day, timeIndex) in
// the caller-supplied schedule snapshot — the free-slot check the
// source left as a stub.
func (s *SubstituteService) Search(req dto.SubstituteSearchRequest, day string, timeIndex int) []dto.SubstituteCandidate {
	faculty := toFacultyModels(req.Faculty)
	schedule := toScheduleEntryModels(req.Schedule)

	occupied := make(map[string]struct{}, len(schedule))
	for _, e := range schedule {
		if e.Day == day && e.TimeSlot == timeIndex {
			occupied[e.FacultyID] = struct{}{}
		}
	}

	var out []dto.SubstituteCandidate
	for _, f := range faculty {
		if !f.InShift(timeIndex) {
			continue
		}
		if _, busy := occupied[f.ID]; busy {
			continue
		}
		out = append(out, dto.SubstituteCandidate{
			ID:          f.ID,
			Name:        f.Name,
			CurrentLoad: f.TotalLoad(),
			Status:      "available",
		})
	}
	return out
}
