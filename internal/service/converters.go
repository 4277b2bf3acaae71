package service

import (
	"github.com/shiftsync/timetable-api/internal/dto"
	"github.com/shiftsync/timetable-api/internal/models"
)

// toFacultyModels converts request-level faculty DTOs into domain
// models, shared by the generation and substitute-search services so
// the wire shape is translated exactly once.
func toFacultyModels(in []dto.FacultyRequest) []models.Faculty {
	faculty := make([]models.Faculty, len(in))
	for i, f := range in {
		blocked := make([]models.BlockedSlot, len(f.BlockedSlots))
		for j, b := range f.BlockedSlots {
			blocked[j] = models.BlockedSlot{Day: b.Day, Time: b.Time}
		}
		workload := make([]models.Workload, len(f.Workload))
		for j, w := range f.Workload {
			workload[j] = models.Workload{
				ID:               w.ID,
				Type:             models.WorkloadType(w.Type),
				Subject:          w.Subject,
				TargetGroups:     w.TargetGroups,
				Hours:            w.Hours,
				ConsecutiveHours: w.ConsecutiveHours,
				RequiredTags:     w.RequiredTags,
			}
		}
		faculty[i] = models.Faculty{
			ID:              f.ID,
			Name:            f.Name,
			Shift:           f.Shift,
			BlockedSlots:    blocked,
			MaxLoadHrs:      f.MaxLoadHrs,
			ClassTeacherFor: f.ClassTeacherFor,
			Workload:        workload,
		}
	}
	return faculty
}

func toScheduleResults(entries []models.ScheduleEntry) []dto.ScheduleEntryResult {
	out := make([]dto.ScheduleEntryResult, len(entries))
	for i, e := range entries {
		out[i] = dto.ScheduleEntryResult{
			WorkloadID:  e.WorkloadID,
			FacultyID:   e.FacultyID,
			FacultyName: e.FacultyName,
			Subject:     e.Subject,
			Targets:     e.Targets,
			Type:        string(e.Type),
			Room:        e.Room,
			Day:         e.Day,
			TimeSlot:    e.TimeSlot,
		}
	}
	return out
}

// toScheduleEntryModels converts a caller-supplied schedule snapshot
// (substitute-search's free-slot check) back into domain models.
func toScheduleEntryModels(in []dto.ScheduleEntryResult) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(in))
	for i, e := range in {
		out[i] = models.ScheduleEntry{
			WorkloadID:  e.WorkloadID,
			FacultyID:   e.FacultyID,
			FacultyName: e.FacultyName,
			Subject:     e.Subject,
			Targets:     e.Targets,
			Type:        models.WorkloadType(e.Type),
			Room:        e.Room,
			Day:         e.Day,
			TimeSlot:    e.TimeSlot,
		}
	}
	return out
}
