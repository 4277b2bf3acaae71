package scheduler

import (
	"strconv"
	"strings"

	"github.com/shiftsync/timetable-api/internal/models"
)

// restrictTimeRule pins a subject to a fixed set of allowed start hours.
type restrictTimeRule struct {
	subject string
	allowed map[int]struct{}
}

// forcePinRule pins a single workload to an exact (room, day, start).
type forcePinRule struct {
	workloadID string
	room       string
	day        string
	start      int
}

// forceRoomRule restricts every variable for a matching workload to a
// single room, the natural dual of restrictTimeRule.
type forceRoomRule struct {
	subject string
	room    string
}

// parsedRules is the typed variant the design notes call for: every
// CustomRule is parsed once here, so the constraint compiler dispatches
// on type instead of re-parsing action_value per variable.
type parsedRules struct {
	restrictTime []restrictTimeRule
	forcePin     []forcePinRule
	forceRoom    []forceRoomRule
}

// parseRules converts the raw, duck-typed CustomRule slice into
// parsedRules. Malformed entries — wrong shape, unparseable hour, an
// unrecognized action_type — are silently skipped, matching the source
// behavior for FORCE_PIN and extended to the other action kinds for
// consistency.
func parseRules(rules []models.CustomRule) parsedRules {
	var out parsedRules
	for _, r := range rules {
		switch r.ActionType {
		case models.ActionRestrictTime:
			if r.ConditionField != "subject" {
				continue
			}
			if allowed, ok := parseAllowedHours(r.ActionValue); ok {
				out.restrictTime = append(out.restrictTime, restrictTimeRule{
					subject: r.ConditionValue,
					allowed: allowed,
				})
			}
		case models.ActionForcePin:
			if pin, ok := parseForcePin(r); ok {
				out.forcePin = append(out.forcePin, pin)
			}
		case models.ActionForceRoom:
			if room, ok := r.ActionValue.(string); ok && room != "" {
				out.forceRoom = append(out.forceRoom, forceRoomRule{
					subject: r.ConditionValue,
					room:    room,
				})
			}
		}
	}
	return out
}

// parseAllowedHours accepts a JSON-decoded action_value of either
// []interface{} (strings like "09:00") or []string, and returns the set
// of allowed integer hours.
func parseAllowedHours(v any) (map[int]struct{}, bool) {
	var raw []string
	switch t := v.(type) {
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			raw = append(raw, s)
		}
	default:
		return nil, false
	}

	allowed := make(map[int]struct{}, len(raw))
	for _, s := range raw {
		h, ok := parseHourLabel(s)
		if !ok {
			return nil, false
		}
		allowed[h] = struct{}{}
	}
	if len(allowed) == 0 {
		return nil, false
	}
	return allowed, true
}

// parseHourLabel parses an hour given either as a bare integer ("9") or
// as an "HH:MM" label ("09:00"), returning the hour component.
func parseHourLabel(s string) (int, bool) {
	if hourPart, _, found := strings.Cut(s, ":"); found {
		n, err := strconv.Atoi(hourPart)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseForcePin parses a FORCE_PIN rule's pipe-delimited action_value
// "room|day|start" together with its condition_value workload id.
func parseForcePin(r models.CustomRule) (forcePinRule, bool) {
	s, ok := r.ActionValue.(string)
	if !ok {
		return forcePinRule{}, false
	}
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return forcePinRule{}, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return forcePinRule{}, false
	}
	return forcePinRule{
		workloadID: r.ConditionValue,
		room:       strings.TrimSpace(parts[0]),
		day:        strings.TrimSpace(parts[1]),
		start:      start,
	}, true
}
