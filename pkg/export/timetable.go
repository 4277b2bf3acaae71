package export

import (
	"fmt"
	"sort"

	"github.com/shiftsync/timetable-api/internal/models"
)

// Dataset is the tabular shape both exporters render: an ordered header
// row plus one map per body row, keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

type dayHour struct {
	day  string
	hour int
}

// TimetableDataset projects a flat schedule into a printable weekly
// grid: one row per (day, hour), one column per room, cell contents the
// subject and faculty occupying that room at that time.
func TimetableDataset(schedule []models.ScheduleEntry) Dataset {
	rooms := make(map[string]struct{})
	cells := make(map[dayHour]map[string]string)

	for _, e := range schedule {
		rooms[e.Room] = struct{}{}
		key := dayHour{day: e.Day, hour: e.TimeSlot}
		if cells[key] == nil {
			cells[key] = map[string]string{}
		}
		cells[key][e.Room] = fmt.Sprintf("%s (%s)", e.Subject, e.FacultyName)
	}

	roomList := make([]string, 0, len(rooms))
	for r := range rooms {
		roomList = append(roomList, r)
	}
	sort.Strings(roomList)

	headers := append([]string{"Day", "Hour"}, roomList...)

	keys := make([]dayHour, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].hour < keys[j].hour
	})

	rows := make([]map[string]string, 0, len(keys))
	for _, k := range keys {
		row := map[string]string{"Day": k.day, "Hour": fmt.Sprintf("%d", k.hour)}
		for room, text := range cells[k] {
			row[room] = text
		}
		rows = append(rows, row)
	}

	return Dataset{Headers: headers, Rows: rows}
}
