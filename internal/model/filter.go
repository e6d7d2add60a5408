package model

import (
	"strconv"
	"time"
)

// Filter selects records from the data view. A nil field means no filter on
// that dimension. Date bounds are inclusive.
type Filter struct {
	ScenarioID *int64
	Start      *time.Time
	End        *time.Time
}

// ForScenario returns a filter on the scenario only.
func ForScenario(id *int64) Filter {
	return Filter{ScenarioID: id}
}

// ScenarioRef returns a pointer to id, for building filters inline.
func ScenarioRef(id int64) *int64 {
	return &id
}

// Includes reports whether a record dated date in scenario scenarioID
// passes the filter.
func (f Filter) Includes(date time.Time, scenarioID *int64) bool {
	if !f.IncludesScenario(scenarioID) {
		return false
	}
	day := CalendarDate(date)
	if f.Start != nil && day.Before(CalendarDate(*f.Start)) {
		return false
	}
	if f.End != nil && day.After(CalendarDate(*f.End)) {
		return false
	}
	return true
}

// IncludesScenario applies only the scenario dimension.
func (f Filter) IncludesScenario(scenarioID *int64) bool {
	if f.ScenarioID == nil {
		return true
	}
	return scenarioID != nil && *scenarioID == *f.ScenarioID
}

// ScenarioLabel renders the scenario for logs and metric labels.
func (f Filter) ScenarioLabel() string {
	return ScenarioLabel(f.ScenarioID)
}

// ScenarioLabel renders an optional scenario ID; nil is "all".
func ScenarioLabel(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}
