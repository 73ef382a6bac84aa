package entities

import "time"

// Project is one row of the projects sheet
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Tech         []string `json:"tech"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	MindscapeRef string   `json:"nodeId,omitempty"`
}

// CurrentStatus is one row of the current_status sheet
type CurrentStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	LearningNow string `json:"learningNow"`
	WorkingOn   string `json:"workingOn"`
	LastUpdated string `json:"lastUpdated"`
}

// LatestStatus picks the row with the newest lastUpdated. Rows that do not parse
// sort before everything, and ties go to the later row.
func LatestStatus(rows []CurrentStatus) (CurrentStatus, bool) {
	if len(rows) == 0 {
		return CurrentStatus{}, false
	}
	best := 0
	bestAt := parseStatusTime(rows[0].LastUpdated)
	for i := 1; i < len(rows); i++ {
		at := parseStatusTime(rows[i].LastUpdated)
		if !at.Before(bestAt) {
			best, bestAt = i, at
		}
	}
	return rows[best], true
}

func parseStatusTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
