package activity

// DayActivity is one cell of the contribution grid.
type DayActivity struct {
	Date  string   `json:"date"`
	Count int      `json:"count"`
	Types []string `json:"types"`
}

// Stats is the materialized activity overview. Tasks counts both timeline
// events of type "task" and actual task rows, without deduplication; the
// scalar counters run over the whole collections while RecentActivity is
// windowed to the last 365 days.
type Stats struct {
	TotalEvents    int           `json:"totalEvents"`
	Projects       int           `json:"projects"`
	Achievements   int           `json:"achievements"`
	Contributions  int           `json:"contributions"`
	Commits        int           `json:"commits"`
	Tasks          int           `json:"tasks"`
	Schedules      int           `json:"schedules"`
	RecentActivity []DayActivity `json:"recentActivity"`
}
