package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port              string
	BaseUrl           string
	ProfilePath       string
	WorkerCount       int
	SchedulerInterval int
	AdminToken        string

	// Application metadata
	SiteTitle string
	Timezone  string
	Debug     bool
	Version   string
}
