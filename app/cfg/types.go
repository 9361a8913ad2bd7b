package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port              string
	SourceFile        string
	DataDir           string
	WorkerCount       int
	ListingPages      int
	FetchTimeout      int
	SchedulerInterval int
	EnrichURL         string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
