package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port            string
	SourcesFile     string
	WorkerCount     int
	FeedLimit       int
	RefreshInterval int
	BaseUrl         string
	VideoDir        string
	AudioDir        string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
