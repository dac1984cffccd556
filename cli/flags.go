package cli

var (
	verbose bool

	// for server commands
	listenAddr  string
	enableCORS  bool
	isDaemon    bool
	requireAuth bool
	deleteToken bool
)
