package options

const (
	// DefaultDataDir is the directory the store uses when none is configured.
	DefaultDataDir = "/var/lib/kvs"

	// DefaultAddr is the network address the server binds and the client
	// connects to when none is configured.
	DefaultAddr = "127.0.0.1:4000"

	// DefaultEngine selects the native log-structured engine over the
	// embedded third-party alternative.
	DefaultEngine = "kvs"

	// DefaultCompactionThreshold is the number of dead bytes accumulated
	// since the last compaction that triggers the next one, per spec §4.1.
	DefaultCompactionThreshold uint64 = 4 * 1024

	// DefaultThreadPoolKind selects the bounded, panic-safe worker pool.
	DefaultThreadPoolKind = "shared-queue"
)

// defaultOptions holds the baseline configuration for a new store.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	Addr:                DefaultAddr,
	Engine:              DefaultEngine,
	CompactionThreshold: DefaultCompactionThreshold,
	ThreadPoolKind:      DefaultThreadPoolKind,
	ThreadPoolSize:      0, // 0 means "let the pool decide", see NewDefaultOptions.
}

// NewDefaultOptions returns a copy of the baseline configuration, with
// ThreadPoolSize resolved to the number of logical CPUs.
func NewDefaultOptions() Options {
	opts := defaultOptions
	opts.ThreadPoolSize = defaultThreadPoolSize()
	return opts
}
