package relq

import "github.com/rs/zerolog"

// Options configures an Env at OpenEnv time.
type Options struct {
	// PageSize is the fixed size of every page in the data file.
	PageSize int

	// BufferPoolPages bounds how many pages the buffer pool keeps
	// resident at once.
	BufferPoolPages int

	// MaxTables bounds how many tables the catalog will track.
	MaxTables int

	// Logger receives structured log events from the storage file and
	// the buffer pool.
	// The zero value falls back to a disabled logger.
	Logger zerolog.Logger
}

// DefaultOptions returns the configuration a new Env uses when the
// caller doesn't need anything unusual.
func DefaultOptions() Options {
	return Options{
		PageSize:        DefaultPageSize,
		BufferPoolPages: 256,
		MaxTables:       MaxTables,
		Logger:          zerolog.Nop(),
	}
}
