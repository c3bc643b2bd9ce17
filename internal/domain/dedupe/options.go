package dedupe

// defaultMaxSize bounds both the deduper and the memo unless overridden.
const defaultMaxSize = 50000

type settings struct {
	maxSize int
}

func newSettings(opts []Option) settings {
	s := settings{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option applies a configuration option to a Deduper or a Memo.
type Option func(*settings)

// WithMaxSize sets the maximum number of keys kept in memory.
// If maxSize > 0 the oldest key is evicted first once the bound is reached.
// If maxSize <= 0 nothing is ever evicted.
func WithMaxSize(maxSize int) Option {
	return func(s *settings) {
		s.maxSize = maxSize
	}
}
