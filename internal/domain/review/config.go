package review

// DefaultMaxRounds caps a session when a question keeps being missed.
const DefaultMaxRounds = 10

// Config holds the limits applied to review sessions.
type Config struct {
	MaxRounds int // 0 = no cap; otherwise the session completes after this round
}

// DefaultConfig returns a config with the default round cap.
func DefaultConfig() Config {
	return Config{
		MaxRounds: DefaultMaxRounds,
	}
}

func (c Config) capReached(round int) bool {
	return c.MaxRounds > 0 && round >= c.MaxRounds
}
