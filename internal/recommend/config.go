package recommend

// Config holds recommendation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults sized for five short feedback blocks.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}
