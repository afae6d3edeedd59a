package suggest

// Config controls the behavior of the Suggester.
type Config struct {
	// SourceLanguage is the language of the terms being studied.
	SourceLanguage string

	// MeaningLanguage is the language meanings and notes are written in.
	MeaningLanguage string

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config for Japanese terms with English meanings.
func DefaultConfig() Config {
	return Config{
		SourceLanguage:  "Japanese",
		MeaningLanguage: "English",
		MaxTokens:       256,
		Temperature:     0.2,
	}
}
