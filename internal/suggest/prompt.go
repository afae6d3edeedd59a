package suggest

import "fmt"

func systemPrompt(cfg Config) string {
	return fmt.Sprintf(`You help a learner build %s vocabulary flashcards.
Given a %s term, reply with its most common meaning in %s and one short example sentence in %s that uses the term.
Keep the meaning under 60 characters. Do not add romanization, readings or commentary.`,
		cfg.SourceLanguage, cfg.SourceLanguage, cfg.MeaningLanguage, cfg.SourceLanguage)
}

func userMessage(term string) string {
	return fmt.Sprintf("Term: %s", term)
}
