package quiz

import (
	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/random"
)

// Generate builds count questions from pool. Cards are drawn without
// replacement, each direction decided by a fair coin. Distractors are taken
// from the other cards in random order, skipping any whose answer-side value
// repeats the correct answer or an earlier distractor.
func Generate(src random.Source, pool []cards.Card, count int) ([]Question, error) {
	if len(pool) < MinPool {
		return nil, ErrInsufficientPool
	}
	if count < 1 || count > len(pool) {
		return nil, ErrInvalidQuestionCount
	}

	drawn := random.Sample(src, len(pool), count)
	questions := make([]Question, 0, count)
	for _, i := range drawn {
		q, err := buildQuestion(src, pool, i)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func buildQuestion(src random.Source, pool []cards.Card, at int) (Question, error) {
	card := pool[at]
	forward := src.Coin()

	q := Question{CardID: card.ID, PromptIsSourceLanguage: forward}
	answerOf := func(c cards.Card) string { return c.Term }
	if forward {
		q.Prompt = card.Term
		answerOf = func(c cards.Card) string { return c.Meaning }
	} else {
		q.Prompt = card.Meaning
	}
	q.CorrectAnswer = answerOf(card)

	const want = OptionsPerQuestion - 1
	seen := map[string]bool{q.CorrectAnswer: true}
	distractors := make([]string, 0, want)
	for _, j := range random.Permute(src, len(pool)) {
		if j == at {
			continue
		}
		v := answerOf(pool[j])
		if seen[v] {
			continue
		}
		seen[v] = true
		distractors = append(distractors, v)
		if len(distractors) == want {
			break
		}
	}
	if len(distractors) < want {
		return Question{}, ErrInsufficientDistractors
	}

	opts := append(distractors, q.CorrectAnswer)
	for i, j := range random.Permute(src, len(opts)) {
		q.Options[i] = opts[j]
	}
	return q, nil
}
