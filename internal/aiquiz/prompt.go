package aiquiz

import "fmt"

const (
	defaultCount = 3
	maxCount     = 10
)

const systemPrompt = `
You generate multiple-choice questions for a classroom quiz app.

Rules:
1. Only generate questions about study subjects (math, physics, chemistry, biology, history, geography, literature, languages, etc.).
2. Every question has exactly one correct answer.
3. Difficulty is one of: easy, medium, hard.
4. Every question has:
   - "question": the statement
   - "options": 4 plausible options, including the correct one
   - "correct_answer": the letter of the correct option
   - "explanation": a short explanation of why it is correct

Expected JSON:

[
  {
    "topic": "<topic>",
    "difficulty": "<easy | medium | hard>",
    "question": "<question text>",
    "options": [
      "A) ...",
      "B) ...",
      "C) ...",
      "D) ..."
    ],
    "correct_answer": "C",
    "explanation": "<short explanation>"
  }
]

Quality:
- Do not make the correct answer obvious. Options have similar length and structure.
- Use plausible distractors.
- Never reveal the answer in the statement.
- Always return pure, valid JSON with no text outside it.
`

func BuildUserPrompt(req DraftRequest) string {
	n := req.Count
	if n <= 0 {
		n = defaultCount
	}
	if n > maxCount {
		n = maxCount
	}

	extra := ""
	if req.Context != "" {
		extra = fmt.Sprintf("Use this context for the questions: %s. ", req.Context)
	}

	return fmt.Sprintf(
		"Generate %d multiple-choice questions about \"%s\" with difficulty \"%s\". %s"+
			"Follow the format from the system prompt.",
		n, req.Topic, req.Difficulty, extra,
	)
}
