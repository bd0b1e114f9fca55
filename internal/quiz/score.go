package quiz

// Percentage is round-half-up of 100*correct/total, 0 for an empty quiz.
func Percentage(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	if correct > total {
		correct = total
	}
	return (200*correct + total) / (2 * total)
}

// Score counts the questions whose recorded answer matches the correct
// option. Unanswered questions count toward the total only.
func Score(questions []Question, answers Answers) (correct, total, score int) {
	total = len(questions)
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if ok && selected == q.CorrectAnswer {
			correct++
		}
	}
	return correct, total, Percentage(correct, total)
}
