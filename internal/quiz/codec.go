package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedQuestions = errors.New("malformed question list")

// QuestionList accepts both a JSON array and the serialized text form
// stored in quiz documents, so either payload converges on the same slice.
type QuestionList []Question

func (l *QuestionList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = QuestionList{}
		return nil
	}

	if b[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedQuestions, err)
		}
		qs, err := DecodeQuestions(text)
		if err != nil {
			return err
		}
		*l = qs
		return nil
	}

	var qs []Question
	if err := json.Unmarshal(b, &qs); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedQuestions, err)
	}
	*l = qs
	return nil
}

func EncodeQuestions(qs []Question) (string, error) {
	if qs == nil {
		qs = []Question{}
	}
	b, err := json.Marshal(qs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeQuestions parses the serialized question list. Empty text is an
// empty list.
func DecodeQuestions(text string) (QuestionList, error) {
	if strings.TrimSpace(text) == "" {
		return QuestionList{}, nil
	}

	var qs []Question
	if err := json.Unmarshal([]byte(text), &qs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuestions, err)
	}
	if err := ValidateQuestions(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// DecodeStoredQuestions decodes the question text of a stored quiz. A
// completed quiz is never opened again, so unreadable text on one decodes to
// an empty list instead of hiding its status behind a decode error.
func DecodeStoredQuestions(status Status, text string) (QuestionList, error) {
	qs, err := DecodeQuestions(text)
	if err != nil {
		if status == StatusCompleted {
			return QuestionList{}, nil
		}
		return nil, err
	}
	return qs, nil
}

// ValidateQuestions checks the structural rules every stored question obeys.
func ValidateQuestions(qs []Question) error {
	seen := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrMalformedQuestions, i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", ErrMalformedQuestions, q.ID)
		}
		seen[q.ID] = struct{}{}

		if n := len(q.Options); n < MinOptions || n > MaxOptions {
			return fmt.Errorf("%w: question %q has %d options", ErrMalformedQuestions, q.ID, n)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %q correct answer %d out of range", ErrMalformedQuestions, q.ID, q.CorrectAnswer)
		}
	}
	return nil
}
