package quiz_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
)

const questionsText = `[{"id":"q1","question":"2+2?","options":["3","4"],"correctAnswer":1}]`

func TestDecodeQuestions(t *testing.T) {
	t.Run("valid text", func(t *testing.T) {
		qs, err := quiz.DecodeQuestions(questionsText)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(qs) != 1 || qs[0].ID != "q1" || qs[0].CorrectAnswer != 1 || len(qs[0].Options) != 2 {
			t.Errorf("unexpected questions: %+v", qs)
		}
	})

	t.Run("blank text is an empty list", func(t *testing.T) {
		qs, err := quiz.DecodeQuestions("  ")
		if err != nil || len(qs) != 0 {
			t.Errorf("got %v, %v", qs, err)
		}
	})

	invalid := map[string]string{
		"malformed json":      `[{"id":`,
		"missing id":          `[{"question":"x","options":["a","b"],"correctAnswer":0}]`,
		"duplicate id":        `[{"id":"q","options":["a","b"],"correctAnswer":0},{"id":"q","options":["a","b"],"correctAnswer":0}]`,
		"one option":          `[{"id":"q","options":["a"],"correctAnswer":0}]`,
		"five options":        `[{"id":"q","options":["a","b","c","d","e"],"correctAnswer":0}]`,
		"answer out of range": `[{"id":"q","options":["a","b"],"correctAnswer":2}]`,
		"negative answer":     `[{"id":"q","options":["a","b"],"correctAnswer":-1}]`,
	}
	for name, text := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := quiz.DecodeQuestions(text)
			if !errors.Is(err, quiz.ErrMalformedQuestions) {
				t.Errorf("expected ErrMalformedQuestions, got %v", err)
			}
		})
	}
}

func TestEncodeQuestions(t *testing.T) {
	text, err := quiz.EncodeQuestions(nil)
	if err != nil || text != "[]" {
		t.Errorf("EncodeQuestions(nil) = %q, %v", text, err)
	}

	qs, _ := quiz.DecodeQuestions(questionsText)
	text, err = quiz.EncodeQuestions(qs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if text != questionsText {
		t.Errorf("encoded = %s", text)
	}
}

func TestQuestionListAcceptsBothShapes(t *testing.T) {
	inline := `{"id":"a","questions":` + questionsText + `}`
	quoted, _ := json.Marshal(questionsText)
	serialized := `{"id":"b","questions":` + string(quoted) + `}`

	var fromInline, fromText quiz.Quiz
	if err := json.Unmarshal([]byte(inline), &fromInline); err != nil {
		t.Fatalf("inline: %v", err)
	}
	if err := json.Unmarshal([]byte(serialized), &fromText); err != nil {
		t.Fatalf("serialized: %v", err)
	}

	if len(fromInline.Questions) != 1 || len(fromText.Questions) != 1 {
		t.Fatalf("expected one question each, got %d and %d", len(fromInline.Questions), len(fromText.Questions))
	}
	if fromInline.Questions[0].Question != fromText.Questions[0].Question {
		t.Error("both shapes should converge on the same question")
	}

	var bad quiz.Quiz
	err := json.Unmarshal([]byte(`{"questions":"not json"}`), &bad)
	if !errors.Is(err, quiz.ErrMalformedQuestions) {
		t.Errorf("expected ErrMalformedQuestions, got %v", err)
	}
}

func TestDecodeStoredQuestions(t *testing.T) {
	const legacy = `[{"question":"no id","options":["a","b"],"correctAnswer":0}]`

	t.Run("completed quiz tolerates unreadable text", func(t *testing.T) {
		for _, text := range []string{legacy, "{not json"} {
			qs, err := quiz.DecodeStoredQuestions(quiz.StatusCompleted, text)
			if err != nil || len(qs) != 0 {
				t.Errorf("DecodeStoredQuestions(%q) = %v, %v", text, qs, err)
			}
		}
	})

	t.Run("open quiz still rejects it", func(t *testing.T) {
		for _, status := range []quiz.Status{quiz.StatusPending, quiz.StatusInProgress} {
			_, err := quiz.DecodeStoredQuestions(status, legacy)
			if !errors.Is(err, quiz.ErrMalformedQuestions) {
				t.Errorf("%s: expected ErrMalformedQuestions, got %v", status, err)
			}
		}
	})

	t.Run("completed quiz keeps readable questions", func(t *testing.T) {
		qs, err := quiz.DecodeStoredQuestions(quiz.StatusCompleted, questionsText)
		if err != nil || len(qs) != 1 {
			t.Errorf("unexpected result: %v, %v", qs, err)
		}
	})
}
