package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
)

var (
	ErrUnavailable  = errors.New("question drafting is not configured")
	ErrTopicMissing = errors.New("topic is required")
)

var optionLabel = regexp.MustCompile(`^[A-Da-d][\)\.:]\s*`)

type Service interface {
	DraftQuestions(ctx context.Context, req DraftRequest) ([]DraftQuestion, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) DraftQuestions(ctx context.Context, req DraftRequest) ([]DraftQuestion, error) {
	if s.provider == nil {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, ErrTopicMissing
	}

	drafts, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	log := config.WithContext(ctx)
	out := make([]DraftQuestion, 0, len(drafts))
	for i, d := range drafts {
		q, err := toDraftQuestion(d)
		if err != nil {
			log.WithError(err).Warnf("Discarding drafted question %d", i)
			continue
		}
		out = append(out, q)
	}
	log.Infof("Drafted %d questions", len(out))
	return out, nil
}

// toDraftQuestion strips "A) " labels and turns the answer letter into an
// option index.
func toDraftQuestion(d Draft) (DraftQuestion, error) {
	if strings.TrimSpace(d.Question) == "" {
		return DraftQuestion{}, errors.New("empty question")
	}
	if n := len(d.Options); n < quiz.MinOptions || n > quiz.MaxOptions {
		return DraftQuestion{}, fmt.Errorf("%d options", n)
	}

	options := make([]string, len(d.Options))
	for i, opt := range d.Options {
		options[i] = strings.TrimSpace(optionLabel.ReplaceAllString(strings.TrimSpace(opt), ""))
	}

	letter := strings.ToUpper(strings.TrimSpace(d.CorrectAnswer))
	if len(letter) == 0 {
		return DraftQuestion{}, errors.New("missing correct answer")
	}
	idx := int(letter[0] - 'A')
	if idx < 0 || idx >= len(options) {
		return DraftQuestion{}, fmt.Errorf("correct answer %q out of range", d.CorrectAnswer)
	}

	return DraftQuestion{
		Question:      strings.TrimSpace(d.Question),
		Options:       options,
		CorrectAnswer: idx,
		Explanation:   d.Explanation,
	}, nil
}
