package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/metrics"
	"github.com/sirupsen/logrus"
)

const DefaultDuration = 30

var ErrValidation = errors.New("invalid quiz")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service interface {
	Create(ctx context.Context, author User, dto CreateQuizDTO) (*Quiz, error)
	Get(ctx context.Context, id string) (*Quiz, error)
	List(ctx context.Context, q ListQuery) ([]*Quiz, error)
	Start(ctx context.Context, id string, user User) (*Session, error)
	Submit(ctx context.Context, id string, user User, answers Answers) (*ScoreResult, error)
}

type service struct {
	store      Store
	controller *Controller
	now        func() time.Time
}

func NewService(store Store, controller *Controller) Service {
	return &service{
		store:      store,
		controller: controller,
		now:        controller.now,
	}
}

func (s *service) Create(ctx context.Context, author User, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := s.buildQuiz(author, dto)
	if err != nil {
		log.WithError(err).Warn("Rejected quiz")
		return nil, err
	}

	id, err := s.store.Create(ctx, q)
	if err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}
	q.ID = id

	log.WithFields(logrus.Fields{
		"quiz_id":   id,
		"questions": len(q.Questions),
	}).Info("Quiz created")

	s.controller.publish(ctx, Event{
		Type:     EventCreated,
		QuizID:   id,
		Title:    q.Title,
		UserID:   author.ID,
		UserName: author.Name,
		At:       q.CreatedAt,
	})
	return q, nil
}

func (s *service) buildQuiz(author User, dto CreateQuizDTO) (*Quiz, error) {
	if err := validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	title := strings.TrimSpace(dto.Title)
	course := strings.TrimSpace(dto.Course)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if course == "" {
		return nil, fmt.Errorf("%w: course is required", ErrValidation)
	}

	duration := dto.Duration
	if duration == 0 {
		duration = DefaultDuration
	}

	questions := make(QuestionList, 0, len(dto.Questions))
	for i, in := range dto.Questions {
		qu, err := buildQuestion(in)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrValidation, i+1, err)
		}
		questions = append(questions, qu)
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := s.now()
	return &Quiz{
		Title:     title,
		Course:    course,
		Duration:  duration,
		Questions: questions,
		Status:    StatusPending,
		CreatedBy: author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// buildQuestion drops blank options and remaps the correct answer onto the
// remaining ones.
func buildQuestion(in CreateQuestionDTO) (Question, error) {
	text := strings.TrimSpace(in.Question)
	if text == "" {
		return Question{}, errors.New("question text is required")
	}
	if in.CorrectAnswer < 0 || in.CorrectAnswer >= len(in.Options) {
		return Question{}, fmt.Errorf("correct answer %d out of range", in.CorrectAnswer)
	}

	options := make([]string, 0, len(in.Options))
	correct := -1
	for i, opt := range in.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		if i == in.CorrectAnswer {
			correct = len(options)
		}
		options = append(options, opt)
	}
	if correct < 0 {
		return Question{}, errors.New("correct answer points at a blank option")
	}
	if len(options) < MinOptions || len(options) > MaxOptions {
		return Question{}, fmt.Errorf("needs %d to %d options, got %d", MinOptions, MaxOptions, len(options))
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return Question{
		ID:            id,
		Question:      text,
		Options:       options,
		CorrectAnswer: correct,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Quiz, error) {
	q, err := s.store.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		config.WithContext(ctx).WithError(err).WithField("quiz_id", id).Error("Failed to fetch quiz")
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return q, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]*Quiz, error) {
	if q.OrderBy == "" {
		q.OrderBy = OrderCreatedAt
		q.Desc = true
	}
	quizzes, err := s.store.List(ctx, q)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quizzes")
		return nil, err
	}
	return quizzes, nil
}

func (s *service) Start(ctx context.Context, id string, user User) (*Session, error) {
	return s.controller.Open(ctx, RefID(id), user)
}

// Submit replays the answers collected by the client onto a fresh session
// and submits it.
func (s *service) Submit(ctx context.Context, id string, user User, answers Answers) (*ScoreResult, error) {
	session, err := s.controller.Open(ctx, RefID(id), user)
	if err != nil {
		return nil, err
	}
	for questionID, option := range answers {
		session.SelectAnswer(questionID, option)
	}

	result, err := session.Submit(ctx)
	if result != nil {
		metrics.ObserveScore(result.Score)
	}
	return result, err
}
