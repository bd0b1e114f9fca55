package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
	"gorm.io/gorm"
)

type quizRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Course    string    `gorm:"not null"`
	Duration  int       `gorm:"not null"`
	Questions string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedBy string    `gorm:"index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	StartedAt     *time.Time
	StartedBy     string
	StartedByName string

	CompletedAt     *time.Time
	CompletedBy     string
	CompletedByName string
	Score           *int
	CorrectAnswers  *int
	TotalQuestions  *int
}

func (quizRecord) TableName() string {
	return "quizzes"
}

var columns = map[string]string{
	quiz.FieldStatus:          "status",
	quiz.FieldStartedAt:       "started_at",
	quiz.FieldStartedBy:       "started_by",
	quiz.FieldStartedByName:   "started_by_name",
	quiz.FieldCompletedAt:     "completed_at",
	quiz.FieldCompletedBy:     "completed_by",
	quiz.FieldCompletedByName: "completed_by_name",
	quiz.FieldScore:           "score",
	quiz.FieldCorrectAnswers:  "correct_answers",
	quiz.FieldTotalQuestions:  "total_questions",
}

var orderColumns = map[quiz.OrderField]string{
	quiz.OrderCreatedAt: "created_at",
	quiz.OrderUpdatedAt: "updated_at",
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&quizRecord{})
}

func (s *Store) FetchByID(ctx context.Context, id string) (*quiz.Quiz, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, quiz.ErrNotFound
	}

	var rec quizRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quiz.ErrNotFound
		}
		return nil, err
	}
	return rec.toQuiz()
}

func (s *Store) List(ctx context.Context, lq quiz.ListQuery) ([]*quiz.Quiz, error) {
	tx := s.db.WithContext(ctx).Model(&quizRecord{})
	if lq.Status != nil {
		tx = tx.Where("status = ?", string(*lq.Status))
	}
	if lq.CreatedBy != "" {
		tx = tx.Where("created_by = ?", lq.CreatedBy)
	}

	col, ok := orderColumns[lq.OrderBy]
	if !ok {
		col = "created_at"
	}
	if lq.Desc {
		col += " DESC"
	}
	tx = tx.Order(col)
	if lq.Limit > 0 {
		tx = tx.Limit(lq.Limit)
	}

	var recs []quizRecord
	if err := tx.Find(&recs).Error; err != nil {
		return nil, err
	}

	log := config.WithContext(ctx)
	out := make([]*quiz.Quiz, 0, len(recs))
	for i := range recs {
		q, err := recs[i].toQuiz()
		if err != nil {
			log.WithError(err).WithField("quiz_id", recs[i].ID).Warn("Skipping quiz with malformed questions")
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, q *quiz.Quiz) (string, error) {
	rec, err := fromQuiz(q)
	if err != nil {
		return "", err
	}
	rec.ID = uuid.New()

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return "", err
	}
	return rec.ID.String(), nil
}

func (s *Store) Update(ctx context.Context, id string, fields quiz.Fields) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return quiz.ErrNotFound
	}

	updates := make(map[string]interface{}, len(fields)+1)
	for name, v := range fields {
		col, ok := columns[name]
		if !ok {
			return fmt.Errorf("unknown quiz field %q", name)
		}
		if st, ok := v.(quiz.Status); ok {
			v = string(st)
		}
		updates[col] = v
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).Model(&quizRecord{}).Where("id = ?", uid).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return quiz.ErrNotFound
	}
	return nil
}

func (r *quizRecord) toQuiz() (*quiz.Quiz, error) {
	questions, err := quiz.DecodeStoredQuestions(quiz.Status(r.Status), r.Questions)
	if err != nil {
		return nil, err
	}
	return &quiz.Quiz{
		ID:              r.ID.String(),
		Title:           r.Title,
		Course:          r.Course,
		Duration:        r.Duration,
		Questions:       questions,
		Status:          quiz.Status(r.Status),
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		StartedAt:       r.StartedAt,
		StartedBy:       r.StartedBy,
		StartedByName:   r.StartedByName,
		CompletedAt:     r.CompletedAt,
		CompletedBy:     r.CompletedBy,
		CompletedByName: r.CompletedByName,
		Score:           r.Score,
		CorrectAnswers:  r.CorrectAnswers,
		TotalQuestions:  r.TotalQuestions,
	}, nil
}

func fromQuiz(q *quiz.Quiz) (*quizRecord, error) {
	text, err := quiz.EncodeQuestions(q.Questions)
	if err != nil {
		return nil, err
	}
	status := q.Status
	if status == "" {
		status = quiz.StatusPending
	}
	return &quizRecord{
		Title:           q.Title,
		Course:          q.Course,
		Duration:        q.Duration,
		Questions:       text,
		Status:          string(status),
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
		StartedAt:       q.StartedAt,
		StartedBy:       q.StartedBy,
		StartedByName:   q.StartedByName,
		CompletedAt:     q.CompletedAt,
		CompletedBy:     q.CompletedBy,
		CompletedByName: q.CompletedByName,
		Score:           q.Score,
		CorrectAnswers:  q.CorrectAnswers,
		TotalQuestions:  q.TotalQuestions,
	}, nil
}
