package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "quizzes"

// quizDocument is the stored shape. Questions are kept as serialized text.
type quizDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Course    string             `bson:"course"`
	Duration  int                `bson:"duration"`
	Questions string             `bson:"questions"`
	Status    string             `bson:"status"`
	CreatedBy string             `bson:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`

	StartedAt     *time.Time `bson:"startedAt,omitempty"`
	StartedBy     string     `bson:"startedBy,omitempty"`
	StartedByName string     `bson:"startedByName,omitempty"`

	CompletedAt     *time.Time `bson:"completedAt,omitempty"`
	CompletedBy     string     `bson:"completedBy,omitempty"`
	CompletedByName string     `bson:"completedByName,omitempty"`
	Score           *int       `bson:"score,omitempty"`
	CorrectAnswers  *int       `bson:"correctAnswers,omitempty"`
	TotalQuestions  *int       `bson:"totalQuestions,omitempty"`
}

type Store struct {
	Col *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		Col: db.Collection(CollectionName),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the indexes used by listing and the activity feed.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
	})
	return err
}

func (s *Store) FetchByID(ctx context.Context, id string) (*quiz.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, quiz.ErrNotFound
	}

	var doc quizDocument
	if err := s.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, quiz.ErrNotFound
		}
		return nil, err
	}
	return doc.toQuiz()
}

func (s *Store) List(ctx context.Context, lq quiz.ListQuery) ([]*quiz.Quiz, error) {
	filter := bson.M{}
	if lq.Status != nil {
		filter["status"] = string(*lq.Status)
	}
	if lq.CreatedBy != "" {
		filter["createdBy"] = lq.CreatedBy
	}

	field := string(lq.OrderBy)
	if field == "" {
		field = string(quiz.OrderCreatedAt)
	}
	dir := 1
	if lq.Desc {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}})
	if lq.Limit > 0 {
		opts.SetLimit(int64(lq.Limit))
	}

	cursor, err := s.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	log := config.WithContext(ctx)
	var out []*quiz.Quiz
	for cursor.Next(ctx) {
		var doc quizDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		q, err := doc.toQuiz()
		if err != nil {
			log.WithError(err).WithField("quiz_id", doc.ID.Hex()).Warn("Skipping quiz with malformed questions")
			continue
		}
		out = append(out, q)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, q *quiz.Quiz) (string, error) {
	doc, err := fromQuiz(q)
	if err != nil {
		return "", err
	}
	now := s.now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.ID = primitive.NilObjectID

	res, err := s.Col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Store) Update(ctx context.Context, id string, fields quiz.Fields) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return quiz.ErrNotFound
	}

	set := bson.M{"updatedAt": s.now()}
	for name, v := range fields {
		if st, ok := v.(quiz.Status); ok {
			v = string(st)
		}
		set[name] = v
	}

	res, err := s.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return quiz.ErrNotFound
	}
	return nil
}

func (d *quizDocument) toQuiz() (*quiz.Quiz, error) {
	questions, err := quiz.DecodeStoredQuestions(quiz.Status(d.Status), d.Questions)
	if err != nil {
		return nil, err
	}
	return &quiz.Quiz{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Course:          d.Course,
		Duration:        d.Duration,
		Questions:       questions,
		Status:          quiz.Status(d.Status),
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		StartedAt:       d.StartedAt,
		StartedBy:       d.StartedBy,
		StartedByName:   d.StartedByName,
		CompletedAt:     d.CompletedAt,
		CompletedBy:     d.CompletedBy,
		CompletedByName: d.CompletedByName,
		Score:           d.Score,
		CorrectAnswers:  d.CorrectAnswers,
		TotalQuestions:  d.TotalQuestions,
	}, nil
}

func fromQuiz(q *quiz.Quiz) (*quizDocument, error) {
	text, err := quiz.EncodeQuestions(q.Questions)
	if err != nil {
		return nil, err
	}
	status := q.Status
	if status == "" {
		status = quiz.StatusPending
	}
	return &quizDocument{
		Title:           q.Title,
		Course:          q.Course,
		Duration:        q.Duration,
		Questions:       text,
		Status:          string(status),
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
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
