package repository

import (
	"context"
	"errors"
	"time"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error)
	GetByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Quiz, error)

	CreateAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	FindAttemptByKey(ctx context.Context, quizID, userID primitive.ObjectID, key string) (*models.QuizAttempt, error)
	GetAttemptsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizAttempt, error)
}

type quizRepository struct {
	quizzes  *mongo.Collection
	attempts *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) QuizRepository {
	return &quizRepository{
		quizzes:  db.Collection("quizzes"),
		attempts: db.Collection("quiz_attempts"),
	}
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	now := time.Now().UTC()
	quiz.ID = primitive.NewObjectID()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	_, err := r.quizzes.InsertOne(ctx, quiz)
	return err
}

func (r *quizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	quiz.UpdatedAt = time.Now().UTC()
	_, err := r.quizzes.UpdateByID(ctx, quiz.ID, bson.M{"$set": quiz})
	return err
}

func (r *quizRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.quizzes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.quizzes.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) GetByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Quiz, error) {
	cursor, err := r.quizzes.Find(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	var quizzes []models.Quiz
	err = cursor.All(ctx, &quizzes)
	return quizzes, err
}

func (r *quizRepository) CreateAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	attempt.ID = primitive.NewObjectID()
	attempt.SubmittedAt = time.Now().UTC()
	_, err := r.attempts.InsertOne(ctx, attempt)
	return err
}

func (r *quizRepository) FindAttemptByKey(ctx context.Context, quizID, userID primitive.ObjectID, key string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.attempts.FindOne(ctx, bson.M{
		"quiz_id":     quizID,
		"user_id":     userID,
		"attempt_key": key,
	}).Decode(&attempt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizRepository) GetAttemptsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizAttempt, error) {
	cursor, err := r.attempts.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var attempts []models.QuizAttempt
	err = cursor.All(ctx, &attempts)
	return attempts, err
}
