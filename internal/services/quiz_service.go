package services

import (
	"context"
	"errors"
	"fmt"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizService interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, id primitive.ObjectID, updated *models.Quiz) (*models.Quiz, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// GetForStudent returns the quiz with correct answers stripped; the
	// caller must already have verified course access.
	GetForStudent(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error)
	GetByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Quiz, error)
	Submit(ctx context.Context, quizID, userID primitive.ObjectID, answers []int, attemptKey string) (*models.QuizAttempt, error)
	AttemptsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizAttempt, error)
}

type quizService struct {
	repo repository.QuizRepository
}

func NewQuizService(repo repository.QuizRepository) QuizService {
	return &quizService{repo: repo}
}

func (s *quizService) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := validateQuiz(quiz); err != nil {
		return err
	}
	return s.repo.Create(ctx, quiz)
}

func (s *quizService) Update(ctx context.Context, id primitive.ObjectID, updated *models.Quiz) (*models.Quiz, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateQuiz(updated); err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.Questions = updated.Questions
	existing.PassingScore = updated.PassingScore

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *quizService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *quizService) GetForStudent(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := quiz.StudentView()
	return &view, nil
}

func (s *quizService) GetByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Quiz, error) {
	return s.repo.GetByCourse(ctx, courseID)
}

// Submit grades server-side. An attempt key makes retried submissions
// idempotent: the same key returns the originally graded attempt.
func (s *quizService) Submit(ctx context.Context, quizID, userID primitive.ObjectID, answers []int, attemptKey string) (*models.QuizAttempt, error) {
	quiz, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if attemptKey == "" {
		attemptKey = uuid.NewString()
	} else {
		existing, err := s.repo.FindAttemptByKey(ctx, quizID, userID, attemptKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	if len(answers) != len(quiz.Questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", models.ErrValidation, len(quiz.Questions), len(answers))
	}

	attempt := GradeQuiz(quiz, answers)
	attempt.QuizID = quizID
	attempt.UserID = userID
	attempt.AttemptKey = attemptKey

	if err := s.repo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *quizService) AttemptsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizAttempt, error) {
	return s.repo.GetAttemptsByUser(ctx, userID)
}

// GradeQuiz scores a set of answers against the quiz key. Score is an
// integer percentage; an empty quiz can not be passed.
func GradeQuiz(quiz *models.Quiz, answers []int) *models.QuizAttempt {
	correct := 0
	for i, question := range quiz.Questions {
		if i < len(answers) && answers[i] == question.CorrectIndex {
			correct++
		}
	}

	total := len(quiz.Questions)
	score := 0
	if total > 0 {
		score = correct * 100 / total
	}
	return &models.QuizAttempt{
		Answers: answers,
		Correct: correct,
		Total:   total,
		Score:   score,
		Passed:  total > 0 && score >= quiz.PassingScore,
	}
}

func validateQuiz(quiz *models.Quiz) error {
	if quiz.Title == "" || quiz.CourseID.IsZero() {
		return fmt.Errorf("%w: title and course_id are required", models.ErrValidation)
	}
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		return fmt.Errorf("%w: passing_score must be between 0 and 100", models.ErrValidation)
	}
	for i, q := range quiz.Questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least 2 options", models.ErrValidation, i+1)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d has an out-of-range correct_index", models.ErrValidation, i+1)
		}
	}
	return nil
}
