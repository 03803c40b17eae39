package services

import (
	"context"
	"errors"
	"testing"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeQuizRepo struct {
	quizzes  map[primitive.ObjectID]*models.Quiz
	attempts []*models.QuizAttempt
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[primitive.ObjectID]*models.Quiz)}
}

func (r *fakeQuizRepo) Create(_ context.Context, quiz *models.Quiz) error {
	quiz.ID = primitive.NewObjectID()
	cp := *quiz
	r.quizzes[quiz.ID] = &cp
	return nil
}

func (r *fakeQuizRepo) Update(_ context.Context, quiz *models.Quiz) error {
	if _, ok := r.quizzes[quiz.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *quiz
	r.quizzes[quiz.ID] = &cp
	return nil
}

func (r *fakeQuizRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.quizzes[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *fakeQuizRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *quiz
	return &cp, nil
}

func (r *fakeQuizRepo) GetByCourse(_ context.Context, courseID primitive.ObjectID) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, quiz := range r.quizzes {
		if quiz.CourseID == courseID {
			out = append(out, *quiz)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) CreateAttempt(_ context.Context, attempt *models.QuizAttempt) error {
	attempt.ID = primitive.NewObjectID()
	cp := *attempt
	r.attempts = append(r.attempts, &cp)
	return nil
}

func (r *fakeQuizRepo) FindAttemptByKey(_ context.Context, quizID, userID primitive.ObjectID, key string) (*models.QuizAttempt, error) {
	for _, attempt := range r.attempts {
		if attempt.QuizID == quizID && attempt.UserID == userID && attempt.AttemptKey == key {
			cp := *attempt
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeQuizRepo) GetAttemptsByUser(_ context.Context, userID primitive.ObjectID) ([]models.QuizAttempt, error) {
	var out []models.QuizAttempt
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			out = append(out, *attempt)
		}
	}
	return out, nil
}

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		CourseID:     primitive.NewObjectID(),
		Title:        "Fractions basics",
		PassingScore: 60,
		Questions: []models.Question{
			{Text: "1/2 + 1/2 = ?", Options: []string{"1", "2", "1/4"}, CorrectIndex: 0},
			{Text: "1/3 of 9 = ?", Options: []string{"6", "3", "1"}, CorrectIndex: 1},
			{Text: "2/4 equals", Options: []string{"1/2", "1/4", "2"}, CorrectIndex: 0},
		},
	}
}

func TestGradeQuiz(t *testing.T) {
	quiz := sampleQuiz()

	cases := []struct {
		name       string
		answers    []int
		wantScore  int
		wantPassed bool
	}{
		{"all correct", []int{0, 1, 0}, 100, true},
		{"two of three", []int{0, 1, 2}, 66, true},
		{"one of three", []int{0, 0, 2}, 33, false},
		{"none", []int{2, 0, 2}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attempt := GradeQuiz(quiz, tc.answers)
			if attempt.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", attempt.Score, tc.wantScore)
			}
			if attempt.Passed != tc.wantPassed {
				t.Errorf("passed = %v, want %v", attempt.Passed, tc.wantPassed)
			}
		})
	}
}

func TestGradeQuiz_EmptyQuizCannotPass(t *testing.T) {
	attempt := GradeQuiz(&models.Quiz{PassingScore: 0}, nil)
	if attempt.Passed {
		t.Error("an empty quiz must not be passable")
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want 0", attempt.Score)
	}
}

func TestSubmit_IdempotentByAttemptKey(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo)

	quiz := sampleQuiz()
	if err := svc.Create(context.Background(), quiz); err != nil {
		t.Fatalf("Create: %v", err)
	}
	userID := primitive.NewObjectID()

	first, err := svc.Submit(context.Background(), quiz.ID, userID, []int{0, 1, 0}, "attempt-1")
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	// retried submission with different answers must return the stored result
	second, err := svc.Submit(context.Background(), quiz.ID, userID, []int{2, 2, 2}, "attempt-1")
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}

	if second.ID != first.ID || second.Score != first.Score {
		t.Error("retry with the same attempt key must return the original attempt")
	}
	if len(repo.attempts) != 1 {
		t.Errorf("stored attempts = %d, want 1", len(repo.attempts))
	}
}

func TestSubmit_AnswerCountMismatch(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo)

	quiz := sampleQuiz()
	if err := svc.Create(context.Background(), quiz); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Submit(context.Background(), quiz.ID, primitive.NewObjectID(), []int{0}, "")
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Submit = %v, want ErrValidation", err)
	}
}

func TestCreate_RejectsBadQuestions(t *testing.T) {
	svc := NewQuizService(newFakeQuizRepo())

	quiz := sampleQuiz()
	quiz.Questions[1].CorrectIndex = 5
	if err := svc.Create(context.Background(), quiz); !errors.Is(err, models.ErrValidation) {
		t.Errorf("out-of-range correct_index: Create = %v, want ErrValidation", err)
	}

	quiz = sampleQuiz()
	quiz.PassingScore = 120
	if err := svc.Create(context.Background(), quiz); !errors.Is(err, models.ErrValidation) {
		t.Errorf("passing_score 120: Create = %v, want ErrValidation", err)
	}
}

func TestStudentView_HidesAnswers(t *testing.T) {
	quiz := sampleQuiz()
	view := quiz.StudentView()

	for i, question := range view.Questions {
		if question.CorrectIndex != -1 {
			t.Errorf("question %d still exposes correct_index %d", i, question.CorrectIndex)
		}
	}
	// the original must stay intact for grading
	if quiz.Questions[0].CorrectIndex != 0 {
		t.Error("StudentView must not mutate the source quiz")
	}
}
