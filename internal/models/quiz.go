package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Question struct {
	Text         string   `bson:"text" json:"text"`
	Options      []string `bson:"options" json:"options"`
	CorrectIndex int      `bson:"correct_index" json:"correct_index,omitempty"`
}

type Quiz struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID     primitive.ObjectID `bson:"course_id" json:"course_id"`
	Title        string             `bson:"title" json:"title"`
	Questions    []Question         `bson:"questions" json:"questions"`
	PassingScore int                `bson:"passing_score" json:"passing_score"` // percent, 0..100
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// StudentView strips correct answers before the quiz goes to a student.
func (q *Quiz) StudentView() Quiz {
	out := *q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectIndex = -1
		out.Questions[i] = question
	}
	return out
}

// QuizAttempt is graded and stored server-side; a repeated submission with
// the same attempt key returns the stored result instead of regrading.
type QuizAttempt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID      primitive.ObjectID `bson:"quiz_id" json:"quiz_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	AttemptKey  string             `bson:"attempt_key" json:"attempt_key"`
	Answers     []int              `bson:"answers" json:"answers"`
	Correct     int                `bson:"correct" json:"correct"`
	Total       int                `bson:"total" json:"total"`
	Score       int                `bson:"score" json:"score"` // percent
	Passed      bool               `bson:"passed" json:"passed"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submitted_at"`
}
