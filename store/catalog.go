package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category groups courses on the catalog page.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID        uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Course is a published course with an optional uploaded thumbnail.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID          uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description" json:"description"`
	CategoryID  uuid.UUID `bun:"category_id,type:uuid" json:"category_id"`
	Thumbnail   string    `bun:"thumbnail" json:"thumbnail"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// QuizType distinguishes assessments (practice, module test, final).
type QuizType struct {
	bun.BaseModel `bun:"table:quiz_types,alias:qt"`

	ID   uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Name string    `bun:"name,notnull,unique" json:"name"`
}

// Quiz ties a set of questions to a course module and quiz type.
type Quiz struct {
	bun.BaseModel `bun:"table:quizzes,alias:q"`

	ID         uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Title      string    `bun:"title,notnull" json:"title"`
	CourseID   uuid.UUID `bun:"course_id,notnull,type:uuid" json:"course_id"`
	Module     string    `bun:"module,notnull" json:"module"`
	QuizTypeID uuid.UUID `bun:"quiz_type_id,notnull,type:uuid" json:"quiz_type_id"`
	TotalMarks int       `bun:"total_marks" json:"total_marks"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Question is a multiple-choice question. Options are stored as a JSON array
// column so the handler can pass them through without a join table.
type Question struct {
	bun.BaseModel `bun:"table:questions,alias:qn"`

	ID         uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	CourseID   uuid.UUID `bun:"course_id,notnull,type:uuid" json:"course_id"`
	Module     string    `bun:"module,notnull" json:"module"`
	QuizTypeID uuid.UUID `bun:"quiz_type_id,type:uuid" json:"quiz_type_id"`
	Question   string    `bun:"question,notnull" json:"question"`
	Options    []string  `bun:"options,type:jsonb" json:"options"`
	Answer     string    `bun:"answer,notnull" json:"answer"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// QuizAttempt records a user's submitted score for an assessment.
type QuizAttempt struct {
	bun.BaseModel `bun:"table:quiz_attempts,alias:qa"`

	ID           uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	UserID       uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	AssessmentID uuid.UUID `bun:"assessment_id,notnull,type:uuid" json:"assessment_id"`
	Module       string    `bun:"module,notnull" json:"module"`
	Score        int       `bun:"score,notnull" json:"score"`
	SubmittedAt  time.Time `bun:"submitted_at,nullzero,notnull,default:current_timestamp" json:"submitted_at"`
}
