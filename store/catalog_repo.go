package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Catalog is the bun-backed repository for the course catalog tables. Every
// method is plain parameter-to-SQL plumbing for the catalog handlers.
type Catalog struct {
	db bun.IDB
}

// NewCatalog creates a catalog repository.
func NewCatalog(db bun.IDB) *Catalog {
	return &Catalog{db: db}
}

func (r *Catalog) CreateCategory(ctx context.Context, cat *Category) error {
	_, err := r.db.NewInsert().Model(cat).Exec(ctx)
	return err
}

func (r *Catalog) ListCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	err := r.db.NewSelect().
		Model(&cats).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *Catalog) CreateCourse(ctx context.Context, course *Course) error {
	_, err := r.db.NewInsert().Model(course).Exec(ctx)
	return err
}

func (r *Catalog) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := r.db.NewSelect().
		Model(&courses).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *Catalog) GetCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	var course Course
	err := r.db.NewSelect().
		Model(&course).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *Catalog) CreateQuestion(ctx context.Context, q *Question) error {
	_, err := r.db.NewInsert().Model(q).Exec(ctx)
	return err
}

func (r *Catalog) ListQuestions(ctx context.Context) ([]Question, error) {
	var questions []Question
	err := r.db.NewSelect().
		Model(&questions).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// QuestionsByCourseAndModule returns the question bank for one course module.
func (r *Catalog) QuestionsByCourseAndModule(ctx context.Context, courseID uuid.UUID, module string) ([]Question, error) {
	var questions []Question
	err := r.db.NewSelect().
		Model(&questions).
		Where("course_id = ?", courseID).
		Where("module = ?", module).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *Catalog) ListQuizTypes(ctx context.Context) ([]QuizType, error) {
	var types []QuizType
	err := r.db.NewSelect().
		Model(&types).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *Catalog) CreateQuiz(ctx context.Context, quiz *Quiz) error {
	_, err := r.db.NewInsert().Model(quiz).Exec(ctx)
	return err
}

// FetchQuizQuestions returns the questions for one assessment selection.
func (r *Catalog) FetchQuizQuestions(ctx context.Context, courseID uuid.UUID, module string, quizTypeID uuid.UUID) ([]Question, error) {
	var questions []Question
	err := r.db.NewSelect().
		Model(&questions).
		Where("course_id = ?", courseID).
		Where("module = ?", module).
		Where("quiz_type_id = ?", quizTypeID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *Catalog) SaveAttempt(ctx context.Context, attempt *QuizAttempt) error {
	_, err := r.db.NewInsert().Model(attempt).Exec(ctx)
	return err
}
