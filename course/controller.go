package course

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/eduline/lms-server/store"
)

// Logger is the logging surface the catalog handlers need.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Controller binds the category, course, and quiz endpoints to HTTP. All
// handlers are plain bind, query, JSON plumbing over the catalog repository.
type Controller struct {
	Logger     Logger
	UploadsDir string

	catalog *store.Catalog
}

type ControllerOption func(*Controller) *Controller

// NewController creates the catalog controller.
func NewController(catalog *store.Catalog, opts ...ControllerOption) *Controller {
	c := &Controller{
		UploadsDir: "uploads",
		catalog:    catalog,
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithUploadsDir(dir string) ControllerOption {
	return func(c *Controller) *Controller {
		if dir != "" {
			c.UploadsDir = dir
		}
		return c
	}
}

// RegisterRoutes mounts the catalog endpoints.
func (c *Controller) RegisterRoutes(app fiber.Router) {
	cat := app.Group("/category")
	cat.Post("/", c.CategoryCreate)
	cat.Get("/", c.CategoryList)

	crs := app.Group("/course")
	crs.Post("/", c.CourseCreate)
	crs.Get("/", c.CourseList)
	crs.Get("/:id", c.CourseGet)

	quiz := app.Group("/quiz")
	quiz.Post("/addquestion", c.QuestionAdd)
	quiz.Get("/getquestion", c.QuestionList)
	quiz.Get("/questions/:course/:module", c.QuestionsByCourseModule)
	quiz.Get("/getquiztype", c.QuizTypeList)
	quiz.Get("/fetch/:courseId/:moduleId/:quizTypeId", c.QuizFetch)
	quiz.Post("/createquiz", c.QuizCreate)
	quiz.Post("/savequiz/:user_id/:ass_id/:module", c.QuizAttemptSave)
}

type categoryPayload struct {
	Name string `json:"name"`
}

// CategoryCreate handles POST /category.
func (c *Controller) CategoryCreate(ctx *fiber.Ctx) error {
	var payload categoryPayload
	if err := ctx.BodyParser(&payload); err != nil || payload.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Category name is required",
		})
	}

	cat := &store.Category{
		ID:   uuid.New(),
		Name: payload.Name,
	}
	if err := c.catalog.CreateCategory(ctx.UserContext(), cat); err != nil {
		c.logError("failed to create category", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating category",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(cat)
}

// CategoryList handles GET /category.
func (c *Controller) CategoryList(ctx *fiber.Ctx) error {
	cats, err := c.catalog.ListCategories(ctx.UserContext())
	if err != nil {
		c.logError("failed to list categories", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching categories",
		})
	}
	return ctx.JSON(cats)
}

// CourseCreate handles POST /course. The payload is multipart so a thumbnail
// can ride along; the file lands in the uploads dir under a fresh name.
func (c *Controller) CourseCreate(ctx *fiber.Ctx) error {
	title := ctx.FormValue("title")
	if title == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Course title is required",
		})
	}

	course := &store.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: ctx.FormValue("description"),
	}

	if categoryID, err := uuid.Parse(ctx.FormValue("category_id")); err == nil {
		course.CategoryID = categoryID
	}

	if file, err := ctx.FormFile("thumbnail"); err == nil {
		name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		dest := filepath.Join(c.UploadsDir, name)
		if err := ctx.SaveFile(file, dest); err != nil {
			c.logError("failed to save thumbnail", err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error saving thumbnail",
			})
		}
		course.Thumbnail = filepath.ToSlash(filepath.Join("uploads", name))
	}

	if err := c.catalog.CreateCourse(ctx.UserContext(), course); err != nil {
		c.logError("failed to create course", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating course",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(course)
}

// CourseList handles GET /course.
func (c *Controller) CourseList(ctx *fiber.Ctx) error {
	courses, err := c.catalog.ListCourses(ctx.UserContext())
	if err != nil {
		c.logError("failed to list courses", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching courses",
		})
	}
	return ctx.JSON(courses)
}

// CourseGet handles GET /course/:id.
func (c *Controller) CourseGet(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid course id",
		})
	}

	course, err := c.catalog.GetCourse(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Course not found",
			})
		}
		c.logError("failed to fetch course", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching course",
		})
	}

	return ctx.JSON(course)
}

func (c *Controller) logError(msg string, err error) {
	if c.Logger != nil {
		c.Logger.Error(msg, "error", err)
	}
}
