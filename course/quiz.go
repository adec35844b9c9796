package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/eduline/lms-server/store"
)

type questionPayload struct {
	CourseID   string   `json:"course_id"`
	Module     string   `json:"module"`
	QuizTypeID string   `json:"quiz_type_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
}

// QuestionAdd handles POST /quiz/addquestion.
func (c *Controller) QuestionAdd(ctx *fiber.Ctx) error {
	var payload questionPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid question payload",
		})
	}

	courseID, err := uuid.Parse(payload.CourseID)
	if err != nil || payload.Question == "" || payload.Answer == "" || payload.Module == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Course, module, question and answer are required",
		})
	}

	q := &store.Question{
		ID:       uuid.New(),
		CourseID: courseID,
		Module:   payload.Module,
		Question: payload.Question,
		Options:  payload.Options,
		Answer:   payload.Answer,
	}
	if quizTypeID, err := uuid.Parse(payload.QuizTypeID); err == nil {
		q.QuizTypeID = quizTypeID
	}

	if err := c.catalog.CreateQuestion(ctx.UserContext(), q); err != nil {
		c.logError("failed to create question", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating question",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(q)
}

// QuestionList handles GET /quiz/getquestion.
func (c *Controller) QuestionList(ctx *fiber.Ctx) error {
	questions, err := c.catalog.ListQuestions(ctx.UserContext())
	if err != nil {
		c.logError("failed to list questions", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching questions",
		})
	}
	return ctx.JSON(questions)
}

// QuestionsByCourseModule handles GET /quiz/questions/:course/:module.
func (c *Controller) QuestionsByCourseModule(ctx *fiber.Ctx) error {
	courseID, err := uuid.Parse(ctx.Params("course"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid course id",
		})
	}

	questions, err := c.catalog.QuestionsByCourseAndModule(ctx.UserContext(), courseID, ctx.Params("module"))
	if err != nil {
		c.logError("failed to fetch module questions", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching questions",
		})
	}
	return ctx.JSON(questions)
}

// QuizTypeList handles GET /quiz/getquiztype.
func (c *Controller) QuizTypeList(ctx *fiber.Ctx) error {
	types, err := c.catalog.ListQuizTypes(ctx.UserContext())
	if err != nil {
		c.logError("failed to list quiz types", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching quiz types",
		})
	}
	return ctx.JSON(types)
}

// QuizFetch handles GET /quiz/fetch/:courseId/:moduleId/:quizTypeId.
func (c *Controller) QuizFetch(ctx *fiber.Ctx) error {
	courseID, err := uuid.Parse(ctx.Params("courseId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid course id",
		})
	}
	quizTypeID, err := uuid.Parse(ctx.Params("quizTypeId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid quiz type id",
		})
	}

	questions, err := c.catalog.FetchQuizQuestions(ctx.UserContext(), courseID, ctx.Params("moduleId"), quizTypeID)
	if err != nil {
		c.logError("failed to fetch quiz questions", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching quiz questions",
		})
	}
	return ctx.JSON(questions)
}

type quizPayload struct {
	Title      string `json:"title"`
	CourseID   string `json:"course_id"`
	Module     string `json:"module"`
	QuizTypeID string `json:"quiz_type_id"`
	TotalMarks int    `json:"total_marks"`
}

// QuizCreate handles POST /quiz/createquiz.
func (c *Controller) QuizCreate(ctx *fiber.Ctx) error {
	var payload quizPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid quiz payload",
		})
	}

	courseID, err := uuid.Parse(payload.CourseID)
	if err != nil || payload.Title == "" || payload.Module == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title, course and module are required",
		})
	}
	quizTypeID, err := uuid.Parse(payload.QuizTypeID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid quiz type id",
		})
	}

	quiz := &store.Quiz{
		ID:         uuid.New(),
		Title:      payload.Title,
		CourseID:   courseID,
		Module:     payload.Module,
		QuizTypeID: quizTypeID,
		TotalMarks: payload.TotalMarks,
	}

	if err := c.catalog.CreateQuiz(ctx.UserContext(), quiz); err != nil {
		c.logError("failed to create quiz", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating quiz",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(quiz)
}

type attemptPayload struct {
	Score int `json:"score"`
}

// QuizAttemptSave handles POST /quiz/savequiz/:user_id/:ass_id/:module.
func (c *Controller) QuizAttemptSave(ctx *fiber.Ctx) error {
	userID, err := uuid.Parse(ctx.Params("user_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}
	assessmentID, err := uuid.Parse(ctx.Params("ass_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid assessment id",
		})
	}

	var payload attemptPayload
	if err := ctx.BodyParser(&payload); err != nil {
		if score, convErr := strconv.Atoi(ctx.FormValue("score")); convErr == nil {
			payload.Score = score
		} else {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid attempt payload",
			})
		}
	}

	attempt := &store.QuizAttempt{
		ID:           uuid.New(),
		UserID:       userID,
		AssessmentID: assessmentID,
		Module:       ctx.Params("module"),
		Score:        payload.Score,
	}

	if err := c.catalog.SaveAttempt(ctx.UserContext(), attempt); err != nil {
		c.logError("failed to save quiz attempt", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error saving quiz attempt",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(attempt)
}
