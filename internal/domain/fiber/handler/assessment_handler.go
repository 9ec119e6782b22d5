package handler

import (
	"time"

	"github.com/fadilmartias/pathfinder/internal/dto"
	"github.com/fadilmartias/pathfinder/internal/middleware"
	"github.com/fadilmartias/pathfinder/internal/usecase"
	"github.com/fadilmartias/pathfinder/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	uc        *usecase.AssessmentUsecase
	jwtSecret string
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase, jwtSecret string) *AssessmentHandler {
	return &AssessmentHandler{uc: uc, jwtSecret: jwtSecret}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/aptitude")
	api.Get("/questions", h.GetQuestions)

	auth := middleware.RequireLearner(h.jwtSecret)
	api.Post("/submit", auth, middleware.RateLimiter(10, time.Minute), h.Submit)
	api.Get("/history", auth, h.History)
	api.Get("/result/:id", auth, h.Result)
}

func (h *AssessmentHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := h.uc.GetQuestions(c.UserContext())
	if err != nil {
		return util.AppErrorResponse(c, err, false)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get questions",
		Data:    dto.NewQuestionList(questions),
	})
}

func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return util.AppErrorResponse(c, util.NewFormError("invalid request body", map[string]string{
			"body": err.Error(),
		}), false)
	}

	learnerID := middleware.LearnerID(c)
	if req.LearnerID != "" && req.LearnerID != learnerID {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "learner_id does not match the authenticated learner",
		})
	}

	outcome, err := h.uc.Submit(c.UserContext(), learnerID, req.Answers)
	if err != nil {
		return util.AppErrorResponse(c, err, true)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success submit assessment",
		Data:    dto.NewOutcome(outcome),
	})
}

func (h *AssessmentHandler) History(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 0)
	if page < 1 || pageSize < 0 {
		return util.AppErrorResponse(c, util.NewFormError("invalid pagination", map[string]string{
			"page":      "must be at least 1",
			"page_size": "must not be negative",
		}), false)
	}

	outcomes, pagination, err := h.uc.History(c.UserContext(), middleware.LearnerID(c), page, pageSize)
	if err != nil {
		return util.AppErrorResponse(c, err, false)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get assessment history",
		Data:       dto.NewOutcomeList(outcomes),
		Pagination: pagination,
	})
}

func (h *AssessmentHandler) Result(c *fiber.Ctx) error {
	outcome, err := h.uc.GetResult(c.UserContext(), c.Params("id"), middleware.LearnerID(c))
	if err != nil {
		return util.AppErrorResponse(c, err, false)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assessment result",
		Data:    dto.NewOutcome(outcome),
	})
}
