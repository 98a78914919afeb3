package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type Question struct {
	Question string `json:"question"`
}

// AskAssistant handles POST /api/v1/assistant/questions and returns the
// recorded answer.
func (s *Server) AskAssistant(c echo.Context) error {
	var req Question
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAskAssistantCommand(kernel.NewUUID(), actor(c), req.Question)
	if err != nil {
		return fail(c, err)
	}
	a, err := s.h.Ask.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, queries.NewAnswerView(a))
}

// RateAnswer handles POST /api/v1/assistant/answers/:id/ratings.
func (s *Server) RateAnswer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req Stars
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRateAnswerCommand(id, actor(c), req.Stars)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.RateAnswer.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ResolveAnswerFlag handles POST /api/v1/assistant/answers/:id/resolution.
func (s *Server) ResolveAnswerFlag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewResolveAnswerFlagCommand(id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.ResolveFlag.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFlaggedAnswers handles GET /api/v1/assistant/answers/flagged.
func (s *Server) ListFlaggedAnswers(c echo.Context) error {
	query, err := queries.NewListFlaggedAnswersQuery(actor(c))
	if err != nil {
		return fail(c, err)
	}
	views, err := s.h.ListFlagged.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
