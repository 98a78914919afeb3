package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type NewFeedback struct {
	TargetID    kernel.UUID `json:"targetId"`
	OrderID     kernel.UUID `json:"orderId"`
	Kind        string      `json:"kind"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
}

type Decision struct {
	Outcome string `json:"outcome"`
	Notes   string `json:"notes"`
}

// FileFeedback handles POST /api/v1/feedback.
func (s *Server) FileFeedback(c echo.Context) error {
	var req NewFeedback
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	kind, err := feedback.ParseKind(req.Kind)
	if err != nil {
		return fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewFileFeedbackCommand(
		id, actor(c), req.TargetID, req.OrderID, kind, feedback.Category(req.Category), req.Description,
	)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.File.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// ListPendingFeedback handles GET /api/v1/feedback/pending.
func (s *Server) ListPendingFeedback(c echo.Context) error {
	query, err := queries.NewListPendingFeedbackQuery(actor(c))
	if err != nil {
		return fail(c, err)
	}
	views, err := s.h.ListPending.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// AdjudicateFeedback handles POST /api/v1/feedback/:id/adjudication.
func (s *Server) AdjudicateFeedback(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req Decision
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	outcome, err := feedback.ParseOutcome(req.Outcome)
	if err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewAdjudicateFeedbackCommand(id, actor(c), outcome, req.Notes)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.Adjudicate.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
