// Package http exposes the restaurant commands and queries over REST with echo.
//
// Every route except registration, the chef rating and the health check
// identifies the caller through the X-Actor-ID header. Authentication is left
// to whatever sits in front of the service; the header is trusted as is.
package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers is the set of use cases the server dispatches to.
type Handlers struct {
	CreateUser  commands.CreateUserCommandHandler
	Deposit     commands.DepositCommandHandler
	PlaceOrder  commands.PlaceOrderCommandHandler
	Advance     commands.AdvanceOrderStatusCommandHandler
	Cancel      commands.CancelOrderCommandHandler
	SubmitBid   commands.SubmitBidCommandHandler
	Assign      commands.AssignOrderCommandHandler
	File        commands.FileFeedbackCommandHandler
	Adjudicate  commands.AdjudicateFeedbackCommandHandler
	RateChef    commands.RateChefCommandHandler
	Reinstate   commands.ReinstateUserCommandHandler
	Ask         commands.AskAssistantCommandHandler
	RateAnswer  commands.RateAnswerCommandHandler
	ResolveFlag commands.ResolveAnswerFlagCommandHandler

	GetOrder      queries.GetOrderQueryHandler
	ListBids      queries.ListBidsQueryHandler
	GetStanding   queries.GetUserStandingQueryHandler
	GetAccount    queries.GetAccountQueryHandler
	GetChefRating queries.GetChefRatingQueryHandler
	ListPending   queries.ListPendingFeedbackQueryHandler
	ListFlagged   queries.ListFlaggedAnswersQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/users", s.CreateUser)
	api.GET("/users/:id/standing", s.GetStanding, requireActor)
	api.POST("/users/:id/reinstatement", s.ReinstateUser, requireActor)

	api.GET("/accounts/:id", s.GetAccount, requireActor)
	api.POST("/accounts/:id/deposits", s.Deposit, requireActor)

	api.POST("/orders", s.PlaceOrder, requireActor)
	api.GET("/orders/:id", s.GetOrder, requireActor)
	api.POST("/orders/:id/status", s.AdvanceOrder, requireActor)
	api.POST("/orders/:id/cancellation", s.CancelOrder, requireActor)
	api.GET("/orders/:id/bids", s.ListBids, requireActor)
	api.POST("/orders/:id/bids", s.SubmitBid, requireActor)
	api.POST("/orders/:id/assignment", s.AssignOrder, requireActor)
	api.POST("/orders/:id/chef-rating", s.RateChef, requireActor)

	api.GET("/chefs/:id/rating", s.GetChefRating)

	api.POST("/feedback", s.FileFeedback, requireActor)
	api.GET("/feedback/pending", s.ListPendingFeedback, requireActor)
	api.POST("/feedback/:id/adjudication", s.AdjudicateFeedback, requireActor)

	api.POST("/assistant/questions", s.AskAssistant, requireActor)
	api.GET("/assistant/answers/flagged", s.ListFlaggedAnswers, requireActor)
	api.POST("/assistant/answers/:id/ratings", s.RateAnswer, requireActor)
	api.POST("/assistant/answers/:id/resolution", s.ResolveAnswerFlag, requireActor)
}

// Created is the body of every 201 response.
type Created struct {
	ID string `json:"id"`
}
