package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type NewUser struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type NewDeposit struct {
	Amount kernel.Money `json:"amount"`
}

type Balance struct {
	Balance kernel.Money `json:"balance"`
}

// CreateUser handles POST /api/v1/users. Customers and VIPs get an empty account.
func (s *Server) CreateUser(c echo.Context) error {
	var req NewUser
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateUserCommand(id, req.Name, role)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.CreateUser.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetStanding handles GET /api/v1/users/:id/standing.
func (s *Server) GetStanding(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetUserStandingQuery(id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.h.GetStanding.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ReinstateUser handles POST /api/v1/users/:id/reinstatement.
func (s *Server) ReinstateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewReinstateUserCommand(id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.Reinstate.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAccount handles GET /api/v1/accounts/:id.
func (s *Server) GetAccount(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetAccountQuery(id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.h.GetAccount.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Deposit handles POST /api/v1/accounts/:id/deposits. Only the owner may deposit.
func (s *Server) Deposit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if !id.IsEqual(actor(c)) {
		return fail(c, errs.NewUnauthorizedError(actor(c), "deposit into another user's account"))
	}

	var req NewDeposit
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	cmd, err := commands.NewDepositCommand(id, req.Amount)
	if err != nil {
		return fail(c, err)
	}
	balance, err := s.h.Deposit.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, Balance{Balance: balance})
}
