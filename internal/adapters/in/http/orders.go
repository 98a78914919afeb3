package http

import (
	"net/http"
	"strconv"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type NewOrderItem struct {
	ItemID    string       `json:"itemId"`
	Quantity  int          `json:"quantity"`
	UnitPrice kernel.Money `json:"unitPrice"`
}

type NewOrder struct {
	Items []NewOrderItem `json:"items"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type NewBid struct {
	Fee              *kernel.Money     `json:"fee"`
	EstimatedMinutes int               `json:"estimatedMinutes"`
	Note             string            `json:"note"`
	Attributes       map[string]string `json:"attributes"`
}

type Assignment struct {
	BidID kernel.UUID `json:"bidId"`
}

type Stars struct {
	Stars int `json:"stars"`
}

// PlaceOrder handles POST /api/v1/orders on behalf of the calling customer.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	items := make([]commands.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, commands.OrderItem{ItemID: it.ItemID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(id, actor(c), items)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.PlaceOrder.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// AdvanceOrder handles POST /api/v1/orders/:id/status.
func (s *Server) AdvanceOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req StatusChange
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(id, actor(c), target)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.Advance.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancellation.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.Cancel.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBids handles GET /api/v1/orders/:id/bids[?all=true].
func (s *Server) ListBids(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	withSettled := false
	if raw := c.QueryParam("all"); raw != "" {
		if withSettled, err = strconv.ParseBool(raw); err != nil {
			return badRequest(c, "all must be a boolean")
		}
	}

	query, err := queries.NewListBidsQuery(id, actor(c), withSettled)
	if err != nil {
		return fail(c, err)
	}
	views, err := s.h.ListBids.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// SubmitBid handles POST /api/v1/orders/:id/bids for the calling delivery person.
func (s *Server) SubmitBid(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req NewBid
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	bidID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBidCommand(bidID, id, actor(c), order.BidTerms{
		Fee:              req.Fee,
		EstimatedMinutes: req.EstimatedMinutes,
		Note:             req.Note,
		Attributes:       req.Attributes,
	})
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.SubmitBid.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: bidID.String()})
}

// AssignOrder handles POST /api/v1/orders/:id/assignment.
func (s *Server) AssignOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req Assignment
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAssignOrderCommand(id, actor(c), req.BidID)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.Assign.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RateChef handles POST /api/v1/orders/:id/chef-rating.
func (s *Server) RateChef(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req Stars
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRateChefCommand(id, actor(c), req.Stars)
	if err != nil {
		return fail(c, err)
	}
	if err = s.h.RateChef.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetChefRating handles GET /api/v1/chefs/:id/rating.
func (s *Server) GetChefRating(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetChefRatingQuery(id)
	if err != nil {
		return fail(c, err)
	}
	view, err := s.h.GetChefRating.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
