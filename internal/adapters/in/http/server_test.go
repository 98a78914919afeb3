package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/casbinauth"
	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/keylock"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory struct{ store *memory.Store }

func (f uowFactory) Create() commands.UoW { return f.store.Create() }

type accountUoWFactory struct{ store *memory.Store }

func (f accountUoWFactory) Create() commands.AccountUoW { return f.store.Create() }

type answerUoWFactory struct{ store *memory.Store }

func (f answerUoWFactory) Create() commands.AnswerUoW { return f.store.Create() }

type cannedAssistant struct{}

func (cannedAssistant) Ask(_ context.Context, _ string) (ports.Reply, error) {
	return ports.Reply{Text: "Yes, every dish can be made gluten free.", Confidence: 0.9, Source: "kb:1"}, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store := memory.NewStore()
	authz, err := casbinauth.NewDefaultAuthorizer()
	require.NoError(t, err)
	standing, err := services.NewStandingService(services.WarnFiler)
	require.NoError(t, err)

	gate := commands.NewGate(keylock.New(), authz, time.Second)
	uows := uowFactory{store}
	accounts := accountUoWFactory{store}
	answers := answerUoWFactory{store}
	vip := services.NewVIPEvaluator()

	server := api.NewServer(api.Handlers{
		CreateUser:  commands.NewCreateUserCommandHandler(accounts),
		Deposit:     commands.NewDepositCommandHandler(accounts, gate),
		PlaceOrder:  commands.NewPlaceOrderCommandHandler(uows, gate),
		Advance:     commands.NewAdvanceOrderStatusCommandHandler(uows, gate, vip),
		Cancel:      commands.NewCancelOrderCommandHandler(uows, gate),
		SubmitBid:   commands.NewSubmitBidCommandHandler(uows, gate),
		Assign:      commands.NewAssignOrderCommandHandler(uows, gate, services.NewOrderDispatcher()),
		File:        commands.NewFileFeedbackCommandHandler(uows, gate),
		Adjudicate:  commands.NewAdjudicateFeedbackCommandHandler(uows, gate, standing),
		RateChef:    commands.NewRateChefCommandHandler(uows, gate),
		Reinstate:   commands.NewReinstateUserCommandHandler(accounts, gate),
		Ask:         commands.NewAskAssistantCommandHandler(answers, gate, cannedAssistant{}),
		RateAnswer:  commands.NewRateAnswerCommandHandler(answers, gate),
		ResolveFlag: commands.NewResolveAnswerFlagCommandHandler(answers, gate),

		GetOrder:      queries.NewGetOrderQueryHandler(store, authz),
		ListBids:      queries.NewListBidsQueryHandler(store, authz),
		GetStanding:   queries.NewGetUserStandingQueryHandler(store),
		GetAccount:    queries.NewGetAccountQueryHandler(store),
		GetChefRating: queries.NewGetChefRatingQueryHandler(store),
		ListPending:   queries.NewListPendingFeedbackQueryHandler(store, authz),
		ListFlagged:   queries.NewListFlaggedAnswersQueryHandler(store, authz),
	})

	e := echo.New()
	server.Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, actor, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != "" {
		req.Header.Set(api.ActorHeader, actor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func register(t *testing.T, e *echo.Echo, name, role string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/v1/users", "", `{"name":"`+name+`","role":"`+role+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.Created](t, rec).ID
}

// deliver drives a placed order to Delivered through the API.
func deliver(t *testing.T, e *echo.Echo, orderID, chef, courier, manager string) {
	t.Helper()
	for _, status := range []string{"Preparing", "ReadyForPickup"} {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/status", chef, `{"status":"`+status+`"}`)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	}
	rec := do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/bids", courier, `{"estimatedMinutes":15}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bidID := decode[api.Created](t, rec).ID
	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/assignment", manager, `{"bidId":"`+bidID+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/status", courier, `{"status":"Delivered"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_ActorHeader(t *testing.T) {
	e := newTestServer(t)

	t.Run("should reject requests without an actor", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/feedback/pending", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MissingActor", decode[api.Error](t, rec).Kind)
	})

	t.Run("should reject malformed actor ids", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/feedback/pending", "not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should report unknown actors as not found", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/feedback/pending", "9b2f4a52-2f1d-4a55-8f0e-5d2f2b7c1a10", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_OrderFlow(t *testing.T) {
	e := newTestServer(t)
	customer := register(t, e, "Ada", "Customer")
	chef := register(t, e, "Remy", "Chef")
	courier := register(t, e, "Flash", "Delivery")
	manager := register(t, e, "Gusteau", "Manager")

	rec := do(t, e, http.MethodPost, "/api/v1/accounts/"+customer+"/deposits", customer, `{"amount":"40"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "40.00", decode[api.Balance](t, rec).Balance.String())

	t.Run("should refuse orders above the balance", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders", customer,
			`{"items":[{"itemId":"lobster","quantity":1,"unitPrice":"99.00"}]}`)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Equal(t, "InsufficientFunds", decode[api.Error](t, rec).Kind)
	})

	rec = do(t, e, http.MethodPost, "/api/v1/orders", customer,
		`{"items":[{"itemId":"soup","quantity":2,"unitPrice":"12.50"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderID := decode[api.Created](t, rec).ID

	rec = do(t, e, http.MethodGet, "/api/v1/orders/"+orderID, customer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[queries.OrderView](t, rec)
	assert.Equal(t, "Placed", view.Status)
	assert.Equal(t, "25.00", view.Total.String())

	rec = do(t, e, http.MethodGet, "/api/v1/accounts/"+customer, customer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "15.00", decode[queries.AccountView](t, rec).Balance.String())

	t.Run("should reject off-table transitions", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/status", chef, `{"status":"Delivered"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "InvalidTransition", decode[api.Error](t, rec).Kind)
	})

	for _, status := range []string{"Preparing", "ReadyForPickup"} {
		rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/status", chef, `{"status":"`+status+`"}`)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/bids", courier,
		`{"fee":"4.50","estimatedMinutes":20,"attributes":{"vehicle":"bike"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bidID := decode[api.Created](t, rec).ID

	t.Run("should hide bids from non-managers", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/orders/"+orderID+"/bids", courier, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	rec = do(t, e, http.MethodGet, "/api/v1/orders/"+orderID+"/bids", manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	bids := decode[[]queries.BidView](t, rec)
	require.Len(t, bids, 1)
	assert.Equal(t, "bike", bids[0].Attributes["vehicle"])
	require.NotNil(t, bids[0].Fee)
	assert.Equal(t, "4.50", bids[0].Fee.String())

	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/assignment", manager, `{"bidId":"`+bidID+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/v1/orders/"+orderID+"/bids", manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]queries.BidView](t, rec))

	rec = do(t, e, http.MethodGet, "/api/v1/orders/"+orderID+"/bids?all=true", manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	settled := decode[[]queries.BidView](t, rec)
	require.Len(t, settled, 1)
	assert.Equal(t, "Accepted", settled[0].Status)

	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/status", courier, `{"status":"Delivered"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/chef-rating", customer, `{"stars":4}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/v1/orders/"+orderID+"/chef-rating", customer, `{"stars":5}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "AlreadyRated", decode[api.Error](t, rec).Kind)

	rec = do(t, e, http.MethodGet, "/api/v1/chefs/"+chef+"/rating", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rating := decode[queries.ChefRatingView](t, rec)
	assert.Equal(t, 1, rating.Count)
	require.NotNil(t, rating.Average)
	assert.InDelta(t, 4.0, *rating.Average, 1e-9)
}

func TestServer_FeedbackFlow(t *testing.T) {
	e := newTestServer(t)
	customer := register(t, e, "Ada", "Customer")
	chef := register(t, e, "Remy", "Chef")
	courier := register(t, e, "Flash", "Delivery")
	manager := register(t, e, "Gusteau", "Manager")

	rec := do(t, e, http.MethodPost, "/api/v1/accounts/"+customer+"/deposits", customer, `{"amount":"20"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, e, http.MethodPost, "/api/v1/orders", customer,
		`{"items":[{"itemId":"tea","quantity":1,"unitPrice":"3"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decode[api.Created](t, rec).ID
	deliver(t, e, orderID, chef, courier, manager)

	rec = do(t, e, http.MethodPost, "/api/v1/feedback", customer,
		`{"targetId":"`+chef+`","orderId":"`+orderID+`","kind":"complaint","category":"quality","description":"cold"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	feedbackID := decode[api.Created](t, rec).ID

	rec = do(t, e, http.MethodGet, "/api/v1/feedback/pending", customer, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/v1/feedback/pending", manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decode[[]queries.FeedbackView](t, rec)
	require.Len(t, pending, 1)
	assert.Equal(t, feedbackID, pending[0].ID.String())

	rec = do(t, e, http.MethodPost, "/api/v1/feedback/"+feedbackID+"/adjudication", manager,
		`{"outcome":"reject","notes":"unfounded"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/v1/users/"+customer+"/standing", customer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	standing := decode[queries.StandingView](t, rec)
	assert.Equal(t, 1, standing.WarningCount)

	rec = do(t, e, http.MethodGet, "/api/v1/users/"+customer+"/standing", chef, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_Assistant(t *testing.T) {
	e := newTestServer(t)
	customer := register(t, e, "Ada", "Customer")
	manager := register(t, e, "Gusteau", "Manager")

	rec := do(t, e, http.MethodPost, "/api/v1/assistant/questions", customer, `{"question":"gluten free?"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	answer := decode[queries.AnswerView](t, rec)
	assert.Equal(t, "kb:1", answer.Source)

	rec = do(t, e, http.MethodPost, "/api/v1/assistant/answers/"+answer.ID.String()+"/ratings", customer, `{"stars":0}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/v1/assistant/answers/flagged", manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]queries.AnswerView](t, rec), 1)

	rec = do(t, e, http.MethodPost, "/api/v1/assistant/answers/"+answer.ID.String()+"/resolution", manager, "")
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/v1/assistant/answers/flagged", manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]queries.AnswerView](t, rec))
}

func TestServer_InputErrors(t *testing.T) {
	e := newTestServer(t)
	customer := register(t, e, "Ada", "Customer")
	other := register(t, e, "Bob", "Customer")

	t.Run("should reject unknown roles", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/users", "", `{"name":"X","role":"Sommelier"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject malformed path ids", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/orders/abc", customer, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject deposits into another account", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/accounts/"+other+"/deposits", customer, `{"amount":"5"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should reject non-positive deposits", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/accounts/"+customer+"/deposits", customer, `{"amount":"0"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject orders without items", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/orders", customer, `{"items":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
