package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/casbinauth"
	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/keylock"

	"github.com/stretchr/testify/require"
)

type uowFactory struct{ store *memory.Store }

func (f uowFactory) Create() commands.UoW { return f.store.Create() }

type accountUoWFactory struct{ store *memory.Store }

func (f accountUoWFactory) Create() commands.AccountUoW { return f.store.Create() }

type answerUoWFactory struct{ store *memory.Store }

func (f answerUoWFactory) Create() commands.AnswerUoW { return f.store.Create() }

type stubAssistant struct {
	reply ports.Reply
	err   error
}

func (s stubAssistant) Ask(_ context.Context, _ string) (ports.Reply, error) {
	return s.reply, s.err
}

// env wires every handler to one in-memory store, the in-process locker and
// the default capability table. manager, chef and two couriers are created up
// front.
type env struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store

	createUser   commands.CreateUserCommandHandler
	deposit      commands.DepositCommandHandler
	place        commands.PlaceOrderCommandHandler
	advance      commands.AdvanceOrderStatusCommandHandler
	cancel       commands.CancelOrderCommandHandler
	submitBid    commands.SubmitBidCommandHandler
	assign       commands.AssignOrderCommandHandler
	file         commands.FileFeedbackCommandHandler
	adjudicate   commands.AdjudicateFeedbackCommandHandler
	rateChef     commands.RateChefCommandHandler
	reinstate    commands.ReinstateUserCommandHandler
	ask          commands.AskAssistantCommandHandler
	rateAnswer   commands.RateAnswerCommandHandler
	resolveFlag  commands.ResolveAnswerFlagCommandHandler
	closeExpired commands.CloseDeliveredOrdersCommandHandler

	manager  kernel.UUID
	chef     kernel.UUID
	courierA kernel.UUID
	courierB kernel.UUID
}

func newEnv(t *testing.T, policy services.WarningRecipient) *env {
	t.Helper()

	store := memory.NewStore()
	authz, err := casbinauth.NewDefaultAuthorizer()
	require.NoError(t, err)
	standing, err := services.NewStandingService(policy)
	require.NoError(t, err)

	gate := commands.NewGate(keylock.New(), authz, 2*time.Second)
	uows := uowFactory{store}
	vip := services.NewVIPEvaluator()
	assistant := stubAssistant{reply: ports.Reply{Text: "We deliver until 23:00.", Confidence: 0.75, Source: "kb:3"}}

	e := &env{
		t:     t,
		ctx:   context.Background(),
		store: store,

		createUser:   commands.NewCreateUserCommandHandler(accountUoWFactory{store}),
		deposit:      commands.NewDepositCommandHandler(accountUoWFactory{store}, gate),
		place:        commands.NewPlaceOrderCommandHandler(uows, gate),
		advance:      commands.NewAdvanceOrderStatusCommandHandler(uows, gate, vip),
		cancel:       commands.NewCancelOrderCommandHandler(uows, gate),
		submitBid:    commands.NewSubmitBidCommandHandler(uows, gate),
		assign:       commands.NewAssignOrderCommandHandler(uows, gate, services.NewOrderDispatcher()),
		file:         commands.NewFileFeedbackCommandHandler(uows, gate),
		adjudicate:   commands.NewAdjudicateFeedbackCommandHandler(uows, gate, standing),
		rateChef:     commands.NewRateChefCommandHandler(uows, gate),
		reinstate:    commands.NewReinstateUserCommandHandler(accountUoWFactory{store}, gate),
		ask:          commands.NewAskAssistantCommandHandler(answerUoWFactory{store}, gate, assistant),
		rateAnswer:   commands.NewRateAnswerCommandHandler(answerUoWFactory{store}, gate),
		resolveFlag:  commands.NewResolveAnswerFlagCommandHandler(answerUoWFactory{store}, gate),
		closeExpired: commands.NewCloseDeliveredOrdersCommandHandler(uows, gate, vip),
	}

	e.manager = e.newUser(user.Manager)
	e.chef = e.newUser(user.Chef)
	e.courierA = e.newUser(user.Delivery)
	e.courierB = e.newUser(user.Delivery)
	return e
}

func (e *env) newUser(role user.Role) kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateUserCommand(id, role.String()+"-"+id.String()[:8], role)
	require.NoError(e.t, err)
	require.NoError(e.t, e.createUser.Handle(e.ctx, cmd))
	return id
}

// newCustomer creates a customer (or VIP) holding balance.
func (e *env) newCustomer(role user.Role, balance string) kernel.UUID {
	e.t.Helper()
	id := e.newUser(role)
	cmd, err := commands.NewDepositCommand(id, e.money(balance))
	require.NoError(e.t, err)
	_, err = e.deposit.Handle(e.ctx, cmd)
	require.NoError(e.t, err)
	return id
}

func (e *env) money(s string) kernel.Money {
	e.t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(e.t, err)
	return m
}

func (e *env) placeOrder(customerID kernel.UUID, price string) (kernel.UUID, error) {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(id, customerID, []commands.OrderItem{
		{ItemID: "dish", Quantity: 1, UnitPrice: e.money(price)},
	})
	require.NoError(e.t, err)
	return id, e.place.Handle(e.ctx, cmd)
}

func (e *env) mustPlace(customerID kernel.UUID, price string) kernel.UUID {
	e.t.Helper()
	id, err := e.placeOrder(customerID, price)
	require.NoError(e.t, err)
	return id
}

func (e *env) advanceOrder(orderID, actorID kernel.UUID, target order.Status) error {
	e.t.Helper()
	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, actorID, target)
	require.NoError(e.t, err)
	return e.advance.Handle(e.ctx, cmd)
}

// readyOrder places an order and lets the chef prepare it.
func (e *env) readyOrder(customerID kernel.UUID, price string) kernel.UUID {
	e.t.Helper()
	id := e.mustPlace(customerID, price)
	require.NoError(e.t, e.advanceOrder(id, e.chef, order.Preparing))
	require.NoError(e.t, e.advanceOrder(id, e.chef, order.ReadyForPickup))
	return id
}

func (e *env) bid(orderID, courierID kernel.UUID) (kernel.UUID, error) {
	e.t.Helper()
	bidID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBidCommand(bidID, orderID, courierID, order.BidTerms{EstimatedMinutes: 25})
	require.NoError(e.t, err)
	return bidID, e.submitBid.Handle(e.ctx, cmd)
}

func (e *env) assignBid(orderID, bidID kernel.UUID) error {
	e.t.Helper()
	cmd, err := commands.NewAssignOrderCommand(orderID, e.manager, bidID)
	require.NoError(e.t, err)
	return e.assign.Handle(e.ctx, cmd)
}

// deliveredOrder runs an order all the way to Delivered through courierID.
func (e *env) deliveredOrder(customerID, courierID kernel.UUID, price string) kernel.UUID {
	e.t.Helper()
	id := e.readyOrder(customerID, price)
	bidID, err := e.bid(id, courierID)
	require.NoError(e.t, err)
	require.NoError(e.t, e.assignBid(id, bidID))
	require.NoError(e.t, e.advanceOrder(id, courierID, order.Delivered))
	return id
}

func (e *env) fileFeedback(filer, target, orderID kernel.UUID, kind feedback.Kind) (kernel.UUID, error) {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewFileFeedbackCommand(id, filer, target, orderID, kind, feedback.CategoryService, "")
	require.NoError(e.t, err)
	return id, e.file.Handle(e.ctx, cmd)
}

func (e *env) decide(feedbackID kernel.UUID, outcome feedback.Outcome) error {
	e.t.Helper()
	cmd, err := commands.NewAdjudicateFeedbackCommand(feedbackID, e.manager, outcome, "")
	require.NoError(e.t, err)
	return e.adjudicate.Handle(e.ctx, cmd)
}

func (e *env) rate(orderID, customerID kernel.UUID, stars int) error {
	e.t.Helper()
	cmd, err := commands.NewRateChefCommand(orderID, customerID, stars)
	require.NoError(e.t, err)
	return e.rateChef.Handle(e.ctx, cmd)
}

func (e *env) read(fn func(uow ports.UnitOfWork)) {
	e.t.Helper()
	uow := e.store.Create()
	require.NoError(e.t, uow.Begin(e.ctx))
	defer func() {
		_ = uow.Rollback(e.ctx)
	}()
	fn(uow)
}

func (e *env) user(id kernel.UUID) *user.User {
	e.t.Helper()
	var u *user.User
	e.read(func(uow ports.UnitOfWork) {
		var err error
		u, err = uow.UserRepository().Get(e.ctx, id)
		require.NoError(e.t, err)
	})
	return u
}

func (e *env) account(id kernel.UUID) *account.Account {
	e.t.Helper()
	var a *account.Account
	e.read(func(uow ports.UnitOfWork) {
		var err error
		a, err = uow.AccountRepository().Get(e.ctx, id)
		require.NoError(e.t, err)
	})
	return a
}

func (e *env) order(id kernel.UUID) *order.Order {
	e.t.Helper()
	var o *order.Order
	e.read(func(uow ports.UnitOfWork) {
		var err error
		o, err = uow.OrderRepository().Get(e.ctx, id)
		require.NoError(e.t, err)
	})
	return o
}

func (e *env) score(chefID kernel.UUID) *rating.ChefScore {
	e.t.Helper()
	var s *rating.ChefScore
	e.read(func(uow ports.UnitOfWork) {
		var err error
		s, err = uow.RatingRepository().GetScore(e.ctx, chefID)
		require.NoError(e.t, err)
	})
	return s
}
