package cmd

import (
	"fmt"
	"log/slog"

	api "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/casbinauth"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	authorizer ports.Authorizer
	assistant  ports.Assistant
	gate       commands.Gate
	standing   services.StandingService
	vip        services.VIPEvaluator
}

func NewCompositionRoot(
	cfg Config,
	logger *slog.Logger,
	uowFactory ports.UnitOfWorkFactory,
	locker ports.Locker,
	assistant ports.Assistant,
) (CompositionRoot, error) {
	authorizer, err := casbinauth.NewDefaultAuthorizer()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to build authorizer: %w", err)
	}
	recipient, err := services.ParseWarningRecipient(cfg.WarningRecipient)
	if err != nil {
		return CompositionRoot{}, err
	}
	standing, err := services.NewStandingService(recipient)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: uowFactory,
		authorizer: authorizer,
		assistant:  assistant,
		gate:       commands.NewGate(locker, authorizer, cfg.LockWait),
		standing:   standing,
		vip:        services.NewVIPEvaluator(),
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) accountUoW() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) answerUoW() commands.AnswerUoWFactory {
	return FuncAnswerUoWFactory(func() commands.AnswerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.accountUoW())
}

func (c *CompositionRoot) CreateDepositCommandHandler() commands.DepositCommandHandler {
	return commands.NewDepositCommandHandler(c.accountUoW(), c.gate)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.uow(), c.gate)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.uow(), c.gate, c.vip)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uow(), c.gate)
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.uow(), c.gate)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uow(), c.gate, services.NewOrderDispatcher())
}

func (c *CompositionRoot) CreateFileFeedbackCommandHandler() commands.FileFeedbackCommandHandler {
	return commands.NewFileFeedbackCommandHandler(c.uow(), c.gate)
}

func (c *CompositionRoot) CreateAdjudicateFeedbackCommandHandler() commands.AdjudicateFeedbackCommandHandler {
	return commands.NewAdjudicateFeedbackCommandHandler(c.uow(), c.gate, c.standing)
}

func (c *CompositionRoot) CreateRateChefCommandHandler() commands.RateChefCommandHandler {
	return commands.NewRateChefCommandHandler(c.uow(), c.gate)
}

func (c *CompositionRoot) CreateReinstateUserCommandHandler() commands.ReinstateUserCommandHandler {
	return commands.NewReinstateUserCommandHandler(c.accountUoW(), c.gate)
}

func (c *CompositionRoot) CreateAskAssistantCommandHandler() commands.AskAssistantCommandHandler {
	return commands.NewAskAssistantCommandHandler(c.answerUoW(), c.gate, c.assistant)
}

func (c *CompositionRoot) CreateRateAnswerCommandHandler() commands.RateAnswerCommandHandler {
	return commands.NewRateAnswerCommandHandler(c.answerUoW(), c.gate)
}

func (c *CompositionRoot) CreateResolveAnswerFlagCommandHandler() commands.ResolveAnswerFlagCommandHandler {
	return commands.NewResolveAnswerFlagCommandHandler(c.answerUoW(), c.gate)
}

func (c *CompositionRoot) CreateCloseDeliveredOrdersCommandHandler() commands.CloseDeliveredOrdersCommandHandler {
	return commands.NewCloseDeliveredOrdersCommandHandler(c.uow(), c.gate, c.vip)
}

// HTTPHandlers bundles every use case the HTTP server exposes.
func (c *CompositionRoot) HTTPHandlers() api.Handlers {
	return api.Handlers{
		CreateUser:  c.CreateCreateUserCommandHandler(),
		Deposit:     c.CreateDepositCommandHandler(),
		PlaceOrder:  c.CreatePlaceOrderCommandHandler(),
		Advance:     c.CreateAdvanceOrderStatusCommandHandler(),
		Cancel:      c.CreateCancelOrderCommandHandler(),
		SubmitBid:   c.CreateSubmitBidCommandHandler(),
		Assign:      c.CreateAssignOrderCommandHandler(),
		File:        c.CreateFileFeedbackCommandHandler(),
		Adjudicate:  c.CreateAdjudicateFeedbackCommandHandler(),
		RateChef:    c.CreateRateChefCommandHandler(),
		Reinstate:   c.CreateReinstateUserCommandHandler(),
		Ask:         c.CreateAskAssistantCommandHandler(),
		RateAnswer:  c.CreateRateAnswerCommandHandler(),
		ResolveFlag: c.CreateResolveAnswerFlagCommandHandler(),

		GetOrder:      queries.NewGetOrderQueryHandler(c.uowFactory, c.authorizer),
		ListBids:      queries.NewListBidsQueryHandler(c.uowFactory, c.authorizer),
		GetStanding:   queries.NewGetUserStandingQueryHandler(c.uowFactory),
		GetAccount:    queries.NewGetAccountQueryHandler(c.uowFactory),
		GetChefRating: queries.NewGetChefRatingQueryHandler(c.uowFactory),
		ListPending:   queries.NewListPendingFeedbackQueryHandler(c.uowFactory, c.authorizer),
		ListFlagged:   queries.NewListFlaggedAnswersQueryHandler(c.uowFactory, c.authorizer),
	}
}

// JobManager registers the scheduled jobs.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	closeHandler := c.CreateCloseDeliveredOrdersCommandHandler()

	jm := jobs.NewJobManager()
	jm.Add("order closing", jobs.NewOrderClosingJob(
		&closeHandler, c.cfg.CloseSchedule, c.cfg.CloseWindow, c.cfg.CloseTimeout, c.logger,
	))
	return jm
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncAnswerUoWFactory func() commands.AnswerUoW

func (f FuncAnswerUoWFactory) Create() commands.AnswerUoW {
	return f()
}
