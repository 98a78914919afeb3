package orderrepo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryTestSuite runs the repository against an on-disk SQLite
// database created per test.
type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	dsn := filepath.Join(suite.T().TempDir(), "orders.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}, &orderrepo.BidDTO{}))
	suite.db = db

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(db, suite.tracker)
}

func (suite *OrderRepositoryTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (suite *OrderRepositoryTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&orderrepo.LineItemDTO{}, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestAdd_DuplicateID_ReturnsError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrDuplicatedKey)
	suite.tracker.AssertNumberOfCalls(suite.T(), "TrackAggregate", 1)
}

func (suite *OrderRepositoryTestSuite) TestGet_RestoresItemsInOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(got.IsEqual(testOrder))
	suite.Equal(order.Placed, got.Status())
	suite.Require().Len(got.Items(), 2)
	suite.Equal("soup", got.Items()[0].ItemID())
	suite.Equal("bread", got.Items()[1].ItemID())
	suite.Equal(testOrder.Total().String(), got.Total().String())
	suite.Nil(got.ChefID())
	suite.Nil(got.DeliveredAt())
}

func (suite *OrderRepositoryTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestGet_TamperedTotal_ReturnsStorageFailure() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(suite.db.Exec("UPDATE orders SET total = 1 WHERE id = ?", testOrder.ID().Bytes()).Error)

	_, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrStorageFailure)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_PersistsLifecycle() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	chef := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Advance(chef, order.Preparing, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, got.Status())
	suite.Require().NotNil(got.ChefID())
	suite.True(got.ChefID().IsEqual(chef))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryTestSuite) TestListDeliveredBefore_SkipsOtherStatuses() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	deliveredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	delivered := suite.createDeliveredOrder(deliveredAt)
	placed := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, placed))

	list, err := suite.repository.ListDeliveredBefore(ctx, deliveredAt)
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.True(list[0].ID().IsEqual(delivered.ID()))
	suite.Require().Len(list[0].Bids(), 1)
	suite.Equal(order.BidAccepted, list[0].Bids()[0].Status())
}

func (suite *OrderRepositoryTestSuite) createTestOrder() *order.Order {
	soup, err := order.NewLineItem("soup", 2, kernel.MoneyFromInt(7))
	suite.Require().NoError(err)
	bread, err := order.NewLineItem("bread", 1, kernel.MoneyFromInt(3))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{soup, bread}, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

// createDeliveredOrder stores an order and drives it to Delivered through
// repository updates.
func (suite *OrderRepositoryTestSuite) createDeliveredOrder(deliveredAt time.Time) *order.Order {
	ctx := context.Background()
	o := suite.createTestOrder()
	chef, courier := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.Advance(chef, order.Preparing, deliveredAt))
	suite.Require().NoError(o.Advance(chef, order.ReadyForPickup, deliveredAt))

	bid, err := order.NewBid(kernel.NewUUID(), courier, order.BidTerms{EstimatedMinutes: 10}, deliveredAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.SubmitBid(bid))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	_, err = o.AssignBid(bid.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(o.Advance(courier, order.Delivered, deliveredAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	return o
}

func (suite *OrderRepositoryTestSuite) assertCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
