package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("Asha Patel", retrieved.Buyer().Name())
	suite.Equal("asha@example.com", retrieved.Buyer().Email())
	suite.Equal("Ravi Kumar", retrieved.Seller().Name())
	suite.Equal("Organic Wheat", retrieved.Item().Name())
	suite.Equal(order.ItemKindCrop, retrieved.Item().Kind())
	suite.Equal(25, retrieved.Quantity())
	suite.True(original.UnitPrice().IsEqual(retrieved.UnitPrice()))
	suite.True(original.TotalAmount().IsEqual(retrieved.TotalAmount()))
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(order.CashOnDelivery, retrieved.PaymentMethod())
	suite.Equal(order.PaymentPending, retrieved.PaymentStatus())
	suite.True(original.ShippingAddress().IsEqual(retrieved.ShippingAddress()))
	suite.Nil(retrieved.ExpectedDelivery())
	suite.Nil(retrieved.ActualDelivery())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrieved, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusLifecycle() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(4)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// pending -> confirmed
	prior := testOrder.Status()
	_, err := testOrder.ChangeStatus(order.ActorSeller, order.Confirmed, order.TransitionOptions{}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, prior))

	// confirmed -> in_transit with tracking number
	prior = testOrder.Status()
	tracking := "TRK123456789"
	_, err = testOrder.ChangeStatus(
		order.ActorSeller, order.InTransit, order.TransitionOptions{TrackingID: &tracking}, time.Now(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, prior))

	// in_transit -> delivered stamps the delivery time
	prior = testOrder.Status()
	_, err = testOrder.ChangeStatus(order.ActorSeller, order.Delivered, order.TransitionOptions{}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, prior))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, retrieved.Status())
	suite.Equal("TRK123456789", retrieved.TrackingID())
	suite.NotNil(retrieved.ActualDelivery())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentStatusChange_ReturnsConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// A rival request confirms the order first.
	rival, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	_, err = rival.ChangeStatus(order.ActorSeller, order.Confirmed, order.TransitionOptions{}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, rival, order.Pending))

	// Our stale copy still believes the order is pending.
	reason := "changed my mind"
	_, err = testOrder.ChangeStatus(
		order.ActorBuyer, order.Cancelled, order.TransitionOptions{CancellationReason: &reason}, time.Now(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, testOrder, order.Pending)
	suite.Require().ErrorIs(err, ports.ErrOrderConcurrentlyModified)

	// The rival's write survives.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	missing := suite.createTestOrder()
	err := suite.repository.Update(ctx, missing, order.Pending)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPendingOlderThan_FiltersByStatusAndAge() {
	ctx := context.Background()

	staleOrder := suite.createTestOrderAt(time.Now().Add(-48 * time.Hour))
	freshOrder := suite.createTestOrderAt(time.Now())
	confirmedOrder := suite.createTestOrderAt(time.Now().Add(-48 * time.Hour))
	_, err := confirmedOrder.ChangeStatus(order.ActorSeller, order.Confirmed, order.TransitionOptions{}, time.Now())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, staleOrder))
	suite.Require().NoError(suite.repository.Add(ctx, freshOrder))
	suite.Require().NoError(suite.repository.Add(ctx, confirmedOrder))

	stale, err := suite.repository.GetPendingOlderThan(ctx, time.Now().Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.Equal(staleOrder.ID(), stale[0].ID())
	suite.Equal(order.Pending, stale[0].Status())

	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				nonExistentID := kernel.NewUUID()
				_, err := suite.repository.Get(context.Background(), nonExistentID)
				return err
			},
			expected: "not found",
		},
		{
			name: "update with invalid expected status",
			operation: func() error {
				testOrder := suite.createTestOrder()
				return suite.repository.Update(context.Background(), testOrder, order.Unknown)
			},
			expected: "invalid",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// TestOrderRepository_Concurrency verifies repository behavior under concurrent access.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_Concurrency() {
	ctx := context.Background()

	initialOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", initialOrder.ID(), initialOrder).Once()
	err := suite.repository.Add(ctx, initialOrder)
	suite.Require().NoError(err)

	// Simulate concurrent reads
	results := make(chan *order.Order, 3)
	errCh := make(chan error, 3)

	for range 3 {
		go func() {
			retrieved, readErr := suite.repository.Get(ctx, initialOrder.ID())
			if readErr != nil {
				errCh <- readErr
			} else {
				results <- retrieved
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.Equal(initialOrder.ID(), result.ID())
		case readErr := <-errCh:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic pending order with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	return suite.createTestOrderAt(time.Now())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderAt(placedAt time.Time) *order.Order {
	buyer, err := order.NewParty(kernel.NewUUID(), "Asha Patel", "asha@example.com")
	suite.Require().NoError(err)
	seller, err := order.NewParty(kernel.NewUUID(), "Ravi Kumar", "ravi@example.com")
	suite.Require().NoError(err)
	item, err := order.NewItemRef(kernel.NewUUID(), order.ItemKindCrop, "Organic Wheat")
	suite.Require().NoError(err)
	unitPrice, err := kernel.NewMoney(28, "INR")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("MG Road 12", "Pune", "Maharashtra", "411001", nil)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), buyer, seller, item, 25, unitPrice, address, order.CashOnDelivery, placedAt,
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
