package listingrepo_test

import (
	"context"
	"testing"
	"time"

	"agromarket/internal/adapters/out/postgres/listingrepo"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
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

// ListingRepositoryIntegrationTestSuite provides integration tests for ListingRepository
// using PostgreSQL containers to verify database persistence behavior.
type ListingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *listingrepo.GormListingRepository
	tracker    *MockAggregateTracker
}

func (suite *ListingRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&listingrepo.ListingDTO{}))
}

func (suite *ListingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE listings").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = listingrepo.NewGormListingRepository(suite.db, suite.tracker)
}

func (suite *ListingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListingRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.createTestListing(100)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.SellerID(), retrieved.SellerID())
	suite.Equal(listing.KindCrop, retrieved.Kind())
	suite.Equal("Organic Wheat", retrieved.Name())
	suite.Equal(100, retrieved.Available())
	suite.True(original.UnitPrice().IsEqual(retrieved.UnitPrice()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestGet_NonExistentListing_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ListingRepositoryIntegrationTestSuite) TestUpdate_PersistsStockToZero() {
	ctx := context.Background()

	original := suite.createTestListing(25)
	suite.tracker.On("TrackAggregate", original.ID(), original).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	// Drain the stock completely; zero must survive the write.
	suite.Require().NoError(original.Reserve(25))
	suite.Require().NoError(suite.repository.Update(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.Available())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestUpdate_NonExistentListing_ReturnsError() {
	ctx := context.Background()

	missing := suite.createTestListing(10)
	err := suite.repository.Update(ctx, missing)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *ListingRepositoryIntegrationTestSuite) createTestListing(available int) *listing.Listing {
	unitPrice, err := kernel.NewMoney(28, "INR")
	suite.Require().NoError(err)

	l, err := listing.NewListing(
		kernel.NewUUID(), kernel.NewUUID(), listing.KindCrop, "Organic Wheat", available, unitPrice,
	)
	suite.Require().NoError(err)
	return l
}

func TestListingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ListingRepositoryIntegrationTestSuite))
}
