package queries_test

import (
	"context"
	"testing"
	"time"

	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetBuyerOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetBuyerOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetBuyerOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetBuyerOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyRequestedBuyersOrders() {
	ctx := context.Background()
	buyer := suite.newParty("Asha Patel", "asha@example.com")
	otherBuyer := suite.newParty("Meena Iyer", "meena@example.com")

	mine := suite.placeOrder(ctx, buyer, time.Now().Add(-time.Hour))
	suite.placeOrder(ctx, otherBuyer, time.Now())

	query, err := queries.NewGetBuyerOrdersQuery(buyer.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal("Organic Wheat", result[0].ItemName)
	suite.Equal(order.Pending, result[0].Status)
	suite.Equal("Ravi Kumar", result[0].SellerName)
	suite.True(mine.TotalAmount().IsEqual(result[0].TotalAmount))
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) TestHandle_OrdersNewestFirst() {
	ctx := context.Background()
	buyer := suite.newParty("Asha Patel", "asha@example.com")

	oldest := suite.placeOrder(ctx, buyer, time.Now().Add(-72*time.Hour))
	middle := suite.placeOrder(ctx, buyer, time.Now().Add(-24*time.Hour))
	newest := suite.placeOrder(ctx, buyer, time.Now())

	query, err := queries.NewGetBuyerOrdersQuery(buyer.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(newest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(oldest.ID(), result[2].ID)
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) TestHandle_NotConstructedQuery_ReturnsError() {
	var query queries.GetBuyerOrdersQuery
	_, err := suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, queries.ErrGetBuyerOrdersQueryIsNotConstructed)
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) newParty(name, email string) order.Party {
	p, err := order.NewParty(kernel.NewUUID(), name, email)
	suite.Require().NoError(err)
	return p
}

func (suite *GetBuyerOrdersQueryHandlerTestSuite) placeOrder(
	ctx context.Context, buyer order.Party, placedAt time.Time,
) *order.Order {
	seller := suite.newParty("Ravi Kumar", "ravi@example.com")
	item, err := order.NewItemRef(kernel.NewUUID(), order.ItemKindCrop, "Organic Wheat")
	suite.Require().NoError(err)
	unitPrice, err := kernel.NewMoney(28, "INR")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("MG Road 12", "Pune", "Maharashtra", "411001", nil)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), buyer, seller, item, 25, unitPrice, address, order.CashOnDelivery, placedAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	return o
}

func TestGetBuyerOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetBuyerOrdersQueryHandlerTestSuite))
}
