// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Buyer and seller contact details are denormalized onto the row so order
// history and notifications survive later profile edits.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID            uuid.UUID  `gorm:"type:uuid;index"`
	BuyerName          string
	BuyerEmail         string
	SellerID           uuid.UUID  `gorm:"type:uuid;index"`
	SellerName         string
	SellerEmail        string
	ItemID             uuid.UUID  `gorm:"type:uuid"`
	ItemKind           int
	ItemName           string
	Quantity           int
	UnitPriceAmount    int64
	TotalAmount        int64
	Currency           string     `gorm:"type:varchar(3)"`
	Status             int        `gorm:"index"`
	PaymentMethod      int
	PaymentStatus      int
	Shipping           AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	OrderDate          time.Time  `gorm:"index"`
	ExpectedDelivery   *time.Time
	ActualDelivery     *time.Time
	TrackingID         string
	Notes              string
	CancellationReason string
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping address within the order table.
type AddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string
	GeoLat     *float64
	GeoLng     *float64
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	address := aggregate.ShippingAddress()
	shipping := AddressDTO{
		Street:     address.Street(),
		City:       address.City(),
		State:      address.State(),
		PostalCode: address.PostalCode(),
	}
	if geo := address.Geo(); geo != nil {
		shipping.GeoLat = &geo.Latitude
		shipping.GeoLng = &geo.Longitude
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		BuyerID:            aggregate.Buyer().ID().Bytes(),
		BuyerName:          aggregate.Buyer().Name(),
		BuyerEmail:         aggregate.Buyer().Email(),
		SellerID:           aggregate.Seller().ID().Bytes(),
		SellerName:         aggregate.Seller().Name(),
		SellerEmail:        aggregate.Seller().Email(),
		ItemID:             aggregate.Item().ID().Bytes(),
		ItemKind:           int(aggregate.Item().Kind()),
		ItemName:           aggregate.Item().Name(),
		Quantity:           aggregate.Quantity(),
		UnitPriceAmount:    aggregate.UnitPrice().Amount(),
		TotalAmount:        aggregate.TotalAmount().Amount(),
		Currency:           aggregate.UnitPrice().Currency(),
		Status:             int(aggregate.Status()),
		PaymentMethod:      int(aggregate.PaymentMethod()),
		PaymentStatus:      int(aggregate.PaymentStatus()),
		Shipping:           shipping,
		OrderDate:          aggregate.OrderDate(),
		ExpectedDelivery:   aggregate.ExpectedDelivery(),
		ActualDelivery:     aggregate.ActualDelivery(),
		TrackingID:         aggregate.TrackingID(),
		Notes:              aggregate.Notes(),
		CancellationReason: aggregate.CancellationReason(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder so enum ranges and
// value objects are revalidated on the way out of storage.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	buyer, err := order.NewParty(buyerID, dto.BuyerName, dto.BuyerEmail)
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	seller, err := order.NewParty(sellerID, dto.SellerName, dto.SellerEmail)
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	item, err := order.NewItemRef(itemID, order.ItemKind(dto.ItemKind), dto.ItemName)
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPriceAmount, dto.Currency)
	if err != nil {
		return nil, err
	}
	totalAmount, err := kernel.NewMoney(dto.TotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	var geo *kernel.GeoPoint
	if dto.Shipping.GeoLat != nil && dto.Shipping.GeoLng != nil {
		geo = &kernel.GeoPoint{Latitude: *dto.Shipping.GeoLat, Longitude: *dto.Shipping.GeoLng}
	}
	address, err := kernel.NewAddress(
		dto.Shipping.Street, dto.Shipping.City, dto.Shipping.State, dto.Shipping.PostalCode, geo,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		Buyer:              buyer,
		Seller:             seller,
		Item:               item,
		Quantity:           dto.Quantity,
		UnitPrice:          unitPrice,
		TotalAmount:        totalAmount,
		Status:             order.Status(dto.Status),
		PaymentMethod:      order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:      order.PaymentStatus(dto.PaymentStatus),
		ShippingAddress:    address,
		OrderDate:          dto.OrderDate,
		ExpectedDelivery:   dto.ExpectedDelivery,
		ActualDelivery:     dto.ActualDelivery,
		TrackingID:         dto.TrackingID,
		Notes:              dto.Notes,
		CancellationReason: dto.CancellationReason,
	})
}
