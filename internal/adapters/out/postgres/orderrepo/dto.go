// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Item snapshots live in order_items and are written and read with the order.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PublicCode    string    `gorm:"size:5;uniqueIndex:orders_public_code_key"`
	SecretCode    string    `gorm:"size:100;uniqueIndex:orders_secret_code_key"`
	ClientName    string    `gorm:"size:100"`
	ClientPhone   string    `gorm:"size:20"`
	DeliveryType  string    `gorm:"size:10"`
	Address       string    `gorm:"size:500"`
	ScheduledTime string    `gorm:"size:50"`
	Comment       string    `gorm:"size:1000"`
	TotalPrice    int
	Status        string  `gorm:"size:20"`
	AcceptedBy    *string `gorm:"size:50"`
	Version       int
	CreatedAt     time.Time
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one snapshot line. Position keeps the cart order.
type OrderItemDTO struct {
	ID           uint64    `gorm:"primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	Position     int
	ProductName  string `gorm:"size:200"`
	ProductPrice int
	Quantity     int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	details := o.Details()

	items := o.Items()
	itemDTOs := make([]OrderItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = OrderItemDTO{
			OrderID:      o.ID().Bytes(),
			Position:     i,
			ProductName:  item.ProductName(),
			ProductPrice: item.ProductPrice(),
			Quantity:     item.Quantity(),
		}
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		PublicCode:    o.PublicCode().String(),
		SecretCode:    o.SecretCode().String(),
		ClientName:    details.ClientName,
		ClientPhone:   details.ClientPhone.String(),
		DeliveryType:  details.DeliveryType.String(),
		Address:       details.Address,
		ScheduledTime: details.ScheduledTime,
		Comment:       details.Comment,
		TotalPrice:    o.TotalPrice(),
		Status:        o.Status().String(),
		AcceptedBy:    o.AcceptedBy(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		Items:         itemDTOs,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.RestoreItem(itemDTO.ProductName, itemDTO.ProductPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		order.PublicCode(dto.PublicCode),
		order.SecretCode(dto.SecretCode),
		order.Details{
			ClientName:    dto.ClientName,
			ClientPhone:   kernel.RestorePhone(dto.ClientPhone),
			DeliveryType:  order.DeliveryType(dto.DeliveryType),
			Address:       dto.Address,
			ScheduledTime: dto.ScheduledTime,
			Comment:       dto.Comment,
		},
		items,
		dto.TotalPrice,
		order.Status(dto.Status),
		dto.AcceptedBy,
		dto.CreatedAt.UTC(),
		dto.Version,
	)
}
