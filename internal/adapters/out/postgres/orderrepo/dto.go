// Package orderrepo maps the order aggregate to the orders, order_items and
// order_bids tables. Money columns are exact numerics; bid attributes are a
// JSON object in a text column.
package orderrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is indexed by status and delivery time for the auto-close scan.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ChefID      *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Status      int             `gorm:"index:idx_orders_status_delivered;not null"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	DeliveredAt *time.Time      `gorm:"index:idx_orders_status_delivered"`

	Items []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Bids  []BidDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO rows are written once, with the order.
type LineItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ItemID    string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

// BidDTO keeps submission order in Position.
type BidDTO struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID        `gorm:"type:uuid;index;not null"`
	DeliveryID       uuid.UUID        `gorm:"type:uuid;index;not null"`
	Position         int              `gorm:"not null"`
	Status           int              `gorm:"not null"`
	Fee              *decimal.Decimal `gorm:"type:numeric(14,2)"`
	EstimatedMinutes int
	Note             string
	Attributes       string
	SubmittedAt      time.Time `gorm:"not null"`
}

func (BidDTO) TableName() string {
	return "order_bids"
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	dto := OrderDTO{
		ID:          o.ID().Bytes(),
		CustomerID:  o.CustomerID().Bytes(),
		ChefID:      rawID(o.ChefID()),
		DeliveryID:  rawID(o.DeliveryID()),
		Status:      int(o.Status()),
		Total:       o.Total().Decimal(),
		CreatedAt:   o.CreatedAt(),
		DeliveredAt: o.DeliveredAt(),
	}

	for i, li := range o.Items() {
		dto.Items = append(dto.Items, LineItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			ItemID:    li.ItemID(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice().Decimal(),
		})
	}

	bids, err := bidsFromDomain(dto.ID, o.Bids())
	if err != nil {
		return OrderDTO{}, err
	}
	dto.Bids = bids

	return dto, nil
}

func bidsFromDomain(orderID uuid.UUID, bids []order.Bid) ([]BidDTO, error) {
	out := make([]BidDTO, 0, len(bids))
	for i, b := range bids {
		terms := b.Terms()

		var fee *decimal.Decimal
		if terms.Fee != nil {
			d := terms.Fee.Decimal()
			fee = &d
		}

		var attrs string
		if len(terms.Attributes) > 0 {
			raw, err := json.Marshal(terms.Attributes)
			if err != nil {
				return nil, fmt.Errorf("encode bid attributes: %w", err)
			}
			attrs = string(raw)
		}

		out = append(out, BidDTO{
			ID:               b.ID().Bytes(),
			OrderID:          orderID,
			DeliveryID:       b.DeliveryID().Bytes(),
			Position:         i,
			Status:           int(b.Status()),
			Fee:              fee,
			EstimatedMinutes: terms.EstimatedMinutes,
			Note:             terms.Note,
			Attributes:       attrs,
			SubmittedAt:      b.SubmittedAt(),
		})
	}
	return out, nil
}

// toDomain expects Items and Bids sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	chefID, err := domainID(dto.ChefID)
	if err != nil {
		return nil, err
	}
	deliveryID, err := domainID(dto.DeliveryID)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		li, err := order.NewLineItem(it.ItemID, it.Quantity, kernel.NewMoney(it.UnitPrice))
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}

	bids := make([]order.Bid, 0, len(dto.Bids))
	for _, b := range dto.Bids {
		bid, err := bidToDomain(b)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}

	o, err := order.RestoreOrder(
		id,
		customerID,
		items,
		order.Status(dto.Status),
		chefID,
		deliveryID,
		bids,
		dto.CreatedAt,
		dto.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}

	// Guards against rows edited behind the engine's back.
	if !o.Total().Decimal().Equal(dto.Total) {
		return nil, fmt.Errorf("stored total %s does not match items total %s", dto.Total, o.Total())
	}
	return o, nil
}

func bidToDomain(b BidDTO) (order.Bid, error) {
	id, err := kernel.UUIDFromBytes(b.ID[:])
	if err != nil {
		return order.Bid{}, err
	}
	deliveryID, err := kernel.UUIDFromBytes(b.DeliveryID[:])
	if err != nil {
		return order.Bid{}, err
	}

	terms := order.BidTerms{EstimatedMinutes: b.EstimatedMinutes, Note: b.Note}
	if b.Fee != nil {
		fee := kernel.NewMoney(*b.Fee)
		terms.Fee = &fee
	}
	if b.Attributes != "" {
		if err = json.Unmarshal([]byte(b.Attributes), &terms.Attributes); err != nil {
			return order.Bid{}, fmt.Errorf("decode bid attributes: %w", err)
		}
	}

	return order.RestoreBid(id, deliveryID, terms, b.SubmittedAt, order.BidStatus(b.Status))
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
