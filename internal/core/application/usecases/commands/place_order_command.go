package commands

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one item is required"))
)

// OrderItem is one requested menu item with the price quoted to the customer.
type OrderItem struct {
	ItemID    string
	Quantity  int
	UnitPrice kernel.Money
}

// PlaceOrderCommand creates an order and charges the customer for it.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("9.90")
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, []OrderItem{
//	    {ItemID: "burger", Quantity: 2, UnitPrice: price},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err = handler.Handle(ctx, cmd); errors.Is(err, errs.ErrInsufficientFunds) {
//	    // ask the customer to top up
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	items      []order.LineItem

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(orderID, customerID kernel.UUID, items []OrderItem) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c PlaceOrderCommand) CustomerID() kernel.UUID { return c.customerID }

func (c PlaceOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *PlaceOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for i, it := range items {
		li, err := order.NewLineItem(it.ItemID, it.Quantity, it.UnitPrice)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		lineItems = append(lineItems, li)
	}

	c.items = lineItems
	return nil
}
