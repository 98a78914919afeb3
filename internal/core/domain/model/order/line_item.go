package order

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// LineItem is one menu item on an order. Prices are captured at placement.
type LineItem struct {
	itemID    string
	quantity  int
	unitPrice kernel.Money
}

func NewLineItem(itemID string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return LineItem{}, errs.NewValueIsRequiredError("item id")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := unitPrice.ValidateNonNegative("unit price"); err != nil {
		return LineItem{}, err
	}

	return LineItem{itemID: itemID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (li LineItem) ItemID() string { return li.itemID }

func (li LineItem) Quantity() int { return li.quantity }

func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }

// Subtotal is quantity × unit price.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Mul(li.quantity)
}
