package queries

import (
	"time"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/domain/model/user"
)

type LineItemView struct {
	ItemID    string       `json:"itemId"`
	Quantity  int          `json:"quantity"`
	UnitPrice kernel.Money `json:"unitPrice"`
	Subtotal  kernel.Money `json:"subtotal"`
}

type OrderView struct {
	ID          kernel.UUID    `json:"id"`
	CustomerID  kernel.UUID    `json:"customerId"`
	ChefID      *kernel.UUID   `json:"chefId,omitempty"`
	DeliveryID  *kernel.UUID   `json:"deliveryId,omitempty"`
	Status      string         `json:"status"`
	Items       []LineItemView `json:"items"`
	Total       kernel.Money   `json:"total"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeliveredAt *time.Time     `json:"deliveredAt,omitempty"`
}

func newOrderView(o *order.Order) OrderView {
	v := OrderView{
		ID:          o.ID(),
		CustomerID:  o.CustomerID(),
		ChefID:      o.ChefID(),
		DeliveryID:  o.DeliveryID(),
		Status:      o.Status().String(),
		Total:       o.Total(),
		CreatedAt:   o.CreatedAt(),
		DeliveredAt: o.DeliveredAt(),
	}
	for _, li := range o.Items() {
		v.Items = append(v.Items, LineItemView{
			ItemID:    li.ItemID(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice(),
			Subtotal:  li.Subtotal(),
		})
	}
	return v
}

type BidView struct {
	ID               kernel.UUID       `json:"id"`
	DeliveryID       kernel.UUID       `json:"deliveryId"`
	Status           string            `json:"status"`
	Fee              *kernel.Money     `json:"fee,omitempty"`
	EstimatedMinutes int               `json:"estimatedMinutes,omitempty"`
	Note             string            `json:"note,omitempty"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	SubmittedAt      time.Time         `json:"submittedAt"`
}

func newBidView(b order.Bid) BidView {
	terms := b.Terms()
	return BidView{
		ID:               b.ID(),
		DeliveryID:       b.DeliveryID(),
		Status:           b.Status().String(),
		Fee:              terms.Fee,
		EstimatedMinutes: terms.EstimatedMinutes,
		Note:             terms.Note,
		Attributes:       terms.Attributes,
		SubmittedAt:      b.SubmittedAt(),
	}
}

type WarningView struct {
	ID       kernel.UUID  `json:"id"`
	CauseID  *kernel.UUID `json:"causeId,omitempty"`
	Reason   string       `json:"reason"`
	IssuedAt time.Time    `json:"issuedAt"`
	Pardoned bool         `json:"pardoned"`
}

// StandingView is a user's role and reputation. WarningCount counts active
// (unpardoned) warnings; Warnings is the full log in issuance order.
type StandingView struct {
	ID           kernel.UUID   `json:"id"`
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	VIP          bool          `json:"vip"`
	Blacklisted  bool          `json:"blacklisted"`
	WarningCount int           `json:"warningCount"`
	Warnings     []WarningView `json:"warnings"`
}

func newStandingView(u *user.User) StandingView {
	v := StandingView{
		ID:           u.ID(),
		Name:         u.Name(),
		Role:         u.Role().String(),
		VIP:          u.IsVIP(),
		Blacklisted:  u.IsBlacklisted(),
		WarningCount: u.WarningCount(),
		Warnings:     make([]WarningView, 0, len(u.Warnings())),
	}
	for _, w := range u.Warnings() {
		v.Warnings = append(v.Warnings, WarningView{
			ID:       w.ID(),
			CauseID:  w.CauseID(),
			Reason:   w.Reason(),
			IssuedAt: w.IssuedAt(),
			Pardoned: w.IsPardoned(),
		})
	}
	return v
}

type AccountView struct {
	OwnerID         kernel.UUID  `json:"ownerId"`
	Balance         kernel.Money `json:"balance"`
	LifetimeSpend   kernel.Money `json:"lifetimeSpend"`
	CompletedOrders int          `json:"completedOrders"`
}

func newAccountView(a *account.Account) AccountView {
	return AccountView{
		OwnerID:         a.OwnerID(),
		Balance:         a.Balance(),
		LifetimeSpend:   a.LifetimeSpend(),
		CompletedOrders: a.CompletedOrders(),
	}
}

// ChefRatingView carries no average when the chef has no ratings yet.
type ChefRatingView struct {
	ChefID  kernel.UUID `json:"chefId"`
	Count   int         `json:"count"`
	Average *float64    `json:"average,omitempty"`
}

func newChefRatingView(s *rating.ChefScore) ChefRatingView {
	v := ChefRatingView{ChefID: s.ChefID(), Count: s.Count()}
	if avg, ok := s.Average(); ok {
		v.Average = &avg
	}
	return v
}

type FeedbackView struct {
	ID          kernel.UUID `json:"id"`
	FilerID     kernel.UUID `json:"filerId"`
	TargetID    kernel.UUID `json:"targetId"`
	OrderID     kernel.UUID `json:"orderId"`
	Kind        string      `json:"kind"`
	Category    string      `json:"category"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	FiledAt     time.Time   `json:"filedAt"`
}

func newFeedbackView(f *feedback.Feedback) FeedbackView {
	return FeedbackView{
		ID:          f.ID(),
		FilerID:     f.FilerID(),
		TargetID:    f.TargetID(),
		OrderID:     f.OrderID(),
		Kind:        f.Kind().String(),
		Category:    string(f.Category()),
		Description: f.Description(),
		Status:      f.Status().String(),
		FiledAt:     f.FiledAt(),
	}
}

type AnswerView struct {
	ID          kernel.UUID `json:"id"`
	AskerID     kernel.UUID `json:"askerId"`
	Question    string      `json:"question"`
	Text        string      `json:"text"`
	Source      string      `json:"source,omitempty"`
	Confidence  float64     `json:"confidence"`
	RatingCount int         `json:"ratingCount"`
	Flagged     bool        `json:"flagged"`
	AskedAt     time.Time   `json:"askedAt"`
}

// NewAnswerView is exported for transports that return the answer a command
// just recorded.
func NewAnswerView(a *answer.Answer) AnswerView {
	return AnswerView{
		ID:          a.ID(),
		AskerID:     a.AskerID(),
		Question:    a.Question(),
		Text:        a.Text(),
		Source:      a.Source(),
		Confidence:  a.Confidence(),
		RatingCount: a.RatingCount(),
		Flagged:     a.IsFlagged(),
		AskedAt:     a.AskedAt(),
	}
}
