package domain

import "time"

// PaymentStatus is the approval state of a manual payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentApproved PaymentStatus = "Approved"
	PaymentRejected PaymentStatus = "Rejected"
)

// Terminal reports whether no further transition is defined from s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentApproved || s == PaymentRejected
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s.Terminal()
}

// PaymentRequest is a member's proof of a manual payment awaiting review.
// UserName and UserEmail are captured when the request is submitted and are
// not updated when the user record changes.
type PaymentRequest struct {
	ID            string        `bson:"_id" json:"id"`
	UserID        string        `bson:"userId" json:"userId"`
	UserName      string        `bson:"userName" json:"userName"`
	UserEmail     string        `bson:"userEmail" json:"userEmail"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	ScreenshotURL string        `bson:"screenshotUrl" json:"screenshotUrl"` // Absolute URL or storage object key
	Date          time.Time     `bson:"date" json:"date"`
	Status        PaymentStatus `bson:"status" json:"status"`
	PlanName      string        `bson:"planName" json:"planName"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	ProcessedAt   *time.Time    `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
}

func (p *PaymentRequest) IsPending() bool {
	return p.Status == PaymentPending
}
