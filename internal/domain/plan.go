package domain

import "time"

// PlanDuration is the billing period of a subscription plan.
type PlanDuration string

const (
	DurationMonthly PlanDuration = "monthly"
	DurationYearly  PlanDuration = "yearly"
)

func (d PlanDuration) Valid() bool {
	return d == DurationMonthly || d == DurationYearly
}

// SubscriptionPlan is a purchasable membership tier. Users reference plans by
// Name, so renaming or deleting a plan does not touch existing users.
type SubscriptionPlan struct {
	ID        string       `bson:"_id" json:"id"`
	Name      string       `bson:"name" json:"name"`
	Price     float64      `bson:"price" json:"price"`
	Duration  PlanDuration `bson:"duration" json:"duration"`
	Features  []string     `bson:"features" json:"features"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// MonthlyPrice normalizes the plan price to one month.
func (p *SubscriptionPlan) MonthlyPrice() float64 {
	if p.Duration == DurationYearly {
		return p.Price / 12
	}
	return p.Price
}
