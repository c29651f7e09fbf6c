package domain

import "time"

// SubscriptionStatus tracks where a member is in their subscription lifecycle.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "Active"
	SubscriptionInactive  SubscriptionStatus = "Inactive"
	SubscriptionCancelled SubscriptionStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionCancelled:
		return true
	}
	return false
}

// User is a gym member managed from the admin console.
type User struct {
	ID                 string             `bson:"_id" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Mobile             string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	JoinDate           time.Time          `bson:"joinDate" json:"joinDate"`
	SubscriptionPlan   string             `bson:"subscriptionPlan" json:"subscriptionPlan"` // Plan name, resolved by exact match
	SubscriptionStatus SubscriptionStatus `bson:"subscriptionStatus" json:"subscriptionStatus"`
	AvatarURL          string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Progress           []WorkoutLog       `bson:"progress,omitempty" json:"progress,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsActive() bool {
	return u.SubscriptionStatus == SubscriptionActive
}

// WorkoutLog is a single logged session in a member's progress history.
type WorkoutLog struct {
	ID              string    `bson:"id" json:"id"`
	WorkoutName     string    `bson:"workoutName" json:"workoutName"`
	Date            time.Time `bson:"date" json:"date"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
}
