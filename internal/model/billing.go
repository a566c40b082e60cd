package model

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// BillingCustomer and BillingSubscription back the in-process billing
// driver used for local development and tests. With the stripe driver these
// tables stay empty.
type BillingCustomer struct {
	ID                   string `gorm:"column:id;primaryKey;size:64"`
	MemberID             uint32 `gorm:"column:member_id;not null;index"`
	Email                string `gorm:"column:email;size:255;not null"`
	DefaultPaymentMethod string `gorm:"column:default_payment_method;size:255;not null;default:''"`

	BaseEntity
}

func (*BillingCustomer) TableName() string {
	return "billing_customers"
}

type BillingSubscription struct {
	ID         string     `gorm:"column:id;primaryKey;size:64"`
	CustomerID string     `gorm:"column:customer_id;size:64;not null;index"`
	Name       string     `gorm:"column:name;size:255;not null"`
	Status     string     `gorm:"column:status;size:32;not null"`
	EndsAt     *time.Time `gorm:"column:ends_at"`

	BaseEntity
}

func (*BillingSubscription) TableName() string {
	return "billing_subscriptions"
}
