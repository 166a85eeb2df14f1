package model

import "time"

// Tier is the paywall tier of a caller.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// EntitlementStatus is the activation state of a paid entitlement.
// Entitlements are never deleted, only status-flipped.
type EntitlementStatus string

const (
	EntitlementActive   EntitlementStatus = "active"
	EntitlementInactive EntitlementStatus = "inactive"
)

// Entitlement is the persisted record of whether an email has active paid
// access. Email is the sole identity key; there is no authentication beyond
// knowledge of the email string.
type Entitlement struct {
	Email           string            `json:"email"`
	Tier            Tier              `json:"tier"`
	Status          EntitlementStatus `json:"status"`
	PaymentRef      string            `json:"payment_ref,omitempty"`
	SubscriptionRef string            `json:"subscription_ref,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// IsPro reports whether the entitlement grants paid access.
func (e *Entitlement) IsPro() bool {
	return e != nil && e.Status == EntitlementActive
}
