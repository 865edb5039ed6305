package models

import "time"

// LeadStatus is the lifecycle state of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusPurchased LeadStatus = "purchased"
	LeadStatusExpired   LeadStatus = "expired"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusPurchased, LeadStatusExpired:
		return true
	}
	return false
}

// CanTransition reports whether the transition s -> to is allowed.
// The only legal transitions are new -> purchased and new -> expired;
// both are terminal and never reversed.
func (s LeadStatus) CanTransition(to LeadStatus) bool {
	if s != LeadStatusNew {
		return false
	}
	return to == LeadStatusPurchased || to == LeadStatusExpired
}

// ContactPreference is how the requester wants to be reached.
type ContactPreference string

const (
	ContactByPhone ContactPreference = "phone"
	ContactByEmail ContactPreference = "email"
)

func (p ContactPreference) Valid() bool {
	return p == ContactByPhone || p == ContactByEmail
}

// Lead is a homeowner's service request. Contact fields are only exposed to
// a business holding a completed payment for the lead.
type Lead struct {
	ID                string            `bson:"id" json:"id"`
	ServiceID         string            `bson:"service_id" json:"service_id"`
	Name              string            `bson:"name" json:"name"`
	Email             string            `bson:"email" json:"email,omitempty"`
	Phone             string            `bson:"phone" json:"phone,omitempty"`
	City              string            `bson:"city" json:"city"`
	ZipCode           string            `bson:"zip_code" json:"zip_code,omitempty"`
	Description       string            `bson:"description" json:"description"`
	ContactPreference ContactPreference `bson:"contact_preference" json:"contact_preference"`
	Status            LeadStatus        `bson:"status" json:"status"`
	CreatedAt         time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `bson:"updated_at" json:"updated_at"`
}

// LeadView is a lead as presented to a business: contact details are masked
// unless the business has purchased the lead.
type LeadView struct {
	Lead
	IsPurchased bool `json:"is_purchased"`
}

// Masked returns a copy of the lead with requester contact details removed.
func (l Lead) Masked() Lead {
	masked := l
	masked.Name = ""
	masked.Email = ""
	masked.Phone = ""
	return masked
}
