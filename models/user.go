package models

import "time"

// Role distinguishes business accounts from platform operators.
type Role string

const (
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

// User is a business (or admin) profile. Businesses subscribe to one service
// category; new leads in that category trigger a push notification.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	BusinessName string    `bson:"business_name" json:"business_name,omitempty"`
	ServiceID    string    `bson:"service_id" json:"service_id,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	FCMToken     string    `bson:"fcm_token" json:"-"`
	TokenHash    string    `bson:"token_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
