package model

import "time"

// Subscriber is a newsletter signup.
type Subscriber struct {
	SubscriberID int64      `json:"subscriberid"`
	Email        string     `json:"email"`
	ConfirmToken string     `json:"-"`
	Confirmed    bool       `json:"confirmed"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
