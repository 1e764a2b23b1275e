package model

import "time"

type Customer struct {
	CustomerID int64      `json:"customerid"`
	AuthID     int64      `json:"authid"`
	Fullname   *string    `json:"fullname,omitempty"`
	Email      string     `json:"email"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
