package model

import "time"

// TourDate is a show announcement on the marketing surface.
type TourDate struct {
	TourID    int64      `json:"tourid"`
	Venue     string     `json:"venue"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	ShowDate  time.Time  `json:"showdate"`
	TicketURL *string    `json:"ticketurl,omitempty"`
	SoldOut   bool       `json:"soldout"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
