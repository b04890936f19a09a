package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Film struct {
	ID          int
	Title       string
	DurationMin int
	Year        int
}

type Room struct {
	ID       int
	Name     string
	Capacity int
}

type Session struct {
	ID       int
	FilmID   int
	RoomID   int
	StartsAt time.Time
}

type Ticket struct {
	ID        int
	SessionID int
	Price     decimal.Decimal
}

// CinemaData is the full generated content of the cinema database
type CinemaData struct {
	Films    []Film
	Rooms    []Room
	Sessions []Session
	Tickets  []Ticket
}
