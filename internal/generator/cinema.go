package generator

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

const scheduleDays = 14

var ticketPrices = []decimal.Decimal{
	decimal.RequireFromString("5.00"),
	decimal.RequireFromString("7.50"),
	decimal.RequireFromString("10.00"),
}

// BuildFilms returns the fixed films
func BuildFilms() []models.Film {
	return []models.Film{
		{ID: 1, Title: "O Pátio das Cantigas", DurationMin: 95, Year: 1942},
		{ID: 2, Title: "Aniki-Bóbó", DurationMin: 71, Year: 1942},
		{ID: 3, Title: "A Canção de Lisboa", DurationMin: 95, Year: 1933},
		{ID: 4, Title: "O Leão da Estrela", DurationMin: 88, Year: 1947},
		{ID: 5, Title: "O Costa do Castelo", DurationMin: 98, Year: 1943},
		{ID: 6, Title: "Fado, História d'uma Cantadeira", DurationMin: 95, Year: 1948},
	}
}

// BuildRooms returns the fixed rooms
func BuildRooms() []models.Room {
	return []models.Room{
		{ID: 1, Name: "Sala 1", Capacity: 120},
		{ID: 2, Name: "Sala 2", Capacity: 80},
		{ID: 3, Name: "Sala 3", Capacity: 50},
	}
}

// BuildSessions schedules a subset of film/room combinations over two weeks
func BuildSessions(rng *rand.Rand) []models.Session {
	var sessions []models.Session
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	id := 1
	for day := 0; day < scheduleDays; day++ {
		for filmID := 1; filmID <= 6; filmID++ {
			for roomID := 1; roomID <= 3; roomID++ {
				if (filmID+roomID+day)%3 != 0 {
					continue
				}
				startsAt := base.AddDate(0, 0, day).Add(time.Duration(randInt(rng, 0, 12)) * time.Hour)
				sessions = append(sessions, models.Session{ID: id, FilmID: filmID, RoomID: roomID, StartsAt: startsAt})
				id++
			}
		}
	}
	return sessions
}

// BuildTickets sells between 1 and 20 tickets for every session
func BuildTickets(rng *rand.Rand, sessions []models.Session) []models.Ticket {
	var tickets []models.Ticket
	id := 1
	for _, s := range sessions {
		n := randInt(rng, 1, 20)
		for i := 0; i < n; i++ {
			tickets = append(tickets, models.Ticket{
				ID:        id,
				SessionID: s.ID,
				Price:     ticketPrices[rng.Intn(len(ticketPrices))],
			})
			id++
		}
	}
	return tickets
}

// GenerateCinema builds the complete cinema dataset
func GenerateCinema(seed int64) *models.CinemaData {
	rng := NewRand(seed)
	sessions := BuildSessions(rng)
	return &models.CinemaData{
		Films:    BuildFilms(),
		Rooms:    BuildRooms(),
		Sessions: sessions,
		Tickets:  BuildTickets(rng, sessions),
	}
}
