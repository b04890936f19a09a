package generator

import (
	"fmt"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

const maxEmailAttempts = 20

// DataGenerator produces realistic filler entities on top of the fixed lists
type DataGenerator struct {
	Faker  faker.Faker
	Logger *logrus.Logger
}

// NewDataGenerator creates a data generator whose output depends only on seed
func NewDataGenerator(seed int64, logger *logrus.Logger) *DataGenerator {
	return &DataGenerator{
		// offset keeps faker draws independent from the order generator stream
		Faker:  faker.NewWithSeed(NewRand(seed + 1)),
		Logger: logger,
	}
}

// ExtraClients generates n clients whose emails do not collide with existing
func (dg *DataGenerator) ExtraClients(n int, existing []models.Client) ([]models.Client, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: extra clients must be >= 0, got %d", ErrInvalidInput, n)
	}

	taken := make(map[string]bool, len(existing)+n)
	for _, c := range existing {
		taken[c.Email] = true
	}

	clients := make([]models.Client, 0, n)
	for i := 0; i < n; i++ {
		email, err := dg.uniqueEmail(taken)
		if err != nil {
			return nil, err
		}
		taken[email] = true

		clients = append(clients, models.Client{
			Email:      email,
			Name:       truncate(dg.Faker.Person().Name(), 120),
			Street:     truncate(dg.Faker.Address().StreetAddress(), 150),
			Locality:   truncate(dg.Faker.Address().City(), 80),
			PostalCode: truncate(dg.Faker.Address().PostCode(), 20),
		})
	}

	dg.Logger.Debugf("Generated %d extra clients", len(clients))
	return clients, nil
}

func (dg *DataGenerator) uniqueEmail(taken map[string]bool) (string, error) {
	for attempt := 0; attempt < maxEmailAttempts; attempt++ {
		email := truncate(strings.ToLower(dg.Faker.Internet().Email()), 100)
		if !taken[email] {
			return email, nil
		}
		dg.Logger.Debugf("Email %s already used, retrying", email)
	}
	return "", fmt.Errorf("%w: could not generate a unique client email after %d attempts",
		ErrInvariantViolation, maxEmailAttempts)
}

// truncate keeps s within a VARCHAR(n) column
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
