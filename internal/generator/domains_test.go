package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLibrary(t *testing.T) {
	asOf := Date(2026, time.January, 1)
	data := GenerateLibrary(DefaultSeed, asOf)

	assert.Len(t, data.Authors, 5)
	assert.Len(t, data.Books, 10)
	assert.Len(t, data.Readers, 5)
	require.Len(t, data.Loans, 25)

	open := 0
	for i, loan := range data.Loans {
		assert.Equal(t, i+1, loan.ID)
		assert.GreaterOrEqual(t, loan.BookID, 1)
		assert.LessOrEqual(t, loan.BookID, 10)
		assert.GreaterOrEqual(t, loan.ReaderID, 1)
		assert.LessOrEqual(t, loan.ReaderID, 5)
		if loan.ReturnDate == nil {
			open++
			continue
		}
		assert.True(t, loan.ReturnDate.After(loan.LoanDate))
		assert.False(t, loan.ReturnDate.After(asOf))
	}
	assert.GreaterOrEqual(t, open, 3)

	for _, loan := range data.Loans[10:13] {
		assert.Nil(t, loan.ReturnDate)
	}

	assert.Equal(t, data, GenerateLibrary(DefaultSeed, asOf))
}

func TestBuildLoansAsOfOpensLateReturns(t *testing.T) {
	// nothing can be returned before the first random loan starts
	asOf := Date(2023, time.December, 31)
	loans := BuildLoans(NewRand(DefaultSeed), asOf)

	for _, loan := range loans[13:] {
		assert.Nil(t, loan.ReturnDate)
	}
}

func TestGenerateCinema(t *testing.T) {
	data := GenerateCinema(DefaultSeed)

	assert.Len(t, data.Films, 6)
	assert.Len(t, data.Rooms, 3)
	require.NotEmpty(t, data.Sessions)

	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	perSession := make(map[int]int)
	for _, s := range data.Sessions {
		assert.False(t, s.StartsAt.Before(base))
		assert.True(t, s.StartsAt.Before(base.AddDate(0, 0, scheduleDays).Add(13*time.Hour)))
		day := int(s.StartsAt.Sub(base).Hours()) / 24
		assert.Zero(t, (s.FilmID+s.RoomID+day)%3, "session %d", s.ID)
	}

	allowed := []string{"5.00", "7.50", "10.00"}
	for _, tk := range data.Tickets {
		perSession[tk.SessionID]++
		assert.Contains(t, allowed, tk.Price.StringFixed(2))
	}
	for _, s := range data.Sessions {
		assert.GreaterOrEqual(t, perSession[s.ID], 1)
		assert.LessOrEqual(t, perSession[s.ID], 20)
	}

	assert.Equal(t, data, GenerateCinema(DefaultSeed))
}

func TestGenerateClinic(t *testing.T) {
	data := GenerateClinic(DefaultSeed)

	assert.Len(t, data.Doctors, 5)
	assert.Len(t, data.Patients, 8)
	require.Len(t, data.Appointments, appointmentCount)

	base := time.Date(2025, time.February, 1, 9, 0, 0, 0, time.UTC)
	for _, a := range data.Appointments {
		assert.GreaterOrEqual(t, a.DoctorID, 1)
		assert.LessOrEqual(t, a.DoctorID, 5)
		assert.GreaterOrEqual(t, a.PatientID, 1)
		assert.LessOrEqual(t, a.PatientID, 8)
		assert.False(t, a.At.Before(base))
		assert.Contains(t, []int{0, 15, 30, 45}, a.At.Minute())
		assert.LessOrEqual(t, a.At.Hour(), 17)
		assert.Contains(t, appointmentNotes, a.Notes)
	}

	assert.Equal(t, data, GenerateClinic(DefaultSeed))
}
