package generator

import (
	"math/rand"
	"time"

	"github.com/vitebski/sample-db-seeder/pkg/models"
)

const appointmentCount = 50

var appointmentNotes = []string{"", "Controlo anual.", "Seguimento.", "Queixas de dores."}

// BuildDoctors returns the fixed doctors
func BuildDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: 1, Name: "Dra. Ana Martins", Specialty: "Clínica Geral"},
		{ID: 2, Name: "Dr. Bruno Sousa", Specialty: "Cardiologia"},
		{ID: 3, Name: "Dra. Carla Reis", Specialty: "Pediatria"},
		{ID: 4, Name: "Dr. Duarte Lopes", Specialty: "Ortopedia"},
		{ID: 5, Name: "Dra. Eduarda Ferreira", Specialty: "Dermatologia"},
	}
}

// BuildPatients returns the fixed patients
func BuildPatients() []models.Patient {
	return []models.Patient{
		{ID: 1, Name: "João Silva", BirthDate: Date(1985, time.April, 12), TaxID: "123456789"},
		{ID: 2, Name: "Maria Santos", BirthDate: Date(1990, time.August, 3), TaxID: "234567890"},
		{ID: 3, Name: "Pedro Oliveira", BirthDate: Date(1978, time.January, 25), TaxID: "345678901"},
		{ID: 4, Name: "Inês Costa", BirthDate: Date(2001, time.November, 7), TaxID: "456789012"},
		{ID: 5, Name: "Ricardo Almeida", BirthDate: Date(1965, time.June, 18), TaxID: "567890123"},
		{ID: 6, Name: "Sofia Pereira", BirthDate: Date(1995, time.February, 28), TaxID: "678901234"},
		{ID: 7, Name: "Tiago Rodrigues", BirthDate: Date(1982, time.September, 14), TaxID: "789012345"},
		{ID: 8, Name: "Beatriz Nunes", BirthDate: Date(2010, time.May, 30), TaxID: "890123456"},
	}
}

// BuildAppointments draws random appointments in the two months after 2025-02-01
func BuildAppointments(rng *rand.Rand) []models.Appointment {
	base := time.Date(2025, time.February, 1, 9, 0, 0, 0, time.UTC)
	minutes := []int{0, 15, 30, 45}

	appointments := make([]models.Appointment, 0, appointmentCount)
	for id := 1; id <= appointmentCount; id++ {
		doctorID := randInt(rng, 1, 5)
		patientID := randInt(rng, 1, 8)
		at := base.AddDate(0, 0, randInt(rng, 0, 60)).
			Add(time.Duration(randInt(rng, 0, 8)) * time.Hour).
			Add(time.Duration(minutes[rng.Intn(len(minutes))]) * time.Minute)
		appointments = append(appointments, models.Appointment{
			ID:        id,
			DoctorID:  doctorID,
			PatientID: patientID,
			At:        at,
			Notes:     pickString(rng, appointmentNotes),
		})
	}
	return appointments
}

// GenerateClinic builds the complete clinic dataset
func GenerateClinic(seed int64) *models.ClinicData {
	return &models.ClinicData{
		Doctors:      BuildDoctors(),
		Patients:     BuildPatients(),
		Appointments: BuildAppointments(NewRand(seed)),
	}
}
