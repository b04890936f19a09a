package models

import "time"

type Doctor struct {
	ID        int
	Name      string
	Specialty string
}

type Patient struct {
	ID        int
	Name      string
	BirthDate time.Time
	TaxID     string
}

type Appointment struct {
	ID        int
	DoctorID  int
	PatientID int
	At        time.Time
	Notes     string
}

// ClinicData is the full generated content of the clinic database
type ClinicData struct {
	Doctors      []Doctor
	Patients     []Patient
	Appointments []Appointment
}
