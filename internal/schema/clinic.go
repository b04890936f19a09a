package schema

import (
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// ClinicTables describes the clinic tables and their foreign keys
func ClinicTables() []models.TableSchema {
	return []models.TableSchema{
		{Name: "medicos", Columns: []string{"ID_Medico", "Nome", "Especialidade"}},
		{Name: "pacientes", Columns: []string{"ID_Paciente", "Nome", "Data_Nascimento", "NIF"}},
		{
			Name:    "consultas",
			Columns: []string{"ID_Consulta", "ID_Medico", "ID_Paciente", "Data_Consulta", "Notas"},
			ForeignKeys: []models.ForeignKey{
				{Table: "consultas", Column: "ID_Medico", ReferencedTable: "medicos", ReferencedColumn: "ID_Medico", ConstraintName: "fk_consultas_medico"},
				{Table: "consultas", Column: "ID_Paciente", ReferencedTable: "pacientes", ReferencedColumn: "ID_Paciente", ConstraintName: "fk_consultas_paciente"},
			},
		},
	}
}

// ClinicDDL returns the statements creating the clinic database and its tables
func ClinicDDL(database string) ([]string, error) {
	return ddl(database, `CREATE TABLE IF NOT EXISTS %[1]s.medicos (
  ID_Medico       INT          NOT NULL,
  Nome            VARCHAR(120) NOT NULL,
  Especialidade   VARCHAR(80)  NOT NULL,
  PRIMARY KEY (ID_Medico)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.pacientes (
  ID_Paciente       INT          NOT NULL,
  Nome              VARCHAR(120) NOT NULL,
  Data_Nascimento   DATE         NOT NULL,
  NIF               VARCHAR(20)  NOT NULL,
  PRIMARY KEY (ID_Paciente),
  UNIQUE KEY uq_pacientes_nif (NIF)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.consultas (
  ID_Consulta     INT           NOT NULL,
  ID_Medico       INT           NOT NULL,
  ID_Paciente     INT           NOT NULL,
  Data_Consulta   DATETIME      NOT NULL,
  Notas           VARCHAR(500)  NULL,
  PRIMARY KEY (ID_Consulta),
  KEY idx_consultas_medico (ID_Medico),
  KEY idx_consultas_paciente (ID_Paciente),
  KEY idx_consultas_data (Data_Consulta),
  CONSTRAINT fk_consultas_medico
    FOREIGN KEY (ID_Medico)
    REFERENCES %[1]s.medicos (ID_Medico)
    ON UPDATE CASCADE
    ON DELETE RESTRICT,
  CONSTRAINT fk_consultas_paciente
    FOREIGN KEY (ID_Paciente)
    REFERENCES %[1]s.pacientes (ID_Paciente)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`)
}

// ClinicDataset turns generated clinic data into insertable rows
func ClinicDataset(database string, data *models.ClinicData) (*models.Dataset, error) {
	db, err := DatabaseName(database)
	if err != nil {
		return nil, err
	}
	stmts, err := ClinicDDL(db)
	if err != nil {
		return nil, err
	}
	tables := ClinicTables()

	doctors := make([][]interface{}, 0, len(data.Doctors))
	for _, d := range data.Doctors {
		doctors = append(doctors, []interface{}{d.ID, d.Name, d.Specialty})
	}
	patients := make([][]interface{}, 0, len(data.Patients))
	for _, p := range data.Patients {
		patients = append(patients, []interface{}{p.ID, p.Name, p.BirthDate, p.TaxID})
	}
	appointments := make([][]interface{}, 0, len(data.Appointments))
	for _, a := range data.Appointments {
		appointments = append(appointments, []interface{}{a.ID, a.DoctorID, a.PatientID, a.At, a.Notes})
	}

	return &models.Dataset{
		Domain:   Clinic,
		Database: db,
		DDL:      stmts,
		Tables: []models.TableData{
			{Schema: tables[0], Rows: doctors},
			{Schema: tables[1], Rows: patients},
			{Schema: tables[2], Rows: appointments},
		},
	}, nil
}
