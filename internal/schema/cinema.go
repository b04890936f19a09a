package schema

import (
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// CinemaTables describes the cinema tables and their foreign keys
func CinemaTables() []models.TableSchema {
	return []models.TableSchema{
		{Name: "filmes", Columns: []string{"ID_Filme", "Titulo", "Duracao_Min", "Ano"}},
		{Name: "salas", Columns: []string{"ID_Sala", "Nome", "Capacidade"}},
		{
			Name:    "sessoes",
			Columns: []string{"ID_Sessao", "ID_Filme", "ID_Sala", "Data_Hora"},
			ForeignKeys: []models.ForeignKey{
				{Table: "sessoes", Column: "ID_Filme", ReferencedTable: "filmes", ReferencedColumn: "ID_Filme", ConstraintName: "fk_sessoes_filme"},
				{Table: "sessoes", Column: "ID_Sala", ReferencedTable: "salas", ReferencedColumn: "ID_Sala", ConstraintName: "fk_sessoes_sala"},
			},
		},
		{
			Name:    "bilhetes",
			Columns: []string{"ID_Bilhete", "ID_Sessao", "Preco"},
			ForeignKeys: []models.ForeignKey{
				{Table: "bilhetes", Column: "ID_Sessao", ReferencedTable: "sessoes", ReferencedColumn: "ID_Sessao", ConstraintName: "fk_bilhetes_sessao"},
			},
		},
	}
}

// CinemaDDL returns the statements creating the cinema database and its tables
func CinemaDDL(database string) ([]string, error) {
	return ddl(database, `CREATE TABLE IF NOT EXISTS %[1]s.filmes (
  ID_Filme     INT          NOT NULL,
  Titulo       VARCHAR(200) NOT NULL,
  Duracao_Min  INT          NOT NULL,
  Ano          SMALLINT     NOT NULL,
  PRIMARY KEY (ID_Filme)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.salas (
  ID_Sala      INT          NOT NULL,
  Nome         VARCHAR(80)  NOT NULL,
  Capacidade   INT          NOT NULL,
  PRIMARY KEY (ID_Sala)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.sessoes (
  ID_Sessao    INT       NOT NULL,
  ID_Filme     INT       NOT NULL,
  ID_Sala      INT       NOT NULL,
  Data_Hora    DATETIME  NOT NULL,
  PRIMARY KEY (ID_Sessao),
  KEY idx_sessoes_filme (ID_Filme),
  KEY idx_sessoes_sala (ID_Sala),
  KEY idx_sessoes_data (Data_Hora),
  CONSTRAINT fk_sessoes_filme
    FOREIGN KEY (ID_Filme)
    REFERENCES %[1]s.filmes (ID_Filme)
    ON UPDATE CASCADE
    ON DELETE RESTRICT,
  CONSTRAINT fk_sessoes_sala
    FOREIGN KEY (ID_Sala)
    REFERENCES %[1]s.salas (ID_Sala)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.bilhetes (
  ID_Bilhete   INT           NOT NULL,
  ID_Sessao    INT           NOT NULL,
  Preco        DECIMAL(10,2) NOT NULL,
  PRIMARY KEY (ID_Bilhete),
  KEY idx_bilhetes_sessao (ID_Sessao),
  CONSTRAINT fk_bilhetes_sessao
    FOREIGN KEY (ID_Sessao)
    REFERENCES %[1]s.sessoes (ID_Sessao)
    ON UPDATE CASCADE
    ON DELETE CASCADE
) ENGINE=InnoDB`)
}

// CinemaDataset turns generated cinema data into insertable rows
func CinemaDataset(database string, data *models.CinemaData) (*models.Dataset, error) {
	db, err := DatabaseName(database)
	if err != nil {
		return nil, err
	}
	stmts, err := CinemaDDL(db)
	if err != nil {
		return nil, err
	}
	tables := CinemaTables()

	films := make([][]interface{}, 0, len(data.Films))
	for _, f := range data.Films {
		films = append(films, []interface{}{f.ID, f.Title, f.DurationMin, f.Year})
	}
	rooms := make([][]interface{}, 0, len(data.Rooms))
	for _, r := range data.Rooms {
		rooms = append(rooms, []interface{}{r.ID, r.Name, r.Capacity})
	}
	sessions := make([][]interface{}, 0, len(data.Sessions))
	for _, s := range data.Sessions {
		sessions = append(sessions, []interface{}{s.ID, s.FilmID, s.RoomID, s.StartsAt})
	}
	tickets := make([][]interface{}, 0, len(data.Tickets))
	for _, t := range data.Tickets {
		tickets = append(tickets, []interface{}{t.ID, t.SessionID, t.Price.StringFixed(2)})
	}

	return &models.Dataset{
		Domain:   Cinema,
		Database: db,
		DDL:      stmts,
		Tables: []models.TableData{
			{Schema: tables[0], Rows: films},
			{Schema: tables[1], Rows: rooms},
			{Schema: tables[2], Rows: sessions},
			{Schema: tables[3], Rows: tickets},
		},
	}, nil
}
