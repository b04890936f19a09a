package schema

import (
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// LibraryTables describes the library tables and their foreign keys
func LibraryTables() []models.TableSchema {
	return []models.TableSchema{
		{Name: "autores", Columns: []string{"ID_Autor", "Nome", "Pais"}},
		{
			Name:    "livros",
			Columns: []string{"ID_Livro", "Titulo", "ID_Autor", "Ano", "ISBN"},
			ForeignKeys: []models.ForeignKey{
				{Table: "livros", Column: "ID_Autor", ReferencedTable: "autores", ReferencedColumn: "ID_Autor", ConstraintName: "fk_livros_autor"},
			},
		},
		{Name: "leitores", Columns: []string{"ID_Leitor", "Nome", "Email", "Data_Inscricao"}},
		{
			Name:    "emprestimos",
			Columns: []string{"ID_Emprestimo", "ID_Livro", "ID_Leitor", "Data_Emprestimo", "Data_Devolucao"},
			ForeignKeys: []models.ForeignKey{
				{Table: "emprestimos", Column: "ID_Livro", ReferencedTable: "livros", ReferencedColumn: "ID_Livro", ConstraintName: "fk_emp_livro"},
				{Table: "emprestimos", Column: "ID_Leitor", ReferencedTable: "leitores", ReferencedColumn: "ID_Leitor", ConstraintName: "fk_emp_leitor"},
			},
		},
	}
}

// LibraryDDL returns the statements creating the library database and its tables
func LibraryDDL(database string) ([]string, error) {
	return ddl(database, `CREATE TABLE IF NOT EXISTS %[1]s.autores (
  ID_Autor   INT          NOT NULL,
  Nome       VARCHAR(120) NOT NULL,
  Pais       VARCHAR(60)  NOT NULL,
  PRIMARY KEY (ID_Autor)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.livros (
  ID_Livro   INT          NOT NULL,
  Titulo     VARCHAR(200) NOT NULL,
  ID_Autor   INT          NOT NULL,
  Ano        SMALLINT     NOT NULL,
  ISBN       VARCHAR(20)  NOT NULL,
  PRIMARY KEY (ID_Livro),
  UNIQUE KEY uq_livros_isbn (ISBN),
  KEY idx_livros_autor (ID_Autor),
  CONSTRAINT fk_livros_autor
    FOREIGN KEY (ID_Autor)
    REFERENCES %[1]s.autores (ID_Autor)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.leitores (
  ID_Leitor        INT          NOT NULL,
  Nome             VARCHAR(120) NOT NULL,
  Email            VARCHAR(100) NOT NULL,
  Data_Inscricao   DATE         NOT NULL,
  PRIMARY KEY (ID_Leitor),
  UNIQUE KEY uq_leitores_email (Email)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.emprestimos (
  ID_Emprestimo     INT      NOT NULL,
  ID_Livro          INT      NOT NULL,
  ID_Leitor         INT      NOT NULL,
  Data_Emprestimo   DATE     NOT NULL,
  Data_Devolucao    DATE     NULL,
  PRIMARY KEY (ID_Emprestimo),
  KEY idx_emp_livro (ID_Livro),
  KEY idx_emp_leitor (ID_Leitor),
  KEY idx_emp_datas (Data_Emprestimo, Data_Devolucao),
  CONSTRAINT fk_emp_livro
    FOREIGN KEY (ID_Livro)
    REFERENCES %[1]s.livros (ID_Livro)
    ON UPDATE CASCADE
    ON DELETE RESTRICT,
  CONSTRAINT fk_emp_leitor
    FOREIGN KEY (ID_Leitor)
    REFERENCES %[1]s.leitores (ID_Leitor)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`)
}

// LibraryDataset turns generated library data into insertable rows
func LibraryDataset(database string, data *models.LibraryData) (*models.Dataset, error) {
	db, err := DatabaseName(database)
	if err != nil {
		return nil, err
	}
	stmts, err := LibraryDDL(db)
	if err != nil {
		return nil, err
	}
	tables := LibraryTables()

	authors := make([][]interface{}, 0, len(data.Authors))
	for _, a := range data.Authors {
		authors = append(authors, []interface{}{a.ID, a.Name, a.Country})
	}
	books := make([][]interface{}, 0, len(data.Books))
	for _, b := range data.Books {
		books = append(books, []interface{}{b.ID, b.Title, b.AuthorID, b.Year, b.ISBN})
	}
	readers := make([][]interface{}, 0, len(data.Readers))
	for _, r := range data.Readers {
		readers = append(readers, []interface{}{r.ID, r.Name, r.Email, r.RegistrationDate})
	}
	loans := make([][]interface{}, 0, len(data.Loans))
	for _, l := range data.Loans {
		var returned interface{}
		if l.ReturnDate != nil {
			returned = *l.ReturnDate
		}
		loans = append(loans, []interface{}{l.ID, l.BookID, l.ReaderID, l.LoanDate, returned})
	}

	return &models.Dataset{
		Domain:   Library,
		Database: db,
		DDL:      stmts,
		Tables: []models.TableData{
			{Schema: tables[0], Rows: authors},
			{Schema: tables[1], Rows: books},
			{Schema: tables[2], Rows: readers},
			{Schema: tables[3], Rows: loans},
		},
	}, nil
}
