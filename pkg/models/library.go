package models

import "time"

type Author struct {
	ID      int
	Name    string
	Country string
}

type Book struct {
	ID       int
	Title    string
	AuthorID int
	Year     int
	ISBN     string
}

type Reader struct {
	ID               int
	Name             string
	Email            string
	RegistrationDate time.Time
}

// Loan is a book loan. ReturnDate is nil while the book is still out.
type Loan struct {
	ID         int
	BookID     int
	ReaderID   int
	LoanDate   time.Time
	ReturnDate *time.Time
}

// LibraryData is the full generated content of the library database
type LibraryData struct {
	Authors []Author
	Books   []Book
	Readers []Reader
	Loans   []Loan
}
