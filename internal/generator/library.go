package generator

import (
	"math/rand"
	"time"

	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// DefaultSeed is used by the library, cinema and clinic datasets
const DefaultSeed = 42

const randomLoans = 12

// BuildAuthors returns the fixed authors
func BuildAuthors() []models.Author {
	return []models.Author{
		{ID: 1, Name: "José Saramago", Country: "Portugal"},
		{ID: 2, Name: "Fernando Pessoa", Country: "Portugal"},
		{ID: 3, Name: "Agatha Christie", Country: "Reino Unido"},
		{ID: 4, Name: "Gabriel García Márquez", Country: "Colômbia"},
		{ID: 5, Name: "Mia Couto", Country: "Moçambique"},
	}
}

// BuildBooks returns the fixed books
func BuildBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Memorial do Convento", AuthorID: 1, Year: 1982, ISBN: "972-21-0123-4"},
		{ID: 2, Title: "Ensaio sobre a Cegueira", AuthorID: 1, Year: 1995, ISBN: "972-21-0124-2"},
		{ID: 3, Title: "O Livro do Desassossego", AuthorID: 2, Year: 1982, ISBN: "972-44-1001-1"},
		{ID: 4, Title: "Morte no Nilo", AuthorID: 3, Year: 1937, ISBN: "978-0-00-711931-8"},
		{ID: 5, Title: "O Assassinato de Roger Ackroyd", AuthorID: 3, Year: 1926, ISBN: "978-0-00-711932-5"},
		{ID: 6, Title: "Cem Anos de Solidão", AuthorID: 4, Year: 1967, ISBN: "978-0-06-088328-7"},
		{ID: 7, Title: "O Amor nos Tempos de Cólera", AuthorID: 4, Year: 1985, ISBN: "978-0-14-024492-2"},
		{ID: 8, Title: "Terra Sonâmbula", AuthorID: 5, Year: 1992, ISBN: "972-21-0501-3"},
		{ID: 9, Title: "Um Rio Chamado Tempo, uma Casa Chamada Terra", AuthorID: 5, Year: 2003, ISBN: "972-21-0512-9"},
		{ID: 10, Title: "O Evangelho segundo Jesus Cristo", AuthorID: 1, Year: 1991, ISBN: "972-21-0125-0"},
	}
}

// BuildReaders returns the fixed readers
func BuildReaders() []models.Reader {
	return []models.Reader{
		{ID: 1, Name: "Maria Oliveira", Email: "maria.oliveira@mail.pt", RegistrationDate: Date(2022, time.March, 10)},
		{ID: 2, Name: "António Nunes", Email: "antonio.nunes@mail.pt", RegistrationDate: Date(2022, time.May, 22)},
		{ID: 3, Name: "Catarina Lopes", Email: "catarina.lopes@mail.pt", RegistrationDate: Date(2023, time.January, 15)},
		{ID: 4, Name: "Rui Ferreira", Email: "rui.ferreira@mail.pt", RegistrationDate: Date(2023, time.August, 7)},
		{ID: 5, Name: "Sandra Teixeira", Email: "sandra.teixeira@mail.pt", RegistrationDate: Date(2024, time.February, 28)},
	}
}

// BuildLoans returns returned loans, open loans and a few random ones.
// A random return date later than asOf is treated as not returned yet.
func BuildLoans(rng *rand.Rand, asOf time.Time) []models.Loan {
	var loans []models.Loan
	nextID := 1
	add := func(bookID, readerID int, loanDate time.Time, returnDate *time.Time) {
		loans = append(loans, models.Loan{
			ID:         nextID,
			BookID:     bookID,
			ReaderID:   readerID,
			LoanDate:   loanDate,
			ReturnDate: returnDate,
		})
		nextID++
	}

	returned := []struct {
		book, reader int
		out, back    time.Time
	}{
		{1, 1, Date(2024, time.January, 5), Date(2024, time.January, 25)},
		{3, 2, Date(2024, time.February, 10), Date(2024, time.March, 10)},
		{6, 1, Date(2024, time.March, 1), Date(2024, time.March, 28)},
		{4, 3, Date(2024, time.April, 12), Date(2024, time.May, 10)},
		{8, 2, Date(2024, time.May, 20), Date(2024, time.June, 18)},
		{2, 4, Date(2024, time.June, 1), Date(2024, time.June, 29)},
		{7, 1, Date(2024, time.July, 15), Date(2024, time.August, 12)},
		{5, 3, Date(2024, time.August, 1), Date(2024, time.August, 30)},
		{9, 5, Date(2024, time.September, 10), Date(2024, time.October, 8)},
		{10, 4, Date(2024, time.October, 1), Date(2024, time.October, 29)},
	}
	for _, r := range returned {
		back := r.back
		add(r.book, r.reader, r.out, &back)
	}

	open := []struct {
		book, reader int
		out          time.Time
	}{
		{1, 3, Date(2025, time.January, 6)},
		{4, 5, Date(2025, time.January, 15)},
		{6, 2, Date(2025, time.February, 1)},
	}
	for _, o := range open {
		add(o.book, o.reader, o.out, nil)
	}

	for i := 0; i < randomLoans; i++ {
		bookID := randInt(rng, 1, 10)
		readerID := randInt(rng, 1, 5)
		start := Date(2024, time.January, 1).AddDate(0, 0, randInt(rng, 0, 300))
		var back *time.Time
		if rng.Float64() < 0.7 {
			d := start.AddDate(0, 0, randInt(rng, 14, 45))
			if !d.After(asOf) {
				back = &d
			}
		}
		add(bookID, readerID, start, back)
	}

	return loans
}

// GenerateLibrary builds the complete library dataset
func GenerateLibrary(seed int64, asOf time.Time) *models.LibraryData {
	return &models.LibraryData{
		Authors: BuildAuthors(),
		Books:   BuildBooks(),
		Readers: BuildReaders(),
		Loans:   BuildLoans(NewRand(seed), asOf),
	}
}
