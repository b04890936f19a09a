package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

const (
	// MinTotalOrders is the smallest order count that leaves room for the
	// guarantee orders plus some random bulk.
	MinTotalOrders = 50

	// DefaultShopSeed and DefaultTotalOrders reproduce the reference dataset
	DefaultShopSeed    = 12345
	DefaultTotalOrders = 1000

	// BigOrderNumber must end up with strictly more than BigOrderMinDistinct products
	BigOrderNumber      = "E2025-06-BIG01"
	BigOrderMinDistinct = 10

	// GuaranteeYear has at least one order in each of its months
	GuaranteeYear = 2025

	// HotProductID is sold on the fixed date, in the big order and boosted in bulk orders
	HotProductID = 1

	minClients = 5
)

// FixedOrderDate is the day that always carries two single-line orders
var FixedOrderDate = Date(2023, time.December, 1)

// products referenced by the guarantee block
var requiredProductIDs = []int{1, 2, 3, 7, 13}

// ProductSet is a set of product ids
type ProductSet map[int]struct{}

// NewProductSet creates a set holding ids
func NewProductSet(ids ...int) ProductSet {
	s := make(ProductSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set
func (s ProductSet) Add(id int) {
	s[id] = struct{}{}
}

// Contains reports whether id is in the set
func (s ProductSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set
func (s ProductSet) Len() int {
	return len(s)
}

// NeverSoldProducts returns the catalog entries that must never appear in an order line
func NeverSoldProducts() ProductSet {
	return NewProductSet(21, 22, 23)
}

// ShopOptions controls the shop dataset generation
type ShopOptions struct {
	Seed         int64
	TotalOrders  int
	ExtraClients int
}

// DefaultShopOptions returns the options of the reference dataset
func DefaultShopOptions() ShopOptions {
	return ShopOptions{Seed: DefaultShopSeed, TotalOrders: DefaultTotalOrders}
}

// BuildStaticShopEntities returns the fixed suppliers, products and clients.
// Adidas is left out on purpose and products 21-23 are never sold.
func BuildStaticShopEntities() ([]models.Supplier, []models.Product, []models.Client) {
	suppliers := []models.Supplier{
		{ID: 1, Name: "Nike", Email: "sales@nike.pt"},
		{ID: 2, Name: "LuxuryCo", Email: "sales@luxuryco.pt"},
		{ID: 3, Name: "Casa do Norte", Email: "contacto@casadonorte.pt"},
	}

	product := func(id int, name, price string, supplierID int) models.Product {
		return models.Product{ID: id, Name: name, BasePrice: mustMoney(price), SupplierID: supplierID}
	}

	products := []models.Product{
		product(1, "Nike Air Max Pro", "600.00", 1),
		product(2, "Nike Running Jacket", "550.00", 1),
		product(3, "Nike Socks Pack", "19.99", 1),
		product(4, "Nike Smartwatch", "799.00", 1),
		product(5, "Nike Cap", "24.99", 1),
		product(6, "Nike Training Bag", "45.00", 1),
		product(7, "Luxury Watch X", "1200.00", 2),
		product(8, "Luxury Handbag", "950.00", 2),
		product(9, "Luxury Sunglasses", "320.00", 2),
		product(10, "Queijo Curado", "8.50", 3),
		product(11, "Azeite Virgem", "9.70", 3),
		product(12, "Enchido Regional", "5.90", 3),
		product(13, "Mel Multifloral", "6.10", 3),
		product(14, "Chá Verde", "3.80", 3),
		product(15, "Bolachas de Aveia", "3.20", 3),
		product(16, "Compota de Figo", "4.20", 3),
		product(17, "Doce de Abóbora", "4.00", 3),
		product(18, "Café Moído", "4.90", 3),
		product(19, "Granola Artesanal", "6.40", 3),
		product(20, "Chocolate Negro", "2.90", 3),
		// never sold
		product(21, "Nike Limited Edition Sneakers", "1500.00", 1),
		product(22, "Luxury Perfume", "180.00", 2),
		product(23, "Queijo Especial", "14.90", 3),
	}

	clients := []models.Client{
		{Email: "ana.silva@email.pt", Name: "Ana Silva", Street: "Rua das Flores 10", Locality: "Porto", PostalCode: "4000-100"},
		{Email: "joao.pereira@email.pt", Name: "João Pereira", Street: "Av. da República 50", Locality: "Gaia", PostalCode: "4400-200"},
		{Email: "rita.costa@email.pt", Name: "Rita Costa", Street: "Travessa do Sol 3", Locality: "Braga", PostalCode: "4700-300"},
		{Email: "miguel.santos@email.pt", Name: "Miguel Santos", Street: "Rua do Campo 8", Locality: "Aveiro", PostalCode: "3800-010"},
		{Email: "ines.martins@email.pt", Name: "Inês Martins", Street: "Av. Central 120", Locality: "Lisboa", PostalCode: "1100-020"},
		{Email: "tiago.ferreira@email.pt", Name: "Tiago Ferreira", Street: "Rua Nova 23", Locality: "Coimbra", PostalCode: "3000-050"},
		{Email: "sofia.rocha@email.pt", Name: "Sofia Rocha", Street: "Av. do Mar 9", Locality: "Faro", PostalCode: "8000-060"},
		{Email: "carla.mendes@email.pt", Name: "Carla Mendes", Street: "Rua da Ponte 1", Locality: "Viseu", PostalCode: "3500-070"},
		{Email: "pedro.lima@email.pt", Name: "Pedro Lima", Street: "Rua do Pinhal 77", Locality: "Leiria", PostalCode: "2400-080"},
		{Email: "beatriz.sousa@email.pt", Name: "Beatriz Sousa", Street: "Rua do Mercado 5", Locality: "Setúbal", PostalCode: "2900-090"},
	}

	return suppliers, products, clients
}

// ChooseSize picks a size label suited to the product
func ChooseSize(productID int, rng *rand.Rand) string {
	switch productID {
	case 1:
		return fmt.Sprintf("%d", randInt(rng, 40, 45))
	case 2, 5, 6:
		return pickString(rng, []string{"S", "M", "L", "XL"})
	case 4, 7, 8, 9:
		return "U"
	case 11:
		return pickString(rng, []string{"0.5L", "1L"})
	default:
		return pickString(rng, []string{"S", "M", "L"})
	}
}

var (
	fullPrice  = decimal.RequireFromString("1.00")
	fivePctOff = decimal.RequireFromString("0.95")
	tenPctOff  = decimal.RequireFromString("0.90")
)

// PracticedPrice applies a random discount to base: none (70%), 5% (25%) or 10% (5%)
func PracticedPrice(base decimal.Decimal, rng *rand.Rand) decimal.Decimal {
	u := rng.Float64()
	factor := tenPctOff
	switch {
	case u < 0.70:
		factor = fullPrice
	case u < 0.95:
		factor = fivePctOff
	}
	return Quant2(base.Mul(factor))
}

// lineCount draws the number of distinct products of a bulk order.
// The last tier repeats the 1..6 range of the first one.
func lineCount(rng *rand.Rand) int {
	u := rng.Float64()
	switch {
	case u < 0.75:
		return randInt(rng, 1, 6)
	case u < 0.95:
		return randInt(rng, 7, 10)
	default:
		return randInt(rng, 1, 6)
	}
}

type orderBuilder struct {
	rng        *rand.Rand
	basePrices map[int]decimal.Decimal
	neverSold  ProductSet
	orders     []models.Order
	lines      []models.OrderLine
}

func (b *orderBuilder) addOrder(number string, date time.Time, email string) {
	b.orders = append(b.orders, models.Order{Number: number, Date: date, ClientEmail: email})
}

func (b *orderBuilder) addLine(number string, productID, qty int) error {
	if b.neverSold.Contains(productID) {
		return fmt.Errorf("%w: never-sold product %d selected for order %s", ErrInvariantViolation, productID, number)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be > 0, got %d", ErrInvalidInput, qty)
	}
	base, ok := b.basePrices[productID]
	if !ok {
		return fmt.Errorf("%w: unknown product %d", ErrInvalidInput, productID)
	}
	size := ChooseSize(productID, b.rng)
	price := PracticedPrice(base, b.rng)
	b.lines = append(b.lines, models.OrderLine{
		OrderNumber:    number,
		ProductID:      productID,
		Size:           size,
		Quantity:       qty,
		PracticedPrice: price,
	})
	return nil
}

// BuildOrdersAndLines generates the guarantee orders followed by random bulk
// orders until totalOrders is reached, then checks every guarantee.
func BuildOrdersAndLines(rng *rand.Rand, products []models.Product, clients []models.Client, totalOrders int) ([]models.Order, []models.OrderLine, error) {
	if totalOrders < MinTotalOrders {
		return nil, nil, fmt.Errorf("%w: total orders should be reasonably large (>=%d), got %d",
			ErrInvalidInput, MinTotalOrders, totalOrders)
	}
	if rng == nil {
		return nil, nil, fmt.Errorf("%w: random generator is required", ErrInvalidInput)
	}
	if len(clients) < minClients {
		return nil, nil, fmt.Errorf("%w: need at least %d clients, got %d", ErrInvalidInput, minClients, len(clients))
	}

	neverSold := NeverSoldProducts()
	b := &orderBuilder{
		rng:        rng,
		basePrices: make(map[int]decimal.Decimal, len(products)),
		neverSold:  neverSold,
	}

	var sellable []int
	for _, p := range products {
		b.basePrices[p.ID] = p.BasePrice
		if !neverSold.Contains(p.ID) {
			sellable = append(sellable, p.ID)
		}
	}
	for _, id := range requiredProductIDs {
		if _, ok := b.basePrices[id]; !ok {
			return nil, nil, fmt.Errorf("%w: catalog is missing product %d", ErrInvalidInput, id)
		}
	}

	var bigCandidates []int
	for _, id := range sellable {
		if id != HotProductID {
			bigCandidates = append(bigCandidates, id)
		}
	}
	if len(bigCandidates) < BigOrderMinDistinct {
		return nil, nil, fmt.Errorf("%w: need at least %d sellable products besides %d for the big order",
			ErrInvalidInput, BigOrderMinDistinct, HotProductID)
	}

	// Guarantees
	for i, number := range []string{"E2023-1201-0001", "E2023-1201-0002"} {
		b.addOrder(number, FixedOrderDate, clients[i].Email)
		if err := b.addLine(number, HotProductID, 1); err != nil {
			return nil, nil, err
		}
	}

	for m := 1; m <= 12; m++ {
		number := fmt.Sprintf("E%d-%02d-FIX01", GuaranteeYear, m)
		b.addOrder(number, Date(GuaranteeYear, time.Month(m), 15), clients[2].Email)
		items := [][2]int{{7, 1}, {3, 2}, {13, 2}}
		if m%3 == 0 {
			items = append(items, [2]int{2, 1})
		}
		for _, item := range items {
			if err := b.addLine(number, item[0], item[1]); err != nil {
				return nil, nil, err
			}
		}
	}

	b.addOrder(BigOrderNumber, Date(GuaranteeYear, time.June, 20), clients[4].Email)
	bigIDs := append(sampleInts(rng, bigCandidates, BigOrderMinDistinct), HotProductID)
	for _, id := range bigIDs {
		if err := b.addLine(BigOrderNumber, id, randInt(rng, 1, 3)); err != nil {
			return nil, nil, err
		}
	}

	// Random bulk
	remaining := totalOrders - len(b.orders)
	for idx := 1; idx <= remaining; idx++ {
		number := fmt.Sprintf("E-RND-%04d", idx)

		var (
			date time.Time
			err  error
		)
		if rng.Float64() < 0.65 {
			date, err = RandomDate(rng, Date(2025, time.January, 1), Date(2026, time.January, 1))
		} else {
			date, err = RandomDate(rng, Date(2024, time.January, 1), Date(2025, time.January, 1))
		}
		if err != nil {
			return nil, nil, err
		}

		email := clients[rng.Intn(len(clients))].Email
		b.addOrder(number, date, email)

		chosen := sampleInts(rng, sellable, min(lineCount(rng), len(sellable)))
		if rng.Float64() < 0.20 && !containsInt(chosen, HotProductID) {
			chosen[0] = HotProductID
		}

		for _, id := range chosen {
			if err := b.addLine(number, id, randInt(rng, 1, 4)); err != nil {
				return nil, nil, err
			}
		}
	}

	if err := ValidateOrders(b.orders, b.lines, neverSold); err != nil {
		return nil, nil, err
	}

	return b.orders, b.lines, nil
}

// ValidateOrders checks the shop guarantees on an already generated dataset
func ValidateOrders(orders []models.Order, lines []models.OrderLine, neverSold ProductSet) error {
	known := make(map[string]bool, len(orders))
	for _, o := range orders {
		if known[o.Number] {
			return fmt.Errorf("%w: duplicate order number %s", ErrInvariantViolation, o.Number)
		}
		known[o.Number] = true
	}

	type lineKey struct {
		order   string
		product int
		size    string
	}
	seen := make(map[lineKey]bool, len(lines))
	bigProducts := make(map[int]bool)

	for _, l := range lines {
		if !known[l.OrderNumber] {
			return fmt.Errorf("%w: line references unknown order %s", ErrInvariantViolation, l.OrderNumber)
		}
		if neverSold.Contains(l.ProductID) {
			return fmt.Errorf("%w: never-sold product %d ended up sold in %s", ErrInvariantViolation, l.ProductID, l.OrderNumber)
		}
		if l.Quantity < 1 {
			return fmt.Errorf("%w: line %s/%d has quantity %d", ErrInvariantViolation, l.OrderNumber, l.ProductID, l.Quantity)
		}
		key := lineKey{l.OrderNumber, l.ProductID, l.Size}
		if seen[key] {
			return fmt.Errorf("%w: duplicate line %s/%d/%s", ErrInvariantViolation, l.OrderNumber, l.ProductID, l.Size)
		}
		seen[key] = true
		if l.OrderNumber == BigOrderNumber {
			bigProducts[l.ProductID] = true
		}
	}

	if len(bigProducts) <= BigOrderMinDistinct {
		return fmt.Errorf("%w: big order has %d distinct products, need more than %d",
			ErrInvariantViolation, len(bigProducts), BigOrderMinDistinct)
	}

	fixedDate := false
	months := make(map[time.Month]bool)
	for _, o := range orders {
		if o.Date.Equal(FixedOrderDate) {
			fixedDate = true
		}
		if o.Date.Year() == GuaranteeYear {
			months[o.Date.Month()] = true
		}
	}
	if !fixedDate {
		return fmt.Errorf("%w: missing %s orders", ErrInvariantViolation, FixedOrderDate.Format(time.DateOnly))
	}
	for m := time.January; m <= time.December; m++ {
		if !months[m] {
			return fmt.Errorf("%w: missing orders for %d-%02d", ErrInvariantViolation, GuaranteeYear, int(m))
		}
	}

	return nil
}

// GenerateShop builds the complete shop dataset for opts
func GenerateShop(opts ShopOptions, logger *logrus.Logger) (*models.ShopData, error) {
	suppliers, products, clients := BuildStaticShopEntities()

	if opts.ExtraClients > 0 {
		dg := NewDataGenerator(opts.Seed, logger)
		extra, err := dg.ExtraClients(opts.ExtraClients, clients)
		if err != nil {
			return nil, err
		}
		clients = append(clients, extra...)
	}

	orders, lines, err := BuildOrdersAndLines(NewRand(opts.Seed), products, clients, opts.TotalOrders)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Generated %d orders with %d lines (seed %d)", len(orders), len(lines), opts.Seed)

	return &models.ShopData{
		Suppliers: suppliers,
		Products:  products,
		Clients:   clients,
		Orders:    orders,
		Lines:     lines,
	}, nil
}
