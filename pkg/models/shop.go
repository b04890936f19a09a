package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a product supplier
type Supplier struct {
	ID    int
	Name  string
	Email string
}

// Product is a catalog entry. BasePrice has two decimal places.
type Product struct {
	ID         int
	Name       string
	BasePrice  decimal.Decimal
	SupplierID int
}

// Client is a shop customer, identified by email
type Client struct {
	Email      string
	Name       string
	Street     string
	Locality   string
	PostalCode string
}

// Order is an order header
type Order struct {
	Number      string
	Date        time.Time
	ClientEmail string
}

// OrderLine is a line item. (OrderNumber, ProductID, Size) is unique.
type OrderLine struct {
	OrderNumber    string
	ProductID      int
	Size           string
	Quantity       int
	PracticedPrice decimal.Decimal
}

// ShopData is the full generated content of the shop database
type ShopData struct {
	Suppliers []Supplier
	Products  []Product
	Clients   []Client
	Orders    []Order
	Lines     []OrderLine
}
