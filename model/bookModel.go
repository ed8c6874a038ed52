// model/bookModel.go
package model

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionRent TransactionType = "rent"
	TransactionBuy  TransactionType = "buy"
)

func (t TransactionType) Valid() bool {
	return t == TransactionRent || t == TransactionBuy
}

type BookStatus string

const (
	BookAvailable BookStatus = "AVAILABLE"
	BookLended    BookStatus = "LENDED"
	BookSold      BookStatus = "SOLD"
)

func (s BookStatus) Valid() bool {
	switch s {
	case BookAvailable, BookLended, BookSold:
		return true
	}
	return false
}

// MaxPrice mirrors the NUMERIC(6,2) columns used for price and deposit.
var MaxPrice = decimal.RequireFromString("9999.99")

type Book struct {
	ID              int64           `json:"id"`
	OwnerID         int64           `json:"owner_id"`
	Title           string          `json:"title"`
	Price           decimal.Decimal `json:"price"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	Location        string          `json:"location"`
	Pincode         string          `json:"pincode"`
	Description     string          `json:"description"`
	Genre           string          `json:"genre"`
	TransactionType TransactionType `json:"transaction_type"`
	Status          BookStatus      `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// IsAvailable is derived from Status; it is never stored.
func (b Book) IsAvailable() bool { return b.Status == BookAvailable }

// Transition applies a completed order to the book for buyerID.
// Rent keeps the owner, buy hands the book to the buyer.
func (b *Book) Transition(buyerID int64) {
	if b.TransactionType == TransactionRent {
		b.Status = BookLended
		return
	}
	b.OwnerID = buyerID
	b.Status = BookSold
}

func (b Book) MarshalJSON() ([]byte, error) {
	type plain Book
	return json.Marshal(struct {
		plain
		IsAvailable bool `json:"is_available"`
	}{plain(b), b.IsAvailable()})
}

var pincodeRe = regexp.MustCompile(`\b\d{6}\b`)

// ExtractPincode returns the first standalone 6-digit token in location, or "".
func ExtractPincode(location string) string {
	return pincodeRe.FindString(location)
}

type BookSort string

const (
	SortNewest    BookSort = ""
	SortPriceAsc  BookSort = "price_asc"
	SortPriceDesc BookSort = "price_desc"
)

type ListMode string

const (
	ModeHome ListMode = "home"
	ModeAll  ListMode = "all"
)

// BookFilter holds the conjunctive search filters. Zero values mean "not set".
type BookFilter struct {
	Query    string
	Location string
	Genre    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     BookSort
	Mode     ListMode
}

// NewBook carries the lister-supplied attributes.
type NewBook struct {
	Title           string
	Price           decimal.Decimal
	SecurityDeposit decimal.Decimal
	Location        string
	Description     string
	Genre           string
	TransactionType TransactionType
}

type BookDetail struct {
	Book      Book     `json:"book"`
	Reviews   []Review `json:"reviews"`
	AvgRating float64  `json:"avg_rating"`
}
