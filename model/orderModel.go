// model/orderModel.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the append-only proof that BuyerID obtained BookID from SellerID.
type Order struct {
	ID              int64           `json:"id"`
	BuyerID         int64           `json:"buyer_id"`
	SellerID        int64           `json:"seller_id"`
	BookID          int64           `json:"book_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Price           decimal.Decimal `json:"price"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CartView struct {
	Items []Book          `json:"items"`
	Total decimal.Decimal `json:"total"`
}
