package book

import "github.com/shopspring/decimal"

type CreateBookReq struct {
	Title           string           `json:"title" validate:"required,max=255"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	SecurityDeposit decimal.Decimal  `json:"security_deposit"`
	Location        string           `json:"location" validate:"max=255"`
	Description     string           `json:"description" validate:"max=5000"`
	Genre           string           `json:"genre" validate:"max=100"`
	TransactionType string           `json:"transaction_type" validate:"required,oneof=rent buy"`
}

type ReviewReq struct {
	Rating  int    `json:"rating" validate:"min=0,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
