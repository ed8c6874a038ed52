package paymentsvc

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"

	"github.com/avnishka/BookBee/config"
)

// QRSize is the edge length in pixels of the rendered QR code.
const QRSize = 256

// Intent describes a payment the buyer makes outside the system.
// URI doubles as the QR payload.
type Intent struct {
	MerchantID string          `json:"merchant_id"`
	PayeeName  string          `json:"payee_name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	URI        string          `json:"uri"`
}

type Service interface {
	Intent(total decimal.Decimal) Intent
	QR(payload string) ([]byte, error)
}

type service struct{ cfg config.Payment }

func New(cfg config.Payment) Service { return &service{cfg: cfg} }

func (s *service) Intent(total decimal.Decimal) Intent {
	amount := total.Round(2)
	uri := fmt.Sprintf("%s://pay?merchant=%s&payee=%s&amount=%s&currency=%s",
		s.cfg.Scheme,
		url.QueryEscape(s.cfg.MerchantID),
		url.QueryEscape(s.cfg.PayeeName),
		amount.StringFixed(2),
		url.QueryEscape(s.cfg.Currency),
	)
	return Intent{
		MerchantID: s.cfg.MerchantID,
		PayeeName:  s.cfg.PayeeName,
		Amount:     amount,
		Currency:   s.cfg.Currency,
		URI:        uri,
	}
}

// QR renders payload as a PNG.
func (s *service) QR(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
