package paymentsvc_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avnishka/BookBee/config"
	paymentsvc "github.com/avnishka/BookBee/service/payment"
)

var cfg = config.Payment{
	Scheme:     "upi",
	MerchantID: "bookbee.merchant@upi",
	PayeeName:  "BookBee Store",
	Currency:   "INR",
}

func TestIntent_URI(t *testing.T) {
	s := paymentsvc.New(cfg)
	in := s.Intent(decimal.RequireFromString("150.5"))

	require.Equal(t, "upi://pay?merchant=bookbee.merchant%40upi&payee=BookBee+Store&amount=150.50&currency=INR", in.URI)
	require.Equal(t, "150.5", in.Amount.String())
	require.Equal(t, "BookBee Store", in.PayeeName)
}

func TestIntent_RoundsToCents(t *testing.T) {
	in := paymentsvc.New(cfg).Intent(decimal.RequireFromString("0.005"))
	require.Contains(t, in.URI, "amount=0.01&")
}

func TestQR_IsPNG(t *testing.T) {
	s := paymentsvc.New(cfg)
	png, err := s.QR(s.Intent(decimal.NewFromInt(10)).URI)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
