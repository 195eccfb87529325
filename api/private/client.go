package private

import (
	"github.com/shopspring/decimal"

	"github.com/gcastellov/some-bdd/models"
)

//go:generate mockery -name=PrivateClient
type PrivateClient interface {
	OpenOrders() (map[string]*models.OpenOrder, error)
	Balances() (map[string]decimal.Decimal, error)
	Post(command string, params map[string]string) (*models.ApiResponse, error)
}

func NewClient(host string, apikey string, seckey string, otp string) (PrivateClient, error) {
	return NewKrakenPrivateApi(host, apikey, seckey, otp)
}
