package public

import (
	"github.com/gcastellov/some-bdd/models"
)

//go:generate mockery -name=PublicClient
type PublicClient interface {
	Time() (*models.ServerTime, error)
	AssetPairs(pair string) (map[string]*models.AssetPair, error)
	Get(command string, params map[string]string) (*models.ApiResponse, error)
}

func NewClient(host string) (PublicClient, error) {
	return NewKrakenPublicApi(host)
}
