package private

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/gcastellov/some-bdd/logger"
	"github.com/gcastellov/some-bdd/models"
)

const (
	KRAKEN_USER_AGENT = "bdd-awesome-agent/1.0"
)

func NewKrakenPrivateApi(host string, apikey string, seckey string, otp string) (*KrakenApi, error) {
	api := &KrakenApi{
		BaseURL:    "https://" + host,
		ApiKey:     apikey,
		SecretKey:  seckey,
		Otp:        otp,
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		nonceFunc:  GetNonce,

		m: new(sync.Mutex),
	}
	return api, nil
}

type KrakenApi struct {
	ApiKey     string
	SecretKey  string
	Otp        string
	BaseURL    string
	HttpClient *http.Client

	limiter   *rate.Limiter
	nonceFunc func() string

	m *sync.Mutex
}

func (k *KrakenApi) privateApiPath(command string) string {
	return "/0/private/" + command
}

// Post issues an authenticated API call. A fresh nonce and the configured OTP
// are always part of the signed form body.
func (k *KrakenApi) Post(command string, params map[string]string) (*models.ApiResponse, error) {
	if err := k.limiter.Wait(context.Background()); err != nil {
		return nil, errors.Wrap(err, "rate limiter interrupted")
	}

	k.m.Lock()
	nonce := k.nonceFunc()
	k.m.Unlock()

	val := url.Values{}
	val.Add("nonce", nonce)
	val.Add("otp", k.Otp)
	for key, v := range params {
		val.Add(key, v)
	}
	encodedParams := val.Encode()

	path := k.privateApiPath(command)
	sign, err := GetKrakenSign(path, nonce, k.SecretKey, encodedParams)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign command %s", command)
	}

	req, err := http.NewRequest(http.MethodPost, k.BaseURL+path, strings.NewReader(encodedParams))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request command %s", command)
	}
	req.Header.Set("User-Agent", KRAKEN_USER_AGENT)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", k.ApiKey)
	req.Header.Set("API-Sign", sign)

	res, err := k.HttpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request command %s", command)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response of command %s", command)
	}

	logger.Get().Debugf("POST %s -> %d", k.BaseURL+path, res.StatusCode)
	return &models.ApiResponse{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (k *KrakenApi) OpenOrders() (map[string]*models.OpenOrder, error) {
	res, err := k.Post("OpenOrders", nil)
	if err != nil {
		return nil, err
	}

	jsonObj, err := gabs.ParseJSON(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse open orders response")
	}
	if err = errorListOf(jsonObj); err != nil {
		return nil, err
	}
	if !jsonObj.Exists("result", "open") {
		return nil, errors.New("open orders not found in response")
	}

	children, err := jsonObj.Path("result.open").ChildrenMap()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read open orders")
	}

	orders := make(map[string]*models.OpenOrder, len(children))
	for id, child := range children {
		var order models.OpenOrder
		if err = json.Unmarshal([]byte(child.String()), &order); err != nil {
			return nil, errors.Wrapf(err, "failed to parse open order %s", id)
		}
		orders[id] = &order
	}
	return orders, nil
}

func (k *KrakenApi) Balances() (map[string]decimal.Decimal, error) {
	res, err := k.Post("Balance", nil)
	if err != nil {
		return nil, err
	}

	jsonObj, err := gabs.ParseJSON(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse balance response")
	}
	if err = errorListOf(jsonObj); err != nil {
		return nil, err
	}
	if !jsonObj.Exists("result") {
		return nil, errors.New("result not found in balance response")
	}

	children, err := jsonObj.Path("result").ChildrenMap()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read balances")
	}

	balances := make(map[string]decimal.Decimal, len(children))
	for currency, child := range children {
		amount, ok := child.Data().(string)
		if !ok {
			return nil, errors.Errorf("balance of %s is not a string", currency)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse balance of %s", currency)
		}
		balances[currency] = d
	}
	return balances, nil
}

func errorListOf(jsonObj *gabs.Container) error {
	if !jsonObj.Exists("error") {
		return nil
	}
	children, err := jsonObj.Path("error").Children()
	if err != nil || len(children) == 0 {
		return nil
	}
	var msgs []string
	for _, child := range children {
		if s, ok := child.Data().(string); ok {
			msgs = append(msgs, s)
		}
	}
	return errors.Errorf("api returned errors: %s", strings.Join(msgs, ", "))
}
