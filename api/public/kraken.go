package public

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/gcastellov/some-bdd/logger"
	"github.com/gcastellov/some-bdd/models"
)

const (
	KRAKEN_API_HOST   = "api.kraken.com"
	KRAKEN_USER_AGENT = "bdd-awesome-agent/1.0"
)

type KrakenApiConfig struct {
	BaseURL           string
	PairCacheDuration time.Duration
	RequestsPerSecond float64
}

func NewKrakenPublicApi(host string) (*KrakenApi, error) {
	return NewKrakenApiUsingConfigFunc(func(c *KrakenApiConfig) {
		if host != "" {
			c.BaseURL = "https://" + host
		}
	})
}

func NewKrakenApiUsingConfigFunc(f func(*KrakenApiConfig)) (*KrakenApi, error) {
	conf := &KrakenApiConfig{
		BaseURL:           "https://" + KRAKEN_API_HOST,
		PairCacheDuration: 30 * time.Second,
		RequestsPerSecond: 1,
	}
	f(conf)

	api := &KrakenApi{
		BaseURL:    conf.BaseURL,
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		pairCache:  cache.New(conf.PairCacheDuration, 1*time.Second),
		limiter:    rate.NewLimiter(rate.Limit(conf.RequestsPerSecond), 1),

		m: new(sync.Mutex),
	}
	return api, nil
}

type KrakenApi struct {
	BaseURL    string
	HttpClient *http.Client

	pairCache *cache.Cache
	limiter   *rate.Limiter

	m *sync.Mutex
}

func (k *KrakenApi) publicApiUrl(command string) string {
	return k.BaseURL + "/0/public/" + command
}

// Get issues a public API call and returns the raw response. The body is
// consumed here so callers never deal with the wire directly.
func (k *KrakenApi) Get(command string, params map[string]string) (*models.ApiResponse, error) {
	if err := k.limiter.Wait(context.Background()); err != nil {
		return nil, errors.Wrap(err, "rate limiter interrupted")
	}

	reqUrl := k.publicApiUrl(command)
	if len(params) != 0 {
		val := url.Values{}
		for key, v := range params {
			val.Add(key, v)
		}
		reqUrl += "?" + val.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request command %s", command)
	}
	req.Header.Set("User-Agent", KRAKEN_USER_AGENT)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := k.HttpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request command %s", command)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response of command %s", command)
	}

	logger.Get().Debugf("GET %s -> %d", reqUrl, res.StatusCode)
	return &models.ApiResponse{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (k *KrakenApi) Time() (*models.ServerTime, error) {
	res, err := k.Get("Time", nil)
	if err != nil {
		return nil, err
	}
	if err = errorListOf(res.Body); err != nil {
		return nil, err
	}

	result := gjson.GetBytes(res.Body, "result")
	if !result.Exists() {
		return nil, errors.New("result not found in Time response")
	}

	var t models.ServerTime
	if err = json.Unmarshal([]byte(result.Raw), &t); err != nil {
		return nil, errors.Wrap(err, "failed to parse server time")
	}
	return &t, nil
}

func (k *KrakenApi) AssetPairs(pair string) (map[string]*models.AssetPair, error) {
	k.m.Lock()
	defer k.m.Unlock()

	if cached, ok := k.pairCache.Get(pair); ok {
		return cached.(map[string]*models.AssetPair), nil
	}

	res, err := k.Get("AssetPairs", map[string]string{"pair": pair})
	if err != nil {
		return nil, err
	}
	if err = errorListOf(res.Body); err != nil {
		return nil, err
	}

	result := gjson.GetBytes(res.Body, "result")
	if !result.Exists() {
		return nil, errors.New("result not found in AssetPairs response")
	}

	pairs := make(map[string]*models.AssetPair)
	if err = json.Unmarshal([]byte(result.Raw), &pairs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse asset pairs for %s", pair)
	}

	k.pairCache.Set(pair, pairs, cache.DefaultExpiration)
	return pairs, nil
}

// errorListOf turns a non-empty "error" array into a Go error.
func errorListOf(body []byte) error {
	list := gjson.GetBytes(body, "error")
	if !list.Exists() {
		return nil
	}
	var msgs []string
	for _, e := range list.Array() {
		msgs = append(msgs, e.String())
	}
	if len(msgs) != 0 {
		return errors.Errorf("api returned errors: %s", strings.Join(msgs, ", "))
	}
	return nil
}
