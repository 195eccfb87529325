package public

import (
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type FakeRoundTripper struct {
	message  string
	status   int
	header   map[string]string
	requests []*http.Request
}

func (rt *FakeRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	body := strings.NewReader(rt.message)
	rt.requests = append(rt.requests, r)
	res := &http.Response{
		StatusCode: rt.status,
		Body:       ioutil.NopCloser(body),
		Request:    r,
		Header:     make(http.Header),
	}
	res.Header.Set("Content-Type", "application/json; charset=utf-8")
	for k, v := range rt.header {
		res.Header.Set(k, v)
	}
	return res, nil
}

const assetPairsJson = `{
  "error": [],
  "result": {
    "XXBTZUSD": {
      "altname": "XBTUSD",
      "wsname": "XBT/USD",
      "aclass_base": "currency",
      "base": "XXBT",
      "aclass_quote": "currency",
      "quote": "ZUSD",
      "lot": "unit",
      "pair_decimals": 1,
      "lot_decimals": 8,
      "lot_multiplier": 1,
      "leverage_buy": [2, 3, 4, 5],
      "leverage_sell": [2, 3, 4, 5],
      "fees": [[0, 0.26], [50000, 0.24]],
      "fees_maker": [[0, 0.16], [50000, 0.14]],
      "fee_volume_currency": "ZUSD",
      "margin_call": 80,
      "margin_stop": 40,
      "ordermin": "0.0001"
    }
  }
}`

func newTestKrakenPublicClient(rt http.RoundTripper) *KrakenApi {
	api, err := NewKrakenApiUsingConfigFunc(func(c *KrakenApiConfig) {
		c.BaseURL = "http://localhost:4243"
		c.RequestsPerSecond = 1000
	})
	if err != nil {
		panic(err)
	}
	api.HttpClient = &http.Client{Transport: rt}
	return api
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("api.kraken.com")
	if err != nil {
		panic(err)
	}
}

func TestKrakenTime(t *testing.T) {
	t.Parallel()
	json := `{"error":[],"result":{"unixtime":1616336594,"rfc1123":"Sun, 21 Mar 21 14:23:14 +0000"}}`
	client := newTestKrakenPublicClient(&FakeRoundTripper{message: json, status: http.StatusOK})
	serverTime, err := client.Time()
	if err != nil {
		panic(err)
	}
	if serverTime.UnixTime != 1616336594 {
		t.Errorf("KrakenApi: Expected %v. Got %v", 1616336594, serverTime.UnixTime)
	}
	if serverTime.Rfc1123 == "" {
		t.Error("KrakenApi: Expected rfc1123 to be set")
	}
}

func TestKrakenAssetPairs(t *testing.T) {
	t.Parallel()
	client := newTestKrakenPublicClient(&FakeRoundTripper{message: assetPairsJson, status: http.StatusOK})
	pairs, err := client.AssetPairs("XBTUSD")
	if err != nil {
		panic(err)
	}
	pair, ok := pairs["XXBTZUSD"]
	if !ok {
		t.Fatal("KrakenApi: Expected pair XXBTZUSD to be present")
	}
	if pair.Altname != "XBTUSD" {
		t.Errorf("KrakenApi: Expected %v. Got %v", "XBTUSD", pair.Altname)
	}
	if pair.Wsname != "XBT/USD" {
		t.Errorf("KrakenApi: Expected %v. Got %v", "XBT/USD", pair.Wsname)
	}
	if !pair.OrderMin.Equal(decimal.RequireFromString("0.0001")) {
		t.Errorf("KrakenApi: Expected ordermin %v. Got %v", "0.0001", pair.OrderMin)
	}
	if pair.MarginCall != 80 || pair.MarginStop != 40 {
		t.Errorf("KrakenApi: Unexpected margins %v %v", pair.MarginCall, pair.MarginStop)
	}
	if len(pair.Fees) != 2 || len(pair.LeverageBuy) != 4 {
		t.Errorf("KrakenApi: Unexpected fee or leverage schedules")
	}
}

func TestKrakenAssetPairsCached(t *testing.T) {
	t.Parallel()
	rt := &FakeRoundTripper{message: assetPairsJson, status: http.StatusOK}
	client := newTestKrakenPublicClient(rt)
	_, err := client.AssetPairs("XBTUSD")
	if err != nil {
		panic(err)
	}
	rt.message = `garbage`
	pairs, err := client.AssetPairs("XBTUSD")
	if err != nil {
		t.Errorf("KrakenApi: Expected cached result. Got error %v", err)
	}
	if _, ok := pairs["XXBTZUSD"]; !ok {
		t.Error("KrakenApi: Expected cached pair XXBTZUSD to be present")
	}
	if len(rt.requests) != 1 {
		t.Errorf("KrakenApi: Expected 1 upstream request. Got %v", len(rt.requests))
	}
}

func TestKrakenErrorList(t *testing.T) {
	t.Parallel()
	json := `{"error":["EQuery:Unknown asset pair"],"result":{}}`
	client := newTestKrakenPublicClient(&FakeRoundTripper{message: json, status: http.StatusOK})
	_, err := client.AssetPairs("NOPE")
	if err == nil {
		t.Error("KrakenApi: Expected error for non empty error list")
	}
}

func TestKrakenGetRequest(t *testing.T) {
	t.Parallel()
	rt := &FakeRoundTripper{message: assetPairsJson, status: http.StatusOK}
	client := newTestKrakenPublicClient(rt)
	res, err := client.Get("AssetPairs", map[string]string{"pair": "XBTUSD"})
	if err != nil {
		panic(err)
	}
	if res.ContentType != "application/json; charset=utf-8" {
		t.Errorf("KrakenApi: Unexpected content type %v", res.ContentType)
	}
	req := rt.requests[0]
	if req.URL.Path != "/0/public/AssetPairs" {
		t.Errorf("KrakenApi: Unexpected path %v", req.URL.Path)
	}
	if req.URL.Query().Get("pair") != "XBTUSD" {
		t.Errorf("KrakenApi: Unexpected query %v", req.URL.RawQuery)
	}
	if req.Header.Get("User-Agent") != KRAKEN_USER_AGENT {
		t.Errorf("KrakenApi: Unexpected user agent %v", req.Header.Get("User-Agent"))
	}
}
