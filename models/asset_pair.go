package models

import "github.com/shopspring/decimal"

// AssetPair is one entry of the public AssetPairs response, keyed by the
// exchange pair code (e.g. "XXBTZUSD"). Kraken serves amounts as decimal
// strings, so those fields are typed as decimal.Decimal.
type AssetPair struct {
	Altname           string              `json:"altname"`
	Wsname            string              `json:"wsname"`
	AclassBase        string              `json:"aclass_base"`
	Base              string              `json:"base"`
	AclassQuote       string              `json:"aclass_quote"`
	Quote             string              `json:"quote"`
	Lot               string              `json:"lot"`
	FeeVolumeCurrency string              `json:"fee_volume_currency"`
	OrderMin          decimal.Decimal     `json:"ordermin"`
	PairDecimals      int                 `json:"pair_decimals"`
	LotDecimals       int                 `json:"lot_decimals"`
	LotMultiplier     int                 `json:"lot_multiplier"`
	MarginCall        int                 `json:"margin_call"`
	MarginStop        int                 `json:"margin_stop"`
	LeverageBuy       []int               `json:"leverage_buy"`
	LeverageSell      []int               `json:"leverage_sell"`
	Fees              [][]decimal.Decimal `json:"fees"`
	FeesMaker         [][]decimal.Decimal `json:"fees_maker"`
}
