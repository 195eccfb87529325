package models

import "github.com/shopspring/decimal"

type OpenOrder struct {
	RefID          string           `json:"refid"`
	Status         string           `json:"status"`
	OpenTime       float64          `json:"opentm"`
	Volume         decimal.Decimal  `json:"vol"`
	VolumeExecuted decimal.Decimal  `json:"vol_exec"`
	Description    OrderDescription `json:"descr"`
}

type OrderDescription struct {
	Pair      string `json:"pair"`
	Type      string `json:"type"`
	OrderType string `json:"ordertype"`
	Price     string `json:"price"`
	Price2    string `json:"price2"`
	Leverage  string `json:"leverage"`
	Order     string `json:"order"`
}
