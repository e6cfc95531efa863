package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType is the direction of a trade as reported by the platform.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// TradeRecord is one row of an MT4/MT5 account-history export.
//
// The Profit column in those exports excludes commission and swap, so Profit
// alone is not the money the trade made; use CashFlow for anything that
// aggregates.
type TradeRecord struct {
	Ticket     int64               `json:"ticket"`
	OpenTime   time.Time           `json:"open_time"`
	Type       TradeType           `json:"type"`
	Volume     decimal.Decimal     `json:"volume"`
	Symbol     string              `json:"symbol"`
	OpenPrice  decimal.Decimal     `json:"open_price"`
	StopLoss   decimal.NullDecimal `json:"sl"`
	TakeProfit decimal.NullDecimal `json:"tp"`
	CloseTime  time.Time           `json:"close_time"`
	ClosePrice decimal.Decimal     `json:"close_price"`
	Commission decimal.Decimal     `json:"commission"`
	Swap       decimal.Decimal     `json:"swap"`
	Profit     decimal.Decimal     `json:"profit"`
}

// CashFlow returns the full P/L of the trade including commission and swap.
func (t TradeRecord) CashFlow() decimal.Decimal {
	return t.Profit.Add(t.Commission).Add(t.Swap)
}

// SummaryReport aggregates one ordered sequence of trade records.
//
// GrossLoss and AverageLoss are non-positive, so net_profit is always
// gross_profit + gross_loss. An empty statement produces every count and
// aggregate at 0, never an error.
type SummaryReport struct {
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
	LosingTrades  int             `json:"losing_trades"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	GrossLoss     decimal.Decimal `json:"gross_loss"`
	WinRate       float64         `json:"win_rate"`
	AverageWin    decimal.Decimal `json:"average_win"`
	AverageLoss   decimal.Decimal `json:"average_loss"`
	AverageTrade  decimal.Decimal `json:"average_trade"`
	ProfitFactor  ProfitFactor    `json:"profit_factor"`
	MaxDrawdown   decimal.Decimal `json:"max_drawdown"`
	StartDate     string          `json:"start_date,omitempty"`
	EndDate       string          `json:"end_date,omitempty"`
}
