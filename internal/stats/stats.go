// Package stats turns an ordered sequence of trade records into a summary
// report. Everything is a pure function of its input; there is no shared
// state between invocations.
package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"mt_tools/internal/models"
)

const dateLayout = "2006-01-02T15:04:05"

// Summarize walks the records once in the order given and fills in every
// summary metric. File order is trusted as trade order: account statements
// are exported in close order, and re-sorting here would make the reported
// drawdown disagree with the file the user is looking at.
func Summarize(trades []models.TradeRecord) models.SummaryReport {
	rep := models.SummaryReport{
		NetProfit:    decimal.Zero,
		GrossProfit:  decimal.Zero,
		GrossLoss:    decimal.Zero,
		AverageWin:   decimal.Zero,
		AverageLoss:  decimal.Zero,
		AverageTrade: decimal.Zero,
		MaxDrawdown:  decimal.Zero,
	}
	if len(trades) == 0 {
		return rep
	}

	var cumulative, peak decimal.Decimal
	start, end := trades[0].OpenTime, trades[0].CloseTime

	for i, t := range trades {
		cf := t.CashFlow()
		rep.NetProfit = rep.NetProfit.Add(cf)
		switch cf.Sign() {
		case 1:
			rep.WinningTrades++
			rep.GrossProfit = rep.GrossProfit.Add(cf)
		case -1:
			rep.LosingTrades++
			rep.GrossLoss = rep.GrossLoss.Add(cf)
		}

		// Running peak over the cumulative cash-flow curve. The peak starts
		// at the first cumulative value, so an opening loss is not itself a
		// drawdown from zero.
		cumulative = cumulative.Add(cf)
		if i == 0 || cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		if dd := peak.Sub(cumulative); dd.GreaterThan(rep.MaxDrawdown) {
			rep.MaxDrawdown = dd
		}

		if t.OpenTime.Before(start) {
			start = t.OpenTime
		}
		if t.CloseTime.After(end) {
			end = t.CloseTime
		}
	}

	rep.TotalTrades = len(trades)
	rep.WinRate = float64(rep.WinningTrades) / float64(rep.TotalTrades)
	if rep.WinningTrades > 0 {
		rep.AverageWin = rep.GrossProfit.Div(decimal.NewFromInt(int64(rep.WinningTrades)))
	}
	if rep.LosingTrades > 0 {
		rep.AverageLoss = rep.GrossLoss.Div(decimal.NewFromInt(int64(rep.LosingTrades)))
	}
	rep.AverageTrade = rep.NetProfit.Div(decimal.NewFromInt(int64(rep.TotalTrades)))
	rep.ProfitFactor = profitFactor(rep.GrossProfit, rep.GrossLoss)
	rep.StartDate = start.Format(dateLayout)
	rep.EndDate = end.Format(dateLayout)
	return rep
}

func profitFactor(grossProfit, grossLoss decimal.Decimal) models.ProfitFactor {
	if grossLoss.IsZero() {
		if grossProfit.IsPositive() {
			return models.ProfitFactor(math.Inf(1))
		}
		return 0
	}
	f, _ := grossProfit.Div(grossLoss.Abs()).Float64()
	return models.ProfitFactor(f)
}
