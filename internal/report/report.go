// Package report renders a summary either as an indented JSON document or as
// a fixed-width text block. Rendering never changes a computed value.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mt_tools/internal/models"
)

// RenderJSON writes the summary as pretty-printed JSON using the canonical
// field names. Monetary values serialize as decimal strings.
func RenderJSON(w io.Writer, rep models.SummaryReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// RenderText writes the human-readable summary block.
func RenderText(w io.Writer, rep models.SummaryReport) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total trades : %d\n", rep.TotalTrades))
	sb.WriteString(fmt.Sprintf("Wins / losses: %d / %d\n", rep.WinningTrades, rep.LosingTrades))
	sb.WriteString(fmt.Sprintf("Gross profit : %s\n", rep.GrossProfit.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Gross loss   : %s\n", rep.GrossLoss.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Net profit   : %s\n", rep.NetProfit.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Win rate     : %.2f%%\n", rep.WinRate*100))
	sb.WriteString(fmt.Sprintf("Profit factor: %s\n", rep.ProfitFactor))
	sb.WriteString(fmt.Sprintf("Average win  : %s\n", rep.AverageWin.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Average loss : %s\n", rep.AverageLoss.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Average/trade: %s\n", rep.AverageTrade.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Max drawdown : %s\n", rep.MaxDrawdown.StringFixed(2)))
	if rep.StartDate != "" && rep.EndDate != "" {
		sb.WriteString(fmt.Sprintf("Period       : %s -> %s\n", rep.StartDate, rep.EndDate))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
