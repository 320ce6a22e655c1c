// Package export serializes trade histories to CSV. The 21-column header and
// its order form an external contract with downstream spreadsheet users; do
// not reorder.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"deriverse-cli/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// row is the flattened CSV shape of one trade. Journal columns are blank for
// unannotated trades.
type row struct {
	ID            string  `csv:"ID"`
	Date          string  `csv:"Date"`
	CloseDate     string  `csv:"Close Date"`
	Instrument    string  `csv:"Instrument"`
	Symbol        string  `csv:"Symbol"`
	Side          string  `csv:"Side"`
	EntryPrice    float64 `csv:"Entry Price"`
	ExitPrice     float64 `csv:"Exit Price"`
	Size          float64 `csv:"Size"`
	Leverage      float64 `csv:"Leverage"`
	PnL           float64 `csv:"PnL"`
	EntryFee      float64 `csv:"Entry Fee"`
	ExitFee       float64 `csv:"Exit Fee"`
	FundingFee    float64 `csv:"Funding Fee"`
	TotalFees     float64 `csv:"Total Fees"`
	OrderType     string  `csv:"Order Type"`
	Emotion       string  `csv:"Emotion"`
	Setup         string  `csv:"Setup"`
	Grade         string  `csv:"Grade"`
	PreTradeNote  string  `csv:"Pre-Trade Note"`
	PostTradeNote string  `csv:"Post-Trade Note"`
}

// WriteCSV writes the trades as CSV, header included.
func WriteCSV(w io.Writer, trades []models.Trade) error {
	rows := make([]row, 0, len(trades))
	for _, t := range trades {
		r := row{
			ID:         t.ID,
			Date:       t.OpenTime.UTC().Format(timestampLayout),
			CloseDate:  t.CloseTime.UTC().Format(timestampLayout),
			Instrument: string(t.Instrument),
			Symbol:     t.Symbol,
			Side:       string(t.Side),
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			Size:       t.Size,
			Leverage:   t.Leverage,
			PnL:        t.PnL,
			EntryFee:   t.Fees.Entry,
			ExitFee:    t.Fees.Exit,
			FundingFee: t.Fees.Funding,
			TotalFees:  t.Fees.Total,
			OrderType:  string(t.OrderType),
		}
		if t.Journal != nil {
			r.Emotion = string(t.Journal.Emotion)
			r.Setup = string(t.Journal.Setup)
			r.Grade = string(t.Journal.Grade)
			r.PreTradeNote = t.Journal.PreTradeNote
			r.PostTradeNote = t.Journal.PostTradeNote
		}
		rows = append(rows, r)
	}
	return gocsv.Marshal(&rows, w)
}
