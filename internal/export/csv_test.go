package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"deriverse-cli/internal/models"
)

var wantHeader = []string{
	"ID", "Date", "Close Date", "Instrument", "Symbol", "Side",
	"Entry Price", "Exit Price", "Size", "Leverage", "PnL",
	"Entry Fee", "Exit Fee", "Funding Fee", "Total Fees", "Order Type",
	"Emotion", "Setup", "Grade", "Pre-Trade Note", "Post-Trade Note",
}

func exportTrades() []models.Trade {
	open := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	return []models.Trade{
		{
			ID:         "trade-0001",
			OpenTime:   open,
			CloseTime:  open.Add(45 * time.Minute),
			Instrument: models.InstrumentPerpetual,
			Symbol:     "SOL-PERP",
			Side:       models.SideLong,
			EntryPrice: 148.5,
			ExitPrice:  150.25,
			Size:       100,
			Leverage:   5,
			PnL:        175,
			Fees:       models.TradeFees{Entry: 7.43, Exit: 7.51, Funding: 1.2, Total: 16.14},
			OrderType:  models.OrderTypeMarket,
			Journal: &models.TradeJournal{
				Emotion:       models.EmotionDisciplined,
				Setup:         models.SetupBreakout,
				Grade:         models.GradeA,
				PreTradeNote:  "clean break of resistance",
				PostTradeNote: "took profit at target",
			},
		},
		{
			ID:         "trade-0002",
			OpenTime:   open.Add(3 * time.Hour),
			CloseTime:  open.Add(5 * time.Hour),
			Instrument: models.InstrumentSpot,
			Symbol:     "ETH/USDC",
			Side:       models.SideShort,
			EntryPrice: 3450,
			ExitPrice:  3460,
			Size:       2,
			Leverage:   1,
			PnL:        -20,
			Fees:       models.TradeFees{Entry: 3.45, Exit: 3.46, Total: 6.91},
			OrderType:  models.OrderTypeLimit,
		},
	}
}

func writeAndParse(t *testing.T, trades []models.Trade) [][]string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, trades); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return records
}

func TestWriteCSVHeaderContract(t *testing.T) {
	records := writeAndParse(t, exportTrades())

	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	header := records[0]
	if len(header) != 21 {
		t.Fatalf("header has %d columns, want 21", len(header))
	}
	for i, want := range wantHeader {
		if header[i] != want {
			t.Errorf("column %d = %q, want %q", i, header[i], want)
		}
	}
}

func TestWriteCSVRowValues(t *testing.T) {
	records := writeAndParse(t, exportTrades())
	row := records[1]

	if row[0] != "trade-0001" {
		t.Errorf("ID = %q", row[0])
	}
	if row[1] != "2025-05-12 09:30:00" {
		t.Errorf("Date = %q, want UTC timestamp", row[1])
	}
	if row[2] != "2025-05-12 10:15:00" {
		t.Errorf("Close Date = %q", row[2])
	}
	if row[3] != "perpetual" || row[4] != "SOL-PERP" || row[5] != "long" {
		t.Errorf("instrument columns = %q %q %q", row[3], row[4], row[5])
	}
	if row[10] != "175" {
		t.Errorf("PnL = %q", row[10])
	}
	if row[15] != "market" {
		t.Errorf("Order Type = %q", row[15])
	}
	if row[16] != "disciplined" || row[17] != "breakout" || row[18] != "A" {
		t.Errorf("journal columns = %q %q %q", row[16], row[17], row[18])
	}
	if row[19] != "clean break of resistance" {
		t.Errorf("Pre-Trade Note = %q", row[19])
	}
}

func TestWriteCSVBlankJournalColumns(t *testing.T) {
	records := writeAndParse(t, exportTrades())
	row := records[2]

	for i := 16; i < 21; i++ {
		if row[i] != "" {
			t.Errorf("column %d = %q, want blank for unannotated trade", i, row[i])
		}
	}
}

func TestWriteCSVEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if lines := strings.Split(out, "\n"); len(lines) != 1 {
		t.Fatalf("empty history should emit only the header, got %d lines", len(lines))
	}
	if !strings.HasPrefix(out, "ID,Date,") {
		t.Errorf("header = %q", out)
	}
}

func TestWriteCSVNoteWithComma(t *testing.T) {
	trades := exportTrades()
	trades[0].Journal.PostTradeNote = "scaled out at 150, rest at 151"
	records := writeAndParse(t, trades)

	if got := records[1][20]; got != "scaled out at 150, rest at 151" {
		t.Errorf("Post-Trade Note = %q, comma not preserved", got)
	}
}
