package data

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "deriverse-cli/internal/errors"
	"deriverse-cli/internal/models"
)

func writeTradeFile(t *testing.T, trades []models.Trade) string {
	t.Helper()
	raw, err := json.Marshal(trades)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "trades.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTradesSortsByOpenTime(t *testing.T) {
	open := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	path := writeTradeFile(t, []models.Trade{
		{ID: "t-2", OpenTime: open.Add(2 * time.Hour), CloseTime: open.Add(3 * time.Hour)},
		{ID: "t-1", OpenTime: open, CloseTime: open.Add(time.Hour)},
	})

	trades, err := LoadTrades(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades", len(trades))
	}
	if trades[0].ID != "t-1" || trades[1].ID != "t-2" {
		t.Errorf("order = %s, %s; want t-1, t-2", trades[0].ID, trades[1].ID)
	}
}

func TestLoadTradesMissingFile(t *testing.T) {
	_, err := LoadTrades(filepath.Join(t.TempDir(), "absent.json"))
	var derr *apperrors.DataError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want DataError", err)
	}
}

func TestLoadTradesMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTrades(path)
	var derr *apperrors.DataError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want DataError", err)
	}
}

func TestLoadTradesRejectsMissingID(t *testing.T) {
	open := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	path := writeTradeFile(t, []models.Trade{
		{OpenTime: open, CloseTime: open.Add(time.Hour)},
	})

	_, err := LoadTrades(path)
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Field != "id" {
		t.Errorf("Field = %q, want id", verr.Field)
	}
}

func TestLoadTradesRejectsInvertedTimestamps(t *testing.T) {
	open := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	path := writeTradeFile(t, []models.Trade{
		{ID: "t-1", OpenTime: open, CloseTime: open.Add(-time.Hour)},
	})

	_, err := LoadTrades(path)
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
