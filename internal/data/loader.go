package data

import (
	"encoding/json"
	"os"
	"sort"

	apperrors "deriverse-cli/internal/errors"
	"deriverse-cli/internal/models"
)

// LoadTrades reads a trade history from a JSON file. The file holds a JSON
// array of trade objects. Trades are returned sorted by open timestamp.
func LoadTrades(path string) ([]models.Trade, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewDataError(path, "reading trade file", err)
	}

	var trades []models.Trade
	if err := json.Unmarshal(raw, &trades); err != nil {
		return nil, apperrors.NewDataError(path, "parsing trade file", err)
	}

	for i, t := range trades {
		if t.ID == "" {
			return nil, apperrors.NewValidationError("id", i, "trade is missing an id")
		}
		if t.CloseTime.Before(t.OpenTime) {
			return nil, apperrors.NewValidationError("closeTimestamp", t.ID, "close precedes open")
		}
	}

	sort.Slice(trades, func(i, j int) bool {
		return trades[i].OpenTime.Before(trades[j].OpenTime)
	})
	return trades, nil
}
