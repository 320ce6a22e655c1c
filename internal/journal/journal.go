// Package journal applies annotation edits to trade histories without
// mutating them.
package journal

import "deriverse-cli/internal/models"

// Patch carries the journal fields to change. Nil pointers and empty strings
// leave the existing value in place.
type Patch struct {
	Emotion       *models.Emotion
	Setup         *models.Setup
	Grade         *models.Grade
	PreTradeNote  *string
	PostTradeNote *string
}

// defaults returns the journal an unannotated trade starts from on its first
// edit.
func defaults() models.TradeJournal {
	return models.TradeJournal{
		Emotion: models.EmotionNeutral,
		Setup:   models.SetupOther,
		Grade:   models.GradeC,
	}
}

// Apply returns a new trade list where the trade with the given ID carries a
// merged journal. The input slice and its trades are left untouched; unknown
// IDs yield a copy with no changes.
func Apply(trades []models.Trade, tradeID string, patch Patch) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)
	for i, t := range out {
		if t.ID != tradeID {
			continue
		}
		merged := defaults()
		if t.Journal != nil {
			merged = *t.Journal
		}
		if patch.Emotion != nil {
			merged.Emotion = *patch.Emotion
		}
		if patch.Setup != nil {
			merged.Setup = *patch.Setup
		}
		if patch.Grade != nil {
			merged.Grade = *patch.Grade
		}
		if patch.PreTradeNote != nil {
			merged.PreTradeNote = *patch.PreTradeNote
		}
		if patch.PostTradeNote != nil {
			merged.PostTradeNote = *patch.PostTradeNote
		}
		t.Journal = &merged
		out[i] = t
		break
	}
	return out
}
