package faces

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/topcards/internal/scryfall"
)

// Source downloads the full metadata snapshot.
type Source interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

// ScryfallSource reads the "all_cards" bulk export. Only cards with at least
// two faces are kept, once per card name and layout.
type ScryfallSource struct {
	Client *scryfall.Client

	// BulkType selects the export. Defaults to scryfall.BulkAllCards.
	BulkType string
}

// Fetch implements Source.
func (s *ScryfallSource) Fetch(ctx context.Context) ([]Entry, error) {
	bulkType := s.BulkType
	if bulkType == "" {
		bulkType = scryfall.BulkAllCards
	}

	bulk, err := s.Client.FindBulkData(ctx, bulkType)
	if err != nil {
		return nil, err
	}

	type key struct{ name, layout string }
	seen := make(map[key]bool)
	var entries []Entry
	err = s.Client.StreamBulkCards(ctx, bulk.DownloadURI, func(card *scryfall.Card) error {
		k := key{card.Name, card.Layout}
		if len(card.CardFaces) < 2 || seen[k] {
			return nil
		}
		seen[k] = true
		entries = append(entries, Entry{
			Name:   card.Name,
			Layout: card.Layout,
			Faces:  card.FaceNames(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stream %s: %w", bulkType, err)
	}

	return entries, nil
}
