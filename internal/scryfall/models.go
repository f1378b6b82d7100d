package scryfall

import (
	"errors"
	"fmt"
	"time"
)

// Card layouts with more than one named face.
const (
	LayoutTransform      = "transform"
	LayoutModalDFC       = "modal_dfc"
	LayoutSplit          = "split"
	LayoutFlip           = "flip"
	LayoutAdventure      = "adventure"
	LayoutReversibleCard = "reversible_card"
)

// Bulk data types published under /bulk-data.
const (
	BulkAllCards     = "all_cards"
	BulkDefaultCards = "default_cards"
	BulkOracleCards  = "oracle_cards"
)

// Card is the subset of a Scryfall card object used to link faces.
type Card struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Layout    string     `json:"layout,omitempty"`
	CardFaces []CardFace `json:"card_faces,omitempty"`
}

// FaceNames returns the declared face names in order.
func (c *Card) FaceNames() []string {
	names := make([]string, 0, len(c.CardFaces))
	for _, f := range c.CardFaces {
		names = append(names, f.Name)
	}
	return names
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name     string `json:"name"`
	ManaCost string `json:"mana_cost,omitempty"`
	TypeLine string `json:"type_line,omitempty"`
}

// BulkDataList represents the list of bulk data files.
type BulkDataList struct {
	Object  string     `json:"object"`
	HasMore bool       `json:"has_more"`
	Data    []BulkData `json:"data"`
}

// Find returns the entry of the given type, or nil.
func (l *BulkDataList) Find(bulkType string) *BulkData {
	for i := range l.Data {
		if l.Data[i].Type == bulkType {
			return &l.Data[i]
		}
	}
	return nil
}

// BulkData represents a bulk data file download.
type BulkData struct {
	ID              string    `json:"id"`
	Object          string    `json:"object"`
	Type            string    `json:"type"`
	UpdatedAt       time.Time `json:"updated_at"`
	URI             string    `json:"uri"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Size            int64     `json:"size"`
	DownloadURI     string    `json:"download_uri"`
	ContentType     string    `json:"content_type"`
	ContentEncoding string    `json:"content_encoding"`
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Type     string   `json:"type,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 error from the API.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound returns true if the error is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
