package domain

import (
	"crypto/md5" //nolint:gosec // Identifier derivation, not security.
	"encoding/hex"
	"fmt"
)

// Ingredient is a single parsed or model-suggested ingredient entry.
type Ingredient struct {
	// Name is the ingredient name with any amount prefix removed.
	Name string `json:"name"`

	// Amount is the quantity as written ("2", "1/2"), empty when the
	// line carried no recognisable amount.
	Amount string `json:"amount,omitempty"`

	// Unit is the measurement unit ("tsp", "cup"), empty when absent.
	Unit string `json:"unit,omitempty"`

	// Raw is the original line the ingredient was parsed from.
	Raw string `json:"raw,omitempty"`

	// Link is the affiliate shopping URL for the ingredient name.
	// Populated at response time, never persisted.
	Link string `json:"link,omitempty"`
}

// RemedySource identifies where in the book a remedy was found.
type RemedySource struct {
	Chapter  string `json:"chapter"`
	Position int    `json:"pos"`
}

// Remedy is an ingredient/instruction bundle assembled from a single
// chunk during a search request. Remedies are ephemeral: they are built
// per request and never stored.
type Remedy struct {
	// ID is a short content hash of the source location, used to
	// suppress duplicates within one response.
	ID string `json:"id"`

	// Title is the first sentence of the source chunk, truncated.
	Title string `json:"title"`

	// Summary is an optional model-written summary. Empty when
	// extraction ran heuristically.
	Summary string `json:"summary,omitempty"`

	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`

	Source RemedySource `json:"source"`
}

// RemedyID derives the duplicate-suppression identifier for a chunk
// location: the first 12 hex characters of MD5(chapter + position).
func RemedyID(chapter string, position int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%d", chapter, position))) //nolint:gosec
	return hex.EncodeToString(sum[:])[:12]
}
