package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is applied to records imported without a currency.
const DefaultCurrency = "USD"

// GPUSpec is an immutable GPU specification record (one per GPU model).
//
// Nested groups are lists of objects; element 0 is the primary record that
// single-value accessors read from. Records are created only by the bulk
// importer and never updated afterwards.
type GPUSpec struct {
	ID          uuid.UUID
	URL         string
	Name        string
	Performance float64
	Year        int
	Price       float64
	Currency    string

	GeneralInfo                         []Object
	TechnicalSpecs                      []Object
	CompatibilityDimensionsRequirements []Object
	Memory                              []Object
	VideoOutputsPorts                   []Object
	Technologies                        []Object
	APISupport                          []Object

	// Tests holds single-key score maps; Tests[0] is the summary entry.
	Tests               []Object
	FPS                 []Object
	RelativePerformance []Object
	EquivalentGPU       []Object
	// SimilarGPU and RecProcessor are correlated by index.
	SimilarGPU   List
	RecProcessor List
	// Presets[0] maps a feature name to a list whose element 0 maps game → score.
	Presets []Object

	Games     []Game
	GraphHTML string
	AmznLink  string

	CreatedAt time.Time
}

// Game is a benchmarked game with its pre-rendered chart markup.
type Game struct {
	Name      string `json:"name"`
	GraphHTML string `json:"graph_html"`
}

func (g GPUSpec) String() string {
	return fmt.Sprintf("%s -- %d -- %v %s", g.Name, g.Year, g.Price, g.Currency)
}

// GPUSpecLink is a transient view value pairing a record with the record that
// follows it, used to build "A vs B" comparison links. It is never persisted.
type GPUSpecLink struct {
	Spec GPUSpec
	Next *GPUSpec
}

// CompareURLName returns the comparison slug for Spec against Next,
// or "" when there is no next record.
func (l GPUSpecLink) CompareURLName() string {
	if l.Next == nil {
		return ""
	}
	return ComparisonSlug(l.Spec, *l.Next)
}

// ComparisonSlug builds the "<a>-vs-<b>" slug of a comparison page.
func ComparisonSlug(a, b GPUSpec) string {
	return a.URLName() + "-vs-" + b.URLName()
}

// BenchmarkScore is one row of the benchmark table.
type BenchmarkScore struct {
	Name  string
	Score any
	Text  string
}
