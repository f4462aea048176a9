// Package gpurow maps domain.GPUSpec to and from the gpu_specs table row shape
// shared by the SQL adapters. Nested groups are stored as JSON text columns.
package gpurow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

// Table is the storage table name.
const Table = "gpu_specs"

// OrderColumn defines the default storage order (insertion order).
const OrderColumn = "seq"

// Columns lists the selectable/insertable columns in Row field order.
var Columns = []string{
	"id", "url", "name", "url_name", "performance", "year", "price", "currency",
	"general_info", "technical_specs", "compatibility_dimensions_requirements",
	"memory", "video_outputs_ports", "technologies", "api_support",
	"tests", "fps", "relative_performance", "equivalent_gpu",
	"similar_gpu", "rec_processor", "presets", "games",
	"graph_html", "amzn_link", "created_at",
}

// Row is the flat storage representation of a GPU specification.
type Row struct {
	ID          uuid.UUID `db:"id"`
	URL         string    `db:"url"`
	Name        string    `db:"name"`
	URLName     string    `db:"url_name"`
	Performance float64   `db:"performance"`
	Year        int       `db:"year"`
	Price       float64   `db:"price"`
	Currency    string    `db:"currency"`

	GeneralInfo                         []byte `db:"general_info"`
	TechnicalSpecs                      []byte `db:"technical_specs"`
	CompatibilityDimensionsRequirements []byte `db:"compatibility_dimensions_requirements"`
	Memory                              []byte `db:"memory"`
	VideoOutputsPorts                   []byte `db:"video_outputs_ports"`
	Technologies                        []byte `db:"technologies"`
	APISupport                          []byte `db:"api_support"`
	Tests                               []byte `db:"tests"`
	FPS                                 []byte `db:"fps"`
	RelativePerformance                 []byte `db:"relative_performance"`
	EquivalentGPU                       []byte `db:"equivalent_gpu"`
	SimilarGPU                          []byte `db:"similar_gpu"`
	RecProcessor                        []byte `db:"rec_processor"`
	Presets                             []byte `db:"presets"`
	Games                               []byte `db:"games"`

	GraphHTML string    `db:"graph_html"`
	AmznLink  string    `db:"amzn_link"`
	CreatedAt time.Time `db:"created_at"`
}

// Values returns the column values in Columns order.
func (r Row) Values() []any {
	return []any{
		r.ID, r.URL, r.Name, r.URLName, r.Performance, r.Year, r.Price, r.Currency,
		r.GeneralInfo, r.TechnicalSpecs, r.CompatibilityDimensionsRequirements,
		r.Memory, r.VideoOutputsPorts, r.Technologies, r.APISupport,
		r.Tests, r.FPS, r.RelativePerformance, r.EquivalentGPU,
		r.SimilarGPU, r.RecProcessor, r.Presets, r.Games,
		r.GraphHTML, r.AmznLink, r.CreatedAt,
	}
}

// FromDomain encodes a record for insertion.
func FromDomain(s domain.GPUSpec) (Row, error) {
	r := Row{
		ID:          s.ID,
		URL:         s.URL,
		Name:        s.Name,
		URLName:     s.URLName(),
		Performance: s.Performance,
		Year:        s.Year,
		Price:       s.Price,
		Currency:    s.Currency,
		GraphHTML:   s.GraphHTML,
		AmznLink:    s.AmznLink,
		CreatedAt:   s.CreatedAt,
	}

	columns := []struct {
		name   string
		dst    *[]byte
		encode func() ([]byte, error)
	}{
		{"general_info", &r.GeneralInfo, func() ([]byte, error) { return domain.MarshalSequence(s.GeneralInfo) }},
		{"technical_specs", &r.TechnicalSpecs, func() ([]byte, error) { return domain.MarshalSequence(s.TechnicalSpecs) }},
		{"compatibility_dimensions_requirements", &r.CompatibilityDimensionsRequirements, func() ([]byte, error) {
			return domain.MarshalSequence(s.CompatibilityDimensionsRequirements)
		}},
		{"memory", &r.Memory, func() ([]byte, error) { return domain.MarshalSequence(s.Memory) }},
		{"video_outputs_ports", &r.VideoOutputsPorts, func() ([]byte, error) { return domain.MarshalSequence(s.VideoOutputsPorts) }},
		{"technologies", &r.Technologies, func() ([]byte, error) { return domain.MarshalSequence(s.Technologies) }},
		{"api_support", &r.APISupport, func() ([]byte, error) { return domain.MarshalSequence(s.APISupport) }},
		{"tests", &r.Tests, func() ([]byte, error) { return domain.MarshalSequence(s.Tests) }},
		{"fps", &r.FPS, func() ([]byte, error) { return domain.MarshalSequence(s.FPS) }},
		{"relative_performance", &r.RelativePerformance, func() ([]byte, error) { return domain.MarshalSequence(s.RelativePerformance) }},
		{"equivalent_gpu", &r.EquivalentGPU, func() ([]byte, error) { return domain.MarshalSequence(s.EquivalentGPU) }},
		{"similar_gpu", &r.SimilarGPU, func() ([]byte, error) { return domain.MarshalSequence(s.SimilarGPU) }},
		{"rec_processor", &r.RecProcessor, func() ([]byte, error) { return domain.MarshalSequence(s.RecProcessor) }},
		{"presets", &r.Presets, func() ([]byte, error) { return domain.MarshalSequence(s.Presets) }},
		{"games", &r.Games, func() ([]byte, error) { return domain.MarshalSequence(s.Games) }},
	}
	for _, c := range columns {
		b, err := c.encode()
		if err != nil {
			return Row{}, fmt.Errorf("encode %s of gpu_spec %s: %w", c.name, s.ID, err)
		}
		*c.dst = b
	}

	return r, nil
}

// ToDomain decodes a stored row. Nested groups are never nil in the result.
func ToDomain(r Row) (domain.GPUSpec, error) {
	s := domain.GPUSpec{
		ID:          r.ID,
		URL:         r.URL,
		Name:        r.Name,
		Performance: r.Performance,
		Year:        r.Year,
		Price:       r.Price,
		Currency:    r.Currency,
		GraphHTML:   r.GraphHTML,
		AmznLink:    r.AmznLink,
		CreatedAt:   r.CreatedAt,
	}

	columns := []struct {
		name   string
		data   []byte
		decode func([]byte) error
	}{
		{"general_info", r.GeneralInfo, func(b []byte) error { return domain.UnmarshalSequence(b, &s.GeneralInfo) }},
		{"technical_specs", r.TechnicalSpecs, func(b []byte) error { return domain.UnmarshalSequence(b, &s.TechnicalSpecs) }},
		{"compatibility_dimensions_requirements", r.CompatibilityDimensionsRequirements, func(b []byte) error {
			return domain.UnmarshalSequence(b, &s.CompatibilityDimensionsRequirements)
		}},
		{"memory", r.Memory, func(b []byte) error { return domain.UnmarshalSequence(b, &s.Memory) }},
		{"video_outputs_ports", r.VideoOutputsPorts, func(b []byte) error { return domain.UnmarshalSequence(b, &s.VideoOutputsPorts) }},
		{"technologies", r.Technologies, func(b []byte) error { return domain.UnmarshalSequence(b, &s.Technologies) }},
		{"api_support", r.APISupport, func(b []byte) error { return domain.UnmarshalSequence(b, &s.APISupport) }},
		{"tests", r.Tests, func(b []byte) error { return domain.UnmarshalSequence(b, &s.Tests) }},
		{"fps", r.FPS, func(b []byte) error { return domain.UnmarshalSequence(b, &s.FPS) }},
		{"relative_performance", r.RelativePerformance, func(b []byte) error { return domain.UnmarshalSequence(b, &s.RelativePerformance) }},
		{"equivalent_gpu", r.EquivalentGPU, func(b []byte) error { return domain.UnmarshalSequence(b, &s.EquivalentGPU) }},
		{"similar_gpu", r.SimilarGPU, func(b []byte) error { return domain.UnmarshalSequence(b, &s.SimilarGPU) }},
		{"rec_processor", r.RecProcessor, func(b []byte) error { return domain.UnmarshalSequence(b, &s.RecProcessor) }},
		{"presets", r.Presets, func(b []byte) error { return domain.UnmarshalSequence(b, &s.Presets) }},
		{"games", r.Games, func(b []byte) error { return domain.UnmarshalSequence(b, &s.Games) }},
	}
	for _, c := range columns {
		if err := c.decode(c.data); err != nil {
			return domain.GPUSpec{}, fmt.Errorf("decode %s of gpu_spec %s: %w", c.name, r.ID, err)
		}
	}

	return s, nil
}

// ToDomainList decodes rows in order.
func ToDomainList(rows []Row) ([]domain.GPUSpec, error) {
	specs := make([]domain.GPUSpec, len(rows))
	for i, r := range rows {
		s, err := ToDomain(r)
		if err != nil {
			return nil, err
		}
		specs[i] = s
	}
	return specs, nil
}
