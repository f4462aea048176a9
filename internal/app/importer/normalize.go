package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

// sourceKeyMap renames export keys that do not match a field name.
var sourceKeyMap = map[string]string{
	"compatibility, dimensions and requirements": "compatibility_dimensions_requirements",
}

// fieldSetter applies one source value to a record. It reports whether a
// malformed numeric value was coerced to zero.
type fieldSetter func(s *domain.GPUSpec, v any) (coerced bool, err error)

var fieldSetters = map[string]fieldSetter{
	"url":        stringField(func(s *domain.GPUSpec) *string { return &s.URL }),
	"name":       stringField(func(s *domain.GPUSpec) *string { return &s.Name }),
	"currency":   stringField(func(s *domain.GPUSpec) *string { return &s.Currency }),
	"graph_html": stringField(func(s *domain.GPUSpec) *string { return &s.GraphHTML }),
	"amzn_link":  stringField(func(s *domain.GPUSpec) *string { return &s.AmznLink }),

	"price":       setPrice,
	"year":        setYear,
	"performance": setPerformance,

	"general_info":    objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.GeneralInfo }),
	"technical_specs": objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.TechnicalSpecs }),
	"compatibility_dimensions_requirements": objectsField(func(s *domain.GPUSpec) *[]domain.Object {
		return &s.CompatibilityDimensionsRequirements
	}),
	"memory":               objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.Memory }),
	"video_outputs_ports":  objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.VideoOutputsPorts }),
	"technologies":         objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.Technologies }),
	"api_support":          objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.APISupport }),
	"tests":                objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.Tests }),
	"fps":                  objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.FPS }),
	"relative_performance": objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.RelativePerformance }),
	"equivalent_gpu":       objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.EquivalentGPU }),
	"presets":              objectsField(func(s *domain.GPUSpec) *[]domain.Object { return &s.Presets }),

	"similar_gpu":   listField(func(s *domain.GPUSpec) *domain.List { return &s.SimilarGPU }),
	"rec_processor": listField(func(s *domain.GPUSpec) *domain.List { return &s.RecProcessor }),

	"games": setGames,
}

// fieldName maps a source key to its record field name.
func fieldName(key string) string {
	if mapped, ok := sourceKeyMap[key]; ok {
		return mapped
	}
	return key
}

func stringField(dst func(*domain.GPUSpec) *string) fieldSetter {
	return func(s *domain.GPUSpec, v any) (bool, error) {
		switch x := v.(type) {
		case nil:
			*dst(s) = ""
		case string:
			*dst(s) = x
		case json.Number:
			*dst(s) = x.String()
		default:
			return false, fmt.Errorf("expected string, got %T", v)
		}
		return false, nil
	}
}

func objectsField(dst func(*domain.GPUSpec) *[]domain.Object) fieldSetter {
	return func(s *domain.GPUSpec, v any) (bool, error) {
		return false, decodeSequence(v, dst(s))
	}
}

func listField(dst func(*domain.GPUSpec) *domain.List) fieldSetter {
	return func(s *domain.GPUSpec, v any) (bool, error) {
		return false, decodeSequence(v, dst(s))
	}
}

func setGames(s *domain.GPUSpec, v any) (bool, error) {
	return false, decodeSequence(v, &s.Games)
}

// decodeSequence re-encodes an already decoded value into a typed sequence.
// Object marshals in source order, so nested key order survives.
func decodeSequence[S ~[]E, E any](v any, dst *S) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return domain.UnmarshalSequence(b, dst)
}

func setPrice(s *domain.GPUSpec, v any) (bool, error) {
	text, _ := scalarText(v)
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), " USD"))
	n, ok := parseInt(text, v)
	s.Price = float64(n)
	return !ok, nil
}

func setYear(s *domain.GPUSpec, v any) (bool, error) {
	text, _ := scalarText(v)
	n, ok := parseInt(strings.TrimSpace(text), v)
	s.Year = n
	return !ok, nil
}

func setPerformance(s *domain.GPUSpec, v any) (bool, error) {
	text, _ := scalarText(v)
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		s.Performance = 0
		return true, nil
	}
	s.Performance = f
	return false, nil
}

// scalarText returns the textual form of a string or number value.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}

// parseInt parses text as a base-10 integer. A JSON number that is integral
// but written with a fraction or exponent ("499.0", "2e3") is accepted too.
func parseInt(text string, raw any) (int, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	if _, isNumber := raw.(json.Number); !isNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
