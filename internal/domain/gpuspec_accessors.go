package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel is returned by single-value accessors when there is no data.
const Sentinel = "-"

// Static asset paths used by the comparison pages.
const (
	gpuImagePathFormat = "/static/assets/img/gpu_images/%s.png"

	BrandImageNvidia = "/static/assets/img/navidia.png"
	BrandImageAMD    = "/static/assets/img/amd.png"
	BrandImageATI    = "/static/assets/img/ati.png"
	BrandImageIntel  = "/static/assets/img/intel.png"
)

// brandImages is ordered: the first brand found in the name wins.
var brandImages = []struct {
	brand string
	path  string
}{
	{"nvidia", BrandImageNvidia},
	{"amd", BrandImageAMD},
	{"ati", BrandImageATI},
	{"intel", BrandImageIntel},
}

// NamedURL pairs a display name with its URL slug.
type NamedURL struct {
	Name    string
	URLName string
}

// PresetValue is the headline score of a game preset.
type PresetValue struct {
	Name  string
	Value any
}

// GameScore is a game's score under a preset feature.
type GameScore struct {
	Name  string
	Score any
}

// PresetFeature groups game scores by preset feature.
type PresetFeature struct {
	Feature string
	Games   []GameScore
}

// SimilarGPUProcess pairs a similar GPU with its recommended processor.
type SimilarGPUProcess struct {
	Name      any
	Processor any
}

// ---------------------------------------------------------------------------
// Primary-record lookups
// ---------------------------------------------------------------------------

// primaryValue reads key from element 0 of seq. Missing data yields Sentinel.
func primaryValue(seq []Object, key string) string {
	if len(seq) == 0 {
		return Sentinel
	}
	v, ok := seq[0].Get(key)
	if !ok {
		return Sentinel
	}
	return DisplayValue(v)
}

// DisplayValue renders a decoded JSON value for templates.
// Strings are returned verbatim, numbers in their source form, null as Sentinel
// and composite values as compact JSON.
func DisplayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return Sentinel
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Sentinel
		}
		return string(b)
	}
}

func (g GPUSpec) SupplementaryPowerConnectors() string {
	return primaryValue(g.CompatibilityDimensionsRequirements, "Supplementary power connectors")
}

// ChipLithography is not present in the source data.
func (g GPUSpec) ChipLithography() string { return Sentinel }

func (g GPUSpec) MarketSegment() string { return primaryValue(g.GeneralInfo, "Market segment") }
func (g GPUSpec) GPUCodeName() string   { return primaryValue(g.GeneralInfo, "GPU code name") }
func (g GPUSpec) Architecture() string  { return primaryValue(g.GeneralInfo, "Architecture") }
func (g GPUSpec) ReleaseDate() string   { return primaryValue(g.GeneralInfo, "Release date") }

// TextureFillRate reads the technical specs group, which is where the exporter
// puts the fill rate.
func (g GPUSpec) TextureFillRate() string {
	return primaryValue(g.TechnicalSpecs, "Texture fill rate")
}

func (g GPUSpec) MemorySize() string       { return primaryValue(g.Memory, "Maximum RAM amount") }
func (g GPUSpec) MemoryType() string       { return primaryValue(g.Memory, "Memory type") }
func (g GPUSpec) MemoryBusWidth() string   { return primaryValue(g.Memory, "Memory bus width") }
func (g GPUSpec) MemoryClockSpeed() string { return primaryValue(g.Memory, "Memory clock speed") }
func (g GPUSpec) MemoryBandwidth() string  { return primaryValue(g.Memory, "Memory bandwidth") }

func (g GPUSpec) CoreClockSpeed() string  { return primaryValue(g.TechnicalSpecs, "Core clock speed") }
func (g GPUSpec) BoostClockSpeed() string { return primaryValue(g.TechnicalSpecs, "Boost clock speed") }
func (g GPUSpec) ThermalDesignPower() string {
	return primaryValue(g.TechnicalSpecs, "Thermal design power (TDP)")
}
func (g GPUSpec) ManufacturingProcessTechnology() string {
	return primaryValue(g.TechnicalSpecs, "Manufacturing process technology")
}
func (g GPUSpec) NumberOfTransistors() string {
	return primaryValue(g.TechnicalSpecs, "Number of transistors")
}
func (g GPUSpec) CUDACores() string { return primaryValue(g.TechnicalSpecs, "Pipelines / CUDA cores") }

func (g GPUSpec) FullHD() string { return primaryValue(g.FPS, "Full HD") }
func (g GPUSpec) R1440p() string { return primaryValue(g.FPS, "1440p") }
func (g GPUSpec) R4K() string    { return primaryValue(g.FPS, "4K") }

// ---------------------------------------------------------------------------
// Name derivations
// ---------------------------------------------------------------------------

// Generation returns every word of the name after the brand.
func (g GPUSpec) Generation() string {
	words := strings.Split(g.Name, " ")
	return strings.Join(words[1:], " ")
}

// URLName is the case-preserving slug used in detail page URLs.
func (g GPUSpec) URLName() string {
	return strings.ReplaceAll(g.Name, " ", "-")
}

// GPUImageName returns the static path of the card's picture.
func (g GPUSpec) GPUImageName() string {
	return fmt.Sprintf(gpuImagePathFormat, slugLower(g.Name))
}

// BrandImage returns the brand logo path. Names matching no known brand fall
// back to the NVIDIA logo.
func (g GPUSpec) BrandImage() string {
	name := strings.ToLower(g.Name)
	for _, b := range brandImages {
		if strings.Contains(name, b.brand) {
			return b.path
		}
	}
	return BrandImageNvidia
}

func slugLower(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// ---------------------------------------------------------------------------
// Benchmarks
// ---------------------------------------------------------------------------

// AllTests returns the test names after the summary entry, skipping entries
// without keys.
func (g GPUSpec) AllTests() []string {
	names := []string{}
	if len(g.Tests) < 2 {
		return names
	}
	for _, test := range g.Tests[1:] {
		if len(test) == 0 {
			continue
		}
		names = append(names, test[0].Key)
	}
	return names
}

// BenchmarkScores returns every test entry (summary included) as name/score
// pairs. Text is left empty; the catalog service fills in translated descriptions.
func (g GPUSpec) BenchmarkScores() []BenchmarkScore {
	scores := make([]BenchmarkScore, 0, len(g.Tests))
	for _, test := range g.Tests {
		if len(test) == 0 {
			continue
		}
		scores = append(scores, BenchmarkScore{Name: test[0].Key, Score: test[0].Value})
	}
	return scores
}

func (g GPUSpec) RelativePerformanceData() []any {
	if len(g.RelativePerformance) == 0 {
		return []any{}
	}
	return g.RelativePerformance[0].Values()
}

func (g GPUSpec) RelativePerformanceNames() []string {
	if len(g.RelativePerformance) == 0 {
		return []string{}
	}
	return g.RelativePerformance[0].Keys()
}

func (g GPUSpec) EquivalentGPUData() []any {
	if len(g.EquivalentGPU) == 0 {
		return []any{}
	}
	return g.EquivalentGPU[0].Values()
}

func (g GPUSpec) EquivalentGPUNames() []string {
	if len(g.EquivalentGPU) == 0 {
		return []string{}
	}
	return g.EquivalentGPU[0].Keys()
}

// EquivalentGPUURLNames returns equivalent GPU names with lowercase slugs.
func (g GPUSpec) EquivalentGPUURLNames() []NamedURL {
	names := g.EquivalentGPUNames()
	out := make([]NamedURL, len(names))
	for i, name := range names {
		out[i] = NamedURL{Name: name, URLName: slugLower(name)}
	}
	return out
}

// SimilarGPUProcesses zips similar GPUs with recommended processors, stopping
// at the shorter list.
func (g GPUSpec) SimilarGPUProcesses() []SimilarGPUProcess {
	n := min(len(g.SimilarGPU), len(g.RecProcessor))
	out := make([]SimilarGPUProcess, n)
	for i := range n {
		out[i] = SimilarGPUProcess{Name: g.SimilarGPU[i], Processor: g.RecProcessor[i]}
	}
	return out
}

// ---------------------------------------------------------------------------
// Presets and games
// ---------------------------------------------------------------------------

// GameFeatures returns the preset feature names. Empty presets yield an empty list.
func (g GPUSpec) GameFeatures() []string {
	if len(g.Presets) == 0 {
		return []string{}
	}
	return g.Presets[0].Keys()
}

// AllPresets returns the first game/score pair of every preset feature.
// Features whose data is not a non-empty list of objects are skipped.
func (g GPUSpec) AllPresets() []PresetValue {
	out := []PresetValue{}
	if len(g.Presets) == 0 {
		return out
	}
	for _, f := range g.Presets[0] {
		games, ok := firstObject(f.Value)
		if !ok || len(games) == 0 {
			continue
		}
		out = append(out, PresetValue{Name: games[0].Key, Value: games[0].Value})
	}
	return out
}

// AllPresetsData returns every game score grouped by preset feature, in source order.
func (g GPUSpec) AllPresetsData() []PresetFeature {
	out := []PresetFeature{}
	if len(g.Presets) == 0 {
		return out
	}
	for _, f := range g.Presets[0] {
		feature := PresetFeature{Feature: f.Key, Games: []GameScore{}}
		if games, ok := firstObject(f.Value); ok {
			for _, game := range games {
				feature.Games = append(feature.Games, GameScore{Name: game.Key, Score: game.Value})
			}
		}
		out = append(out, feature)
	}
	return out
}

// firstObject returns element 0 of v when v is a list starting with an object.
func firstObject(v any) (Object, bool) {
	list, ok := v.(List)
	if !ok || len(list) == 0 {
		return nil, false
	}
	obj, ok := list[0].(Object)
	return obj, ok
}

func (g GPUSpec) AllGames() []string {
	names := make([]string, len(g.Games))
	for i, game := range g.Games {
		names[i] = game.Name
	}
	return names
}

// GameBarChart returns the chart markup of the first game, or "".
func (g GPUSpec) GameBarChart() string {
	if len(g.Games) == 0 {
		return ""
	}
	return g.Games[0].GraphHTML
}
