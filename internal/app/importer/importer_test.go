package importer

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockBulkRepo struct {
	BulkInsertFunc func(ctx context.Context, specs []domain.GPUSpec) (int, error)
	calls          int
}

func (m *mockBulkRepo) BulkInsert(ctx context.Context, specs []domain.GPUSpec) (int, error) {
	m.calls++
	return m.BulkInsertFunc(ctx, specs)
}

// capturingRepo stores the last batch and reports it as fully inserted.
func capturingRepo(dst *[]domain.GPUSpec) *mockBulkRepo {
	return &mockBulkRepo{
		BulkInsertFunc: func(_ context.Context, specs []domain.GPUSpec) (int, error) {
			*dst = specs
			return len(specs), nil
		},
	}
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gpus.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestImporter(repo GPUSpecBulkRepo, cfg Config) *Importer {
	imp := NewImporter(slog.Default(), repo, cfg)
	imp.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return imp
}

const fullRecord = `{
	"url": "https://example.com/rtx-3080",
	"name": "NVIDIA GeForce RTX 3080",
	"performance": "71.35",
	"year": "2020",
	"price": "699 USD",
	"general_info": [{"Market segment": "Desktop", "Architecture": "Ampere", "Release date": "Sep 2020"}],
	"compatibility, dimensions and requirements": [{"Supplementary power connectors": "1x 12-pin"}],
	"tests": [{"Overall": 100}, {"Passmark": 24000}],
	"similar_gpu": ["RX 6800 XT", "RTX 3070 Ti"],
	"rec_processor": ["Ryzen 7 5800X"],
	"presets": [{"Ultra": [{"Cyberpunk 2077": 62}]}],
	"games": [{"name": "Cyberpunk 2077", "graph_html": "<div>62</div>"}],
	"graph_html": "<svg/>",
	"amzn_link": "https://amazon.example/rtx3080",
	"scraped_at": "2023-03-30"
}`

// ---------------------------------------------------------------------------
// ImportFrom tests
// ---------------------------------------------------------------------------

func TestImporter_ImportFrom_FullRecord(t *testing.T) {
	t.Parallel()

	var stored []domain.GPUSpec
	imp := newTestImporter(capturingRepo(&stored), Config{})

	n, err := imp.ImportFrom(context.Background(), writeSource(t, "["+fullRecord+"]"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, stored, 1)

	got := stored[0]
	assert.NotEqual(t, [16]byte{}, [16]byte(got.ID))
	assert.Equal(t, "NVIDIA GeForce RTX 3080", got.Name)
	assert.Equal(t, "https://example.com/rtx-3080", got.URL)
	assert.Equal(t, 71.35, got.Performance)
	assert.Equal(t, 2020, got.Year)
	assert.Equal(t, float64(699), got.Price)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, []string{"Market segment", "Architecture", "Release date"}, got.GeneralInfo[0].Keys())
	assert.Equal(t, "1x 12-pin", got.SupplementaryPowerConnectors())
	assert.Equal(t, []string{"Passmark"}, got.AllTests())
	assert.Len(t, got.SimilarGPUProcesses(), 1)
	assert.Equal(t, []string{"Ultra"}, got.GameFeatures())
	assert.Equal(t, "<div>62</div>", got.GameBarChart())
	assert.Equal(t, "<svg/>", got.GraphHTML)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got.CreatedAt)
	assert.NotNil(t, got.Memory)
	assert.Empty(t, got.Memory)
}

func TestImporter_ImportFrom_PriceNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		price     string
		wantPrice float64
	}{
		{name: "usd suffix", price: `"499 USD"`, wantPrice: 499},
		{name: "not a number", price: `"N/A"`, wantPrice: 0},
		{name: "plain integer string", price: `"1299"`, wantPrice: 1299},
		{name: "json integer", price: `349`, wantPrice: 349},
		{name: "integral json float", price: `349.0`, wantPrice: 349},
		{name: "fractional", price: `"19.99 USD"`, wantPrice: 0},
		{name: "null", price: `null`, wantPrice: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stored []domain.GPUSpec
			imp := newTestImporter(capturingRepo(&stored), Config{})

			_, err := imp.ImportFrom(context.Background(), writeSource(t, `[{"name":"Card","price":`+tt.price+`}]`))
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, tt.wantPrice, stored[0].Price)
		})
	}
}

func TestImporter_Run_CoercesYearAndPerformance(t *testing.T) {
	t.Parallel()

	var stored []domain.GPUSpec
	imp := newTestImporter(capturingRepo(&stored), Config{})

	res, err := imp.Run(context.Background(), writeSource(t,
		`[{"name":"A","year":"unknown","performance":"fast","price":"10 USD"},
		  {"name":"B","year":2019,"performance":55,"price":"oops"},
		  {"name":"C","performance":"NaN"}]`))
	require.NoError(t, err)
	require.Len(t, stored, 3)

	assert.Equal(t, 0, stored[0].Year)
	assert.Equal(t, float64(0), stored[0].Performance)
	assert.Equal(t, float64(10), stored[0].Price)
	assert.Equal(t, 2019, stored[1].Year)
	assert.Equal(t, float64(55), stored[1].Performance)
	assert.Equal(t, float64(0), stored[2].Performance)

	assert.Equal(t, 3, res.Parsed)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 4, res.Coerced)
}

func TestImporter_Run_UnknownKeysIgnored(t *testing.T) {
	t.Parallel()

	var stored []domain.GPUSpec
	imp := newTestImporter(capturingRepo(&stored), Config{})

	res, err := imp.Run(context.Background(), writeSource(t, `[{"name":"A","colour":"green","id":"abc"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.IgnoredKeys)
	assert.Equal(t, "A", stored[0].Name)
}

func TestImporter_ImportFrom_DefaultCurrencyFromConfig(t *testing.T) {
	t.Parallel()

	var stored []domain.GPUSpec
	imp := newTestImporter(capturingRepo(&stored), Config{DefaultCurrency: "EUR"})

	_, err := imp.ImportFrom(context.Background(), writeSource(t, `[{"name":"A"},{"name":"B","currency":"GBP"}]`))
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored[0].Currency)
	assert.Equal(t, "GBP", stored[1].Currency)
}

func TestImporter_ImportFrom_MissingFile(t *testing.T) {
	t.Parallel()

	repo := &mockBulkRepo{}
	imp := newTestImporter(repo, Config{})

	_, err := imp.ImportFrom(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected fs.ErrNotExist, got %v", err)
	assert.Zero(t, repo.calls)
}

func TestImporter_ImportFrom_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "invalid json", content: `[{"name":`},
		{name: "object instead of array", content: `{"name":"A"}`},
		{name: "top-level null", content: `null`},
		{name: "array of strings", content: `["A","B"]`},
		{name: "null record", content: `[{"name":"A"}, null]`},
		{name: "nested group is not a list", content: `[{"name":"A","memory":{"Memory type":"GDDR6"}}]`},
		{name: "nested group of scalars", content: `[{"name":"A","tests":[1,2]}]`},
		{name: "name is an object", content: `[{"name":{"first":"A"}}]`},
		{name: "trailing garbage", content: `[{"name":"A"}] extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockBulkRepo{}
			imp := newTestImporter(repo, Config{})

			_, err := imp.ImportFrom(context.Background(), writeSource(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.Zero(t, repo.calls, "store must not be called on parse errors")
		})
	}
}

func TestImporter_ImportFrom_EmptyArray(t *testing.T) {
	t.Parallel()

	repo := &mockBulkRepo{}
	imp := newTestImporter(repo, Config{})

	n, err := imp.ImportFrom(context.Background(), writeSource(t, `[]`))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, repo.calls)
}

func TestImporter_ImportFrom_DryRunNeverCallsStore(t *testing.T) {
	t.Parallel()

	repo := &mockBulkRepo{}
	imp := newTestImporter(repo, Config{DryRun: true})

	n, err := imp.ImportFrom(context.Background(), writeSource(t, `[{"name":"A"},{"name":"B"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, repo.calls)
}

func TestImporter_ImportFrom_StoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	repo := &mockBulkRepo{
		BulkInsertFunc: func(_ context.Context, _ []domain.GPUSpec) (int, error) {
			return 0, storeErr
		},
	}
	imp := newTestImporter(repo, Config{})

	n, err := imp.ImportFrom(context.Background(), writeSource(t, `[{"name":"A"}]`))
	require.ErrorIs(t, err, storeErr)
	assert.Zero(t, n)
	assert.Equal(t, 1, repo.calls)
}

func TestImporter_ImportFrom_SingleBatchWithSharedTimestamp(t *testing.T) {
	t.Parallel()

	var stored []domain.GPUSpec
	repo := capturingRepo(&stored)
	imp := newTestImporter(repo, Config{})

	n, err := imp.ImportFrom(context.Background(), writeSource(t, `[{"name":"A"},{"name":"B"},{"name":"C"}]`))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, repo.calls)

	seen := map[[16]byte]bool{}
	for _, s := range stored {
		assert.Equal(t, stored[0].CreatedAt, s.CreatedAt)
		assert.False(t, seen[s.ID], "IDs must be unique")
		seen[s.ID] = true
	}
}
