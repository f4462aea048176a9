package gpucatalog

import (
	"context"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
	"github.com/heartmarshall/gpuspecs-backend/pkg/ctxutil"
)

// DefaultLanguage is used when neither the caller nor the context names one.
const DefaultLanguage = "en"

// BenchmarkPerformance returns every benchmark entry of spec with its
// description in lang. An empty lang falls back to the context language and
// then to the service default.
func (s *Service) BenchmarkPerformance(ctx context.Context, spec domain.GPUSpec, lang string) []domain.BenchmarkScore {
	lang = s.resolveLang(ctx, lang)

	scores := spec.BenchmarkScores()
	for i := range scores {
		scores[i].Text = s.translator.TestDescription(ctx, scores[i].Name, lang)
	}
	return scores
}

func (s *Service) resolveLang(ctx context.Context, lang string) string {
	if lang != "" {
		return lang
	}
	if fromCtx := ctxutil.LangFromCtx(ctx); fromCtx != "" {
		return fromCtx
	}
	return s.defaultLang
}
