package gpucatalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

// FirstInstancesLimit is the number of records shown on the landing page.
const FirstInstancesLimit = 20

// FirstInstances returns the first FirstInstancesLimit records in storage order,
// each linked to the record after it. The last link points to the next stored
// record when one exists, otherwise its Next is nil. Nothing is persisted.
func (s *Service) FirstInstances(ctx context.Context) ([]domain.GPUSpecLink, error) {
	// One extra row tells whether the last shown record has a successor.
	specs, err := s.specs.ListFirst(ctx, FirstInstancesLimit+1, 0)
	if err != nil {
		return nil, fmt.Errorf("list first instances: %w", err)
	}

	n := min(len(specs), FirstInstancesLimit)
	links := make([]domain.GPUSpecLink, n)
	for i := range n {
		links[i].Spec = specs[i]
		if i+1 < len(specs) {
			links[i].Next = &specs[i+1]
		}
	}

	s.log.DebugContext(ctx, "first instances assembled",
		slog.Int("count", n),
		slog.Bool("has_more", len(specs) > FirstInstancesLimit),
	)
	return links, nil
}

// GetByURLName returns the record whose slug is urlName.
func (s *Service) GetByURLName(ctx context.Context, urlName string) (*domain.GPUSpec, error) {
	urlName = strings.TrimSpace(urlName)
	if urlName == "" {
		return nil, domain.NewValidationError("url_name", "required")
	}
	return s.specs.GetByURLName(ctx, urlName)
}
