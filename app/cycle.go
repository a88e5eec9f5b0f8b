package app

import (
	"context"
	"log/slog"

	"hnsync/domain"
)

type Ingester interface {
	Ingest(ctx context.Context, ids []int64) (domain.IngestionReport, error)
}

// RunCycle lists the current top stories and ingests them. A list failure
// is returned as is and nothing is written.
func RunCycle(ctx context.Context, lister domain.StoryLister, ing Ingester) (domain.IngestionReport, error) {
	ids, err := lister.ListTopStoryIDs(ctx)
	if err != nil {
		return domain.IngestionReport{}, err
	}
	if len(ids) == 0 {
		slog.Info("top stories list is empty, nothing to ingest")
		return domain.IngestionReport{}, nil
	}
	return ing.Ingest(ctx, ids)
}
