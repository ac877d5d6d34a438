package insights

import (
	"context"

	"vision/pkg/visionapi"
)

// UseCase is the read-only statistics surface of the Vision API. The client
// caches these responses, so the local UI can poll them freely.
type UseCase interface {
	Skills(ctx context.Context) ([]visionapi.Skill, error)
	WeeklyStats(ctx context.Context) (visionapi.WeeklyStats, error)
	MonthlyStats(ctx context.Context) (visionapi.MonthlyStats, error)
	LossData(ctx context.Context) (visionapi.LossData, error)
}

var _ UseCase = (visionapi.IVision)(nil)
