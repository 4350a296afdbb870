package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"

	activitydomain "github.com/auroradigital/billingdesk/internal/activity/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/auroradigital/billingdesk/pkg/db/option"
	"github.com/auroradigital/billingdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo repository.Repository[activitydomain.Entry]
}

func NewService(p Params) activitydomain.Recorder {
	return &Service{
		log:   p.Log.Named("activity.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[activitydomain.Entry](p.DB),
	}
}

// Record appends one trail entry. A failed write is logged and
// returned but must never abort the operation being recorded.
func (s *Service) Record(ctx context.Context, in activitydomain.NewEntry) error {
	summary := strings.TrimSpace(in.Summary)
	if summary == "" {
		return nil
	}

	activityType := in.ActivityType
	if activityType == "" {
		activityType = activitydomain.TypeSystem
	}

	entry := activitydomain.Entry{
		ID:               s.genID.Generate().String(),
		Actor:            strings.TrimSpace(in.Actor),
		ActivityType:     activityType,
		Summary:          summary,
		RelatedInvoiceID: in.RelatedInvoiceID,
		Timestamp:        s.clock.Now(),
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		s.log.Warn("failed to write activity entry", zap.String("summary", summary), zap.Error(err))
		return err
	}
	return nil
}

// List returns trail entries newest first.
func (s *Service) List(ctx context.Context, limit int) ([]activitydomain.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.repo.Find(ctx, &activitydomain.Entry{},
		option.WithSortBy(option.QuerySortBy{
			Allow: map[string]bool{"timestamp": true},
			Field: "timestamp",
			Desc:  true,
		}),
		option.WithLimit(limit),
	)
	if err != nil {
		return nil, err
	}

	out := make([]activitydomain.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}
