package service

import (
	"context"
	"errors"

	paymentsdomain "github.com/auroradigital/billingdesk/internal/payments/domain"
	"github.com/auroradigital/billingdesk/pkg/db/option"
	"github.com/auroradigital/billingdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrGatewayMissing = errors.New("payment gateway not configured")

const recentTransactionLimit = 5

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log *zap.Logger

	gatewayrepo repository.Repository[paymentsdomain.GatewayProfile]
	channelrepo repository.Repository[paymentsdomain.Channel]
	txnrepo     repository.Repository[paymentsdomain.Transaction]
}

func New(p Params) paymentsdomain.Service {
	return &Service{
		log: p.Log.Named("payments.service"),

		gatewayrepo: repository.ProvideStore[paymentsdomain.GatewayProfile](p.DB),
		channelrepo: repository.ProvideStore[paymentsdomain.Channel](p.DB),
		txnrepo:     repository.ProvideStore[paymentsdomain.Transaction](p.DB),
	}
}

func (s *Service) Overview(ctx context.Context) (paymentsdomain.GatewayOverview, error) {
	gateway, err := s.gatewayrepo.FindOne(ctx, &paymentsdomain.GatewayProfile{})
	if err != nil {
		return paymentsdomain.GatewayOverview{}, err
	}
	if gateway == nil {
		return paymentsdomain.GatewayOverview{}, ErrGatewayMissing
	}

	rows, err := s.channelrepo.Find(ctx, &paymentsdomain.Channel{GatewayID: gateway.ID},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"id": true}, Field: "id"}),
	)
	if err != nil {
		return paymentsdomain.GatewayOverview{}, err
	}

	channels := make([]paymentsdomain.Channel, 0, len(rows))
	for _, row := range rows {
		channels = append(channels, *row)
	}
	return paymentsdomain.GatewayOverview{Gateway: *gateway, Channels: channels}, nil
}

// Insights summarizes settlement health: settled volume over succeeded
// transactions, success rate over all attempts, failure and pending
// counts, and the five most recent attempts.
func (s *Service) Insights(ctx context.Context) (paymentsdomain.Insights, error) {
	transactions, err := s.ListTransactions(ctx)
	if err != nil {
		return paymentsdomain.Insights{}, err
	}

	insights := paymentsdomain.Insights{}
	succeeded := 0
	for _, txn := range transactions {
		switch txn.Status {
		case paymentsdomain.TransactionSucceeded:
			succeeded++
			insights.TotalVolume += txn.Amount
		case paymentsdomain.TransactionFailed:
			insights.FailureCount++
		case paymentsdomain.TransactionPending:
			insights.PendingCount++
		}
	}
	if len(transactions) > 0 {
		insights.SuccessRate = float64(succeeded) / float64(len(transactions)) * 100
	}

	recent := transactions
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}
	insights.RecentTransactions = recent
	return insights, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]paymentsdomain.Transaction, error) {
	rows, err := s.txnrepo.Find(ctx, &paymentsdomain.Transaction{},
		option.WithSortBy(option.QuerySortBy{
			Allow: map[string]bool{"received_at": true},
			Field: "received_at",
			Desc:  true,
		}),
	)
	if err != nil {
		return nil, err
	}

	out := make([]paymentsdomain.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}
