package service

import (
	"context"
	"errors"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/pkg/db/option"
	"github.com/auroradigital/billingdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrOrganizationMissing = errors.New("organization profile not seeded")

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log *zap.Logger

	servicerepo repository.Repository[catalogdomain.Service]
	clientrepo  repository.Repository[catalogdomain.ClientProfile]
	orgrepo     repository.Repository[catalogdomain.Organization]
}

func New(p ServiceParam) catalogdomain.Directory {
	return &Service{
		log: p.Log.Named("catalog.service"),

		servicerepo: repository.ProvideStore[catalogdomain.Service](p.DB),
		clientrepo:  repository.ProvideStore[catalogdomain.ClientProfile](p.DB),
		orgrepo:     repository.ProvideStore[catalogdomain.Organization](p.DB),
	}
}

func (s *Service) ListServices(ctx context.Context) ([]catalogdomain.Service, error) {
	rows, err := s.servicerepo.Find(ctx, &catalogdomain.Service{},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"id": true}, Field: "id"}),
	)
	if err != nil {
		return nil, err
	}
	out := make([]catalogdomain.Service, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) GetService(ctx context.Context, id string) (catalogdomain.Service, bool, error) {
	row, err := s.servicerepo.FindOne(ctx, &catalogdomain.Service{ID: id})
	if err != nil {
		return catalogdomain.Service{}, false, err
	}
	if row == nil {
		return catalogdomain.Service{}, false, nil
	}
	return *row, true, nil
}

func (s *Service) ListClients(ctx context.Context) ([]catalogdomain.ClientProfile, error) {
	rows, err := s.clientrepo.Find(ctx, &catalogdomain.ClientProfile{},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"id": true}, Field: "id"}),
	)
	if err != nil {
		return nil, err
	}
	out := make([]catalogdomain.ClientProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (catalogdomain.ClientProfile, bool, error) {
	row, err := s.clientrepo.FindOne(ctx, &catalogdomain.ClientProfile{ID: id})
	if err != nil {
		return catalogdomain.ClientProfile{}, false, err
	}
	if row == nil {
		return catalogdomain.ClientProfile{}, false, nil
	}
	return *row, true, nil
}

func (s *Service) Organization(ctx context.Context) (catalogdomain.Organization, error) {
	row, err := s.orgrepo.FindOne(ctx, &catalogdomain.Organization{})
	if err != nil {
		return catalogdomain.Organization{}, err
	}
	if row == nil {
		return catalogdomain.Organization{}, ErrOrganizationMissing
	}
	return *row, nil
}
