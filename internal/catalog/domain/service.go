package domain

import "context"

// Directory exposes read-only reference data lookups. Misses are
// reported through the found flag, never as errors.
type Directory interface {
	ListServices(ctx context.Context) ([]Service, error)
	GetService(ctx context.Context, id string) (Service, bool, error)
	ListClients(ctx context.Context) ([]ClientProfile, error)
	GetClient(ctx context.Context, id string) (ClientProfile, bool, error)
	Organization(ctx context.Context) (Organization, error)
}
