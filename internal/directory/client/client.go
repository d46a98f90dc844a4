// Package client defines the directory query capability consumed by
// resolution and the failure taxonomy its implementations report.
package client

import (
	"context"

	"esbresolver/internal/directory/models"
)

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Directory

// Directory queries one directory site for business, service and binding
// records. Implementations report failures as *Error.
type Directory interface {
	FindBusinessByNameOrKey(ctx context.Context, site models.SiteLocation, id models.Identifier) ([]models.BusinessEntity, error)
	FindServiceByNameOrKey(ctx context.Context, site models.SiteLocation, id models.Identifier) ([]models.BusinessService, error)
	GetBusinessDetail(ctx context.Context, site models.SiteLocation, key string) (*models.BusinessEntity, error)
	GetServiceDetail(ctx context.Context, site models.SiteLocation, key string) (*models.BusinessService, error)
	GetBindingDetail(ctx context.Context, site models.SiteLocation, key string) (*models.BindingTemplate, error)
}
