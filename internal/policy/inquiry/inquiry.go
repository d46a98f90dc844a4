// Package inquiry exposes directory resolution to rules as a fact.
package inquiry

import (
	"context"
	"fmt"
	"log/slog"

	dirmodels "esbresolver/internal/directory/models"
	"esbresolver/internal/policy/ruleengine"
	dErrors "esbresolver/pkg/domain-errors"
)

// FactName is the name rules use for the inquiry fact.
const FactName = "Inquiry"

//go:generate mockgen -source=inquiry.go -destination=mocks/mocks.go -package=mocks Resolver

// Resolver is the directory resolution the fact delegates to.
type Resolver interface {
	FindAccessPointForService(ctx context.Context, provider *dirmodels.Identifier, service dirmodels.Identifier, useType dirmodels.AccessPointUseType) (string, error)
	ResolveEndpoint(ctx context.Context, provider *dirmodels.Identifier, service dirmodels.Identifier, useType dirmodels.AccessPointUseType) (string, error)
}

// Fact lets rules look up access points. It is bound to the context of the
// evaluation that created it since rule expressions carry none.
type Fact struct {
	ctx      context.Context
	resolver Resolver
	logger   *slog.Logger
}

// New returns the inquiry fact for one evaluation. Without a resolver it
// returns a placeholder that finds nothing.
func New(ctx context.Context, resolver Resolver, logger *slog.Logger) ruleengine.Fact {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		logger.WarnContext(ctx, "directory resolver unavailable, using empty inquiry fact")
		return Placeholder{}
	}
	return &Fact{ctx: ctx, resolver: resolver, logger: logger}
}

// FactName implements ruleengine.Fact.
func (f *Fact) FactName() string { return FactName }

// FindAccessPoint looks up by names. An empty provider searches by service
// alone.
func (f *Fact) FindAccessPoint(provider, service, useType string) (string, error) {
	return f.find(provider, service, useType, false, false)
}

// FindAccessPointByKey looks up by directory keys.
func (f *Fact) FindAccessPointByKey(providerKey, serviceKey, useType string) (string, error) {
	return f.find(providerKey, serviceKey, useType, true, false)
}

// ResolveEndpoint looks up by names and rebases the result onto the
// service host.
func (f *Fact) ResolveEndpoint(provider, service, useType string) (string, error) {
	return f.find(provider, service, useType, false, true)
}

func (f *Fact) find(provider, service, useType string, byKey, rebase bool) (string, error) {
	ut, ok := dirmodels.ParseUseType(useType)
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown access point use type %q", useType))
	}
	svc, err := identifier(service, byKey)
	if err != nil {
		return "", err
	}
	var prov *dirmodels.Identifier
	if provider != "" {
		p, err := identifier(provider, byKey)
		if err != nil {
			return "", err
		}
		prov = &p
	}

	if rebase {
		return f.resolver.ResolveEndpoint(f.ctx, prov, svc, ut)
	}
	return f.resolver.FindAccessPointForService(f.ctx, prov, svc, ut)
}

func identifier(v string, byKey bool) (dirmodels.Identifier, error) {
	if byKey {
		return dirmodels.NewKey(v)
	}
	return dirmodels.NewName(v)
}

// Placeholder stands in when no resolver can be built.
type Placeholder struct{}

// FactName implements ruleengine.Fact.
func (Placeholder) FactName() string { return FactName }

// FindAccessPoint always finds nothing.
func (Placeholder) FindAccessPoint(_, _, _ string) (string, error) { return "", nil }

// FindAccessPointByKey always finds nothing.
func (Placeholder) FindAccessPointByKey(_, _, _ string) (string, error) { return "", nil }

// ResolveEndpoint always finds nothing.
func (Placeholder) ResolveEndpoint(_, _, _ string) (string, error) { return "", nil }
