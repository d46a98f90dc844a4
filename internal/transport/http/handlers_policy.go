package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"esbresolver/internal/policy/models"
	dErrors "esbresolver/pkg/domain-errors"
	"esbresolver/pkg/platform/httputil"
	"esbresolver/pkg/platform/middleware/admin"
)

//go:generate mockgen -source=handlers_policy.go -destination=mocks/policy-mocks.go -package=mocks PolicyEvaluator,PolicyCatalog,VersionLister

// PolicyEvaluator runs resolution and interception policies.
type PolicyEvaluator interface {
	Resolve(ctx context.Context, req models.ResolutionRequest) (*models.ResolutionResponse, error)
	GetInterceptionPolicy(ctx context.Context, activityName, stepName, policyName, version string) (*models.ActivityStepConfig, error)
}

// PolicyCatalog lists the policies compiled into the engine.
type PolicyCatalog interface {
	Policies() []string
}

// VersionLister lists stored versions of a rule set.
type VersionLister interface {
	Versions(ctx context.Context, name string) ([]models.Version, error)
}

// PolicyHandler lets operators inspect loaded policies and dry-run them.
type PolicyHandler struct {
	logger    *slog.Logger
	evaluator PolicyEvaluator
	catalog   PolicyCatalog
	versions  VersionLister
}

// NewPolicyHandler builds the handler. versions may be nil when no rule
// store is configured.
func NewPolicyHandler(evaluator PolicyEvaluator, catalog PolicyCatalog, versions VersionLister, logger *slog.Logger) *PolicyHandler {
	if evaluator == nil || catalog == nil {
		panic("httptransport: policy handler requires an evaluator and a catalog")
	}
	return &PolicyHandler{logger: logger, evaluator: evaluator, catalog: catalog, versions: versions}
}

func (h *PolicyHandler) Register(r chi.Router) {
	r.Get("/policies", h.handleListPolicies)
	r.Get("/policies/{name}/versions", h.handleListVersions)
	r.Post("/policies/evaluate", h.handleEvaluate)
	r.Post("/policies/interception", h.handleInterception)
}

type policiesResponse struct {
	Loaded []string `json:"loaded"`
}

type versionsResponse struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

type interceptionRequest struct {
	ActivityName string `json:"activity_name" validate:"required,notblank"`
	StepName     string `json:"step_name" validate:"required,notblank"`
	PolicyName   string `json:"policy_name" validate:"required,notblank"`
	Version      string `json:"version,omitempty" validate:"policyversion"`
}

func (h *PolicyHandler) handleListPolicies(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, policiesResponse{Loaded: h.catalog.Policies()})
}

func (h *PolicyHandler) handleListVersions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.versions == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "no rule store configured"))
		return
	}
	name := chi.URLParam(r, "name")
	versions, err := h.versions.Versions(ctx, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rule set versions", "policy", name, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list rule set versions"))
		return
	}
	if len(versions) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no stored versions for policy "+name))
		return
	}
	resp := versionsResponse{Name: name, Versions: make([]string, 0, len(versions))}
	for _, v := range versions {
		resp.Versions = append(resp.Versions, v.String())
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *PolicyHandler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[models.ResolutionRequest](ctx, w, r, h.logger)
	if !ok {
		return
	}
	resp, err := h.evaluator.Resolve(ctx, *req)
	if err != nil {
		h.logger.InfoContext(ctx, "policy dry run failed",
			"policy", req.PolicyName,
			"operator", admin.Operator(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *PolicyHandler) handleInterception(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[interceptionRequest](ctx, w, r, h.logger)
	if !ok {
		return
	}
	cfg, err := h.evaluator.GetInterceptionPolicy(ctx, req.ActivityName, req.StepName, req.PolicyName, req.Version)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cfg)
}
