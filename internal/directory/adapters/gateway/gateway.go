// Package gateway implements the directory query capability against a JSON
// inquiry gateway fronting each directory site.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"esbresolver/internal/directory/client"
	"esbresolver/internal/directory/models"
)

// Gateway operations.
const (
	OpFindBusiness      = "find_business"
	OpFindService       = "find_service"
	OpGetBusinessDetail = "get_businessDetail"
	OpGetServiceDetail  = "get_serviceDetail"
	OpGetBindingDetail  = "get_bindingDetail"
)

// Response message types.
const (
	MsgBusinessList   = "businessList"
	MsgServiceList    = "serviceList"
	MsgBusinessDetail = "businessDetail"
	MsgServiceDetail  = "serviceDetail"
	MsgBindingDetail  = "bindingDetail"
	MsgFault          = "dispositionReport"
)

// FaultInvalidKey is the fault code a site reports for an unknown key.
const FaultInvalidKey = "E_invalidKeyPassed"

// DefaultMaxResponseBytes caps a site response when Config leaves it unset.
const DefaultMaxResponseBytes = 4 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the adapter.
type Config struct {
	Timeout          time.Duration
	APIKey           string
	MaxResponseBytes int64
	HTTPClient       HTTPDoer
}

// Adapter queries directory sites through their JSON inquiry gateway.
type Adapter struct {
	client   HTTPDoer
	apiKey   string
	maxBytes int64
}

// New creates an adapter. The default client uses a 10s timeout.
func New(cfg Config) *Adapter {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = DefaultMaxResponseBytes
	}
	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: cfg.Timeout}
	}
	return &Adapter{client: doer, apiKey: cfg.APIKey, maxBytes: cfg.MaxResponseBytes}
}

type inquiry struct {
	Operation string `json:"operation"`
	Name      string `json:"name,omitempty"`
	Key       string `json:"key,omitempty"`
}

type fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	MessageType string                   `json:"message_type"`
	Businesses  []models.BusinessEntity  `json:"business_entities,omitempty"`
	Services    []models.BusinessService `json:"business_services,omitempty"`
	Binding     *models.BindingTemplate  `json:"binding_template,omitempty"`
	Fault       *fault                   `json:"fault,omitempty"`
}

func byNameOrKey(op string, id models.Identifier) inquiry {
	if id.IsKey {
		return inquiry{Operation: op, Key: id.Value}
	}
	return inquiry{Operation: op, Name: id.Value}
}

// FindBusinessByNameOrKey returns the entities matching id.
func (a *Adapter) FindBusinessByNameOrKey(ctx context.Context, site models.SiteLocation, id models.Identifier) ([]models.BusinessEntity, error) {
	env, err := a.call(ctx, site, byNameOrKey(OpFindBusiness, id), MsgBusinessList)
	if err != nil {
		return nil, err
	}
	return env.Businesses, nil
}

// FindServiceByNameOrKey returns the services matching id.
func (a *Adapter) FindServiceByNameOrKey(ctx context.Context, site models.SiteLocation, id models.Identifier) ([]models.BusinessService, error) {
	env, err := a.call(ctx, site, byNameOrKey(OpFindService, id), MsgServiceList)
	if err != nil {
		return nil, err
	}
	return env.Services, nil
}

// GetBusinessDetail returns the full entity for key, or nil if the site
// returned none.
func (a *Adapter) GetBusinessDetail(ctx context.Context, site models.SiteLocation, key string) (*models.BusinessEntity, error) {
	env, err := a.call(ctx, site, inquiry{Operation: OpGetBusinessDetail, Key: key}, MsgBusinessDetail)
	if err != nil || len(env.Businesses) == 0 {
		return nil, err
	}
	return &env.Businesses[0], nil
}

// GetServiceDetail returns the full service for key, or nil if the site
// returned none.
func (a *Adapter) GetServiceDetail(ctx context.Context, site models.SiteLocation, key string) (*models.BusinessService, error) {
	env, err := a.call(ctx, site, inquiry{Operation: OpGetServiceDetail, Key: key}, MsgServiceDetail)
	if err != nil || len(env.Services) == 0 {
		return nil, err
	}
	return &env.Services[0], nil
}

// GetBindingDetail returns the binding template for key.
func (a *Adapter) GetBindingDetail(ctx context.Context, site models.SiteLocation, key string) (*models.BindingTemplate, error) {
	env, err := a.call(ctx, site, inquiry{Operation: OpGetBindingDetail, Key: key}, MsgBindingDetail)
	if err != nil {
		return nil, err
	}
	return env.Binding, nil
}

func (a *Adapter) call(ctx context.Context, site models.SiteLocation, q inquiry, want string) (*envelope, error) {
	if !site.HasAbsoluteInquireURL() {
		return nil, client.NewError(client.CategoryInvalidSite, site.InquireURL, "inquire url is not an absolute url", nil)
	}

	body, err := json.Marshal(q)
	if err != nil {
		return nil, client.NewError(client.CategoryUnknown, site.InquireURL, "failed to marshal inquiry", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, site.InquireURL, bytes.NewReader(body))
	if err != nil {
		return nil, client.NewError(client.CategoryInvalidSite, site.InquireURL, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" && site.AuthMode == models.AuthUDDI {
		req.Header.Set("X-API-Key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, client.NewError(client.CategoryNullConnection, site.InquireURL, "request timeout", err)
		}
		return nil, client.NewError(client.CategoryNullConnection, site.InquireURL, "failed to execute request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBytes+1))
	if err != nil {
		return nil, client.NewError(client.CategoryNullConnection, site.InquireURL, "failed to read response", err)
	}
	if int64(len(raw)) > a.maxBytes {
		return nil, client.NewError(client.CategoryUnknownMessageType, site.InquireURL, fmt.Sprintf("response exceeds %d bytes", a.maxBytes), nil)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if decodeErr == nil && env.Fault != nil {
		return nil, faultError(site, env.Fault)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, client.NewError(client.CategoryInvalidSite, site.InquireURL, "inquiry endpoint not found", nil)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, client.NewError(client.CategoryRemoteFault, site.InquireURL, fmt.Sprintf("authentication failed: %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusServiceUnavailable, resp.StatusCode == http.StatusBadGateway, resp.StatusCode == http.StatusGatewayTimeout:
		return nil, client.NewError(client.CategoryNullConnection, site.InquireURL, fmt.Sprintf("site unavailable: %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400:
		return nil, client.NewError(client.CategoryRemoteFault, site.InquireURL, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}

	if decodeErr != nil {
		return nil, client.NewError(client.CategoryUnknownMessageType, site.InquireURL, "failed to decode response", decodeErr)
	}
	if env.MessageType != want {
		return nil, client.NewError(client.CategoryUnknownMessageType, site.InquireURL,
			fmt.Sprintf("expected %s, got %q", want, env.MessageType), nil)
	}
	return &env, nil
}

func faultError(site models.SiteLocation, f *fault) error {
	msg := f.Code
	if f.Message != "" {
		msg = f.Code + ": " + f.Message
	}
	if f.Code == FaultInvalidKey {
		return client.NewError(client.CategoryInvalidKey, site.InquireURL, msg, nil)
	}
	return client.NewError(client.CategoryRemoteFault, site.InquireURL, msg, nil)
}

var _ client.Directory = (*Adapter)(nil)
