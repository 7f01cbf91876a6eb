// Package routing decides, per inbound request, whether to rewrite the path
// to a tenant-scoped form, redirect to the canonical host, or pass the
// request through untouched.
package routing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/halvard/biopage/internal/core"
	"github.com/halvard/biopage/internal/hostname"
	"github.com/halvard/biopage/internal/model"
	"github.com/halvard/biopage/internal/platform"
)

type Action int

const (
	ActionPassThrough Action = iota
	ActionRewrite
	ActionRedirect
	ActionNotFound
)

func (a Action) String() string {
	switch a {
	case ActionRewrite:
		return "rewrite"
	case ActionRedirect:
		return "redirect"
	case ActionNotFound:
		return "not_found"
	default:
		return "pass_through"
	}
}

// Decision is the outcome for one request. TargetPath is set exactly when
// Action is ActionRewrite, TargetURL exactly when Action is ActionRedirect.
type Decision struct {
	Action     Action
	TargetPath string
	TargetURL  string
}

// Directory is the read side of the tenant store the engine consults for
// candidate custom domains.
type Directory interface {
	GetByCustomDomain(ctx context.Context, domain string) (*model.Tenant, error)
}

// Auth pages are served from the platform root only; tenant hosts redirect
// them back to it.
var authPaths = []string{"/login", "/register", "/signup"}

// Tenant-owned top-level paths are served directly on custom domains; the
// downstream app resolves the tenant for these by other means.
var tenantOwnedPaths = []string{"/profile", "/links", "/gallery"}

type Engine struct {
	apex          string
	dir           Directory
	lookupTimeout time.Duration
	logger        zerolog.Logger
}

func NewEngine(apexDomain string, dir Directory, lookupTimeout time.Duration, logger zerolog.Logger) *Engine {
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}
	return &Engine{
		apex:          strings.ToLower(apexDomain),
		dir:           dir,
		lookupTimeout: lookupTimeout,
		logger:        logger,
	}
}

// Decide maps a host descriptor and request path to a routing decision. The
// only I/O is the directory lookup for unknown hosts; it is bounded by the
// engine's lookup timeout and degrades to pass-through on error, so a
// directory outage never fails a request.
func (e *Engine) Decide(ctx context.Context, d hostname.Descriptor, path string) Decision {
	if path == "" {
		path = "/"
	}

	switch d.Kind {
	case hostname.KindLocalhost, hostname.KindPreviewDeployment, hostname.KindPlatformDomain:
		if d.Subdomain == "" {
			return Decision{Action: ActionPassThrough}
		}
		if isAuthPath(path) {
			return Decision{Action: ActionRedirect, TargetURL: "https://www." + e.apex + "/"}
		}
		if path == "/" {
			return Decision{
				Action:    ActionRedirect,
				TargetURL: platform.CanonicalProfileURL(e.apex, d.Subdomain),
			}
		}
		return Decision{Action: ActionRewrite, TargetPath: "/" + d.Subdomain + path}

	default:
		if d.RawHost == "" {
			return Decision{Action: ActionPassThrough}
		}
		tenant := e.resolveCustomDomain(ctx, d.RawHost)
		if tenant == nil {
			// Unmatched hosts fall through to the application 404.
			return Decision{Action: ActionPassThrough}
		}
		if path != "/" && isTenantOwnedPath(path) {
			return Decision{Action: ActionPassThrough}
		}
		return Decision{Action: ActionRewrite, TargetPath: "/" + tenant.Username}
	}
}

// resolveCustomDomain looks up the host as a custom domain, falling back to
// the root domain when the exact host has more than two labels. A lookup
// failure is logged and treated as no match.
func (e *Engine) resolveCustomDomain(ctx context.Context, host string) *model.Tenant {
	ctx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	tenant, err := e.dir.GetByCustomDomain(ctx, host)
	if err == nil {
		return tenant
	}
	if !errors.Is(err, core.ErrNotFound) {
		e.logger.Warn().Err(err).Str("host", host).Msg("custom domain lookup degraded to pass-through")
		return nil
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return nil
	}
	root := strings.Join(labels[1:], ".")

	tenant, err = e.dir.GetByCustomDomain(ctx, root)
	if err == nil {
		return tenant
	}
	if !errors.Is(err, core.ErrNotFound) {
		e.logger.Warn().Err(err).Str("host", root).Msg("root domain lookup degraded to pass-through")
	}
	return nil
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func isTenantOwnedPath(path string) bool {
	for _, p := range tenantOwnedPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
