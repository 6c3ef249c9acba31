// Package ucsc implements a client for the Cisco UCS Central XML API: the
// session handshake, managed-object queries, and batched configuration
// commits.  Higher-level administrative operations live under pkg/admin/...
// and take a *Handle.
package ucsc

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

// Handle is an authenticated session against a UCS Central instance.  It is
// safe for concurrent use; configuration changes are staged per-handle and
// sent in a single batch by Commit.
type Handle struct {
	endpoint   string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client

	mu            sync.Mutex
	cookie        string
	refreshPeriod time.Duration
	staged        []*mo.MO

	metrics *metrics
}

// NewHandle validates cfg and builds a Handle.  No network traffic happens
// until Login (or the first operation after ResumeSession).
func NewHandle(cfg Config) (*Handle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "github.com/ciscoucs/ucscgo"
	}
	httpClient := &http.Client{
		Timeout: timeout,
	}
	if cfg.Insecure {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in via cfg.Insecure
		}
	}
	return &Handle{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// Endpoint returns the base URL the handle talks to.
func (h *Handle) Endpoint() string { return h.endpoint }

// Cookie returns the current session cookie, or "" when not logged in.
func (h *Handle) Cookie() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cookie
}

// ResumeSession installs a previously obtained session cookie, so a new
// process can reuse a live session instead of logging in again.
func (h *Handle) ResumeSession(cookie string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cookie = cookie
}

// RefreshPeriod returns how long the endpoint keeps the session alive
// without a refresh.  Only meaningful after Login.
func (h *Handle) RefreshPeriod() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshPeriod
}

// Login performs the aaaLogin exchange and stores the session cookie.
func (h *Handle) Login(ctx context.Context) error {
	var resp aaaLoginResp
	if err := h.post(ctx, "aaaLogin", &aaaLoginReq{
		InName:     h.username,
		InPassword: h.password,
	}, &resp); err != nil {
		return err
	}
	h.mu.Lock()
	h.cookie = resp.OutCookie
	h.refreshPeriod = time.Duration(resp.OutRefreshPeriod) * time.Second
	h.mu.Unlock()
	dlog.Debugf(ctx, "ucsc: logged in to %s (version %s)", h.endpoint, resp.OutVersion)
	return nil
}

// RefreshSession performs the aaaRefresh exchange, swapping the session
// cookie for a fresh one.
func (h *Handle) RefreshSession(ctx context.Context) error {
	cookie := h.Cookie()
	if cookie == "" {
		return ErrNotLoggedIn
	}
	var resp aaaRefreshResp
	if err := h.post(ctx, "aaaRefresh", &aaaRefreshReq{
		InName:     h.username,
		InPassword: h.password,
		InCookie:   cookie,
	}, &resp); err != nil {
		return err
	}
	h.mu.Lock()
	h.cookie = resp.OutCookie
	h.refreshPeriod = time.Duration(resp.OutRefreshPeriod) * time.Second
	h.mu.Unlock()
	return nil
}

// Logout invalidates the session.  Logging out a handle that isn't logged in
// is a no-op.
func (h *Handle) Logout(ctx context.Context) error {
	h.mu.Lock()
	cookie := h.cookie
	h.cookie = ""
	h.mu.Unlock()
	if cookie == "" {
		return nil
	}
	var resp aaaLogoutResp
	return h.post(ctx, "aaaLogout", &aaaLogoutReq{InCookie: cookie}, &resp)
}

// withSession runs call with the current session cookie.  If the endpoint
// reports the cookie as stale and the handle knows the password, it logs in
// again once and retries.
func (h *Handle) withSession(ctx context.Context, call func(cookie string) error) error {
	cookie := h.Cookie()
	if cookie == "" {
		return ErrNotLoggedIn
	}
	err := call(cookie)
	var apiErr *APIError
	if err == nil || !errors.As(err, &apiErr) || apiErr.Code != errCodeStaleCookie {
		return err
	}
	if h.password == "" {
		// A resumed session with no credentials can't re-login.
		return err
	}
	dlog.Debugf(ctx, "ucsc: session cookie is stale, logging in again")
	if loginErr := h.Login(ctx); loginErr != nil {
		return err
	}
	return call(h.Cookie())
}
