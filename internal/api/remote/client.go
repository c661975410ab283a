// Package remote implements api.Backend against the REST backend.  The
// session lives in HttpOnly cookies kept by the client's jar; a 401 on any
// call except login and refresh triggers one shared refresh and a single
// retry of the original request.
package remote

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/http/cookiejar"
    "net/url"
    "strings"
    "sync"
    "time"

    "golang.org/x/sync/singleflight"

    "github.com/iliyamo/oneday-class/internal/api"
)

const (
    loginPath   = "/api/auth/login"
    refreshPath = "/api/auth/refresh"
)

// Client talks to the REST backend.  It is safe for concurrent use.
type Client struct {
    base   *url.URL
    http   *http.Client
    jar    *resetJar
    flight singleflight.Group

    onUnauthenticated func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

// WithTransport replaces the http transport.
func WithTransport(rt http.RoundTripper) Option { return func(c *Client) { c.http.Transport = rt } }

// OnUnauthenticated registers a hook that runs after a refresh failed and
// the cookies were dropped.  Callers use it to send the user back to the
// login step.
func OnUnauthenticated(fn func()) Option { return func(c *Client) { c.onUnauthenticated = fn } }

// New returns a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
    u, err := url.Parse(strings.TrimRight(baseURL, "/"))
    if err != nil {
        return nil, fmt.Errorf("parse base url: %w", err)
    }
    if u.Scheme == "" || u.Host == "" {
        return nil, fmt.Errorf("base url %q must be absolute", baseURL)
    }
    jar, err := newResetJar()
    if err != nil {
        return nil, err
    }
    c := &Client{
        base: u,
        jar:  jar,
        http: &http.Client{Jar: jar, Timeout: 15 * time.Second},
    }
    for _, opt := range opts {
        opt(c)
    }
    return c, nil
}

func (c *Client) Auth() api.AuthAPI                        { return authAPI{c} }
func (c *Client) Listings() api.ListingAPI                 { return listingAPI{c} }
func (c *Client) Sessions() api.SessionAPI                 { return sessionAPI{c} }
func (c *Client) Reservations() api.ReservationAPI         { return reservationAPI{c} }
func (c *Client) Members() api.MemberAPI                   { return memberAPI{c} }
func (c *Client) Settlements() api.SettlementAPI           { return settlementAPI{c} }
func (c *Client) MessageTemplates() api.MessageTemplateAPI { return templateAPI{c} }
func (c *Client) Admin() api.AdminAPI                      { return adminAPI{c} }

// do sends one request and decodes the JSON response into out.  A 401 is
// answered with a coalesced refresh and one retry.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
    err := c.send(ctx, method, path, query, body, out)
    if !needsRefresh(path, err) {
        return err
    }
    if err := c.refresh(ctx); err != nil {
        return err
    }
    return c.send(ctx, method, path, query, body, out)
}

func needsRefresh(path string, err error) bool {
    if path == loginPath || path == refreshPath {
        return false
    }
    var e *api.Error
    return errors.As(err, &e) && e.Status == http.StatusUnauthorized
}

// refresh rotates the session cookies.  Concurrent callers share the one
// in-flight request.
func (c *Client) refresh(ctx context.Context) error {
    _, err, _ := c.flight.Do("refresh", func() (interface{}, error) {
        // detached so one caller's cancellation does not fail the others
        return nil, c.send(context.WithoutCancel(ctx), http.MethodPost, refreshPath, nil, nil, nil)
    })
    if err == nil {
        return nil
    }
    if api.IsNetwork(err) {
        return err
    }
    c.jar.Reset()
    if c.onUnauthenticated != nil {
        c.onUnauthenticated()
    }
    return api.Unauthenticated(api.SessionExpiredMessage)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
    u := *c.base
    u.Path = c.base.Path + path
    if len(query) > 0 {
        u.RawQuery = query.Encode()
    }

    var rd io.Reader
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil {
            return err
        }
        rd = bytes.NewReader(b)
    }
    req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
    if err != nil {
        return err
    }
    req.Header.Set("Accept", "application/json")
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }

    resp, err := c.http.Do(req)
    if err != nil {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        return api.Network(err)
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(resp.Body)
    if err != nil {
        return api.Network(err)
    }
    if resp.StatusCode >= 400 {
        return statusError(resp.StatusCode, raw)
    }
    if out == nil || len(bytes.TrimSpace(raw)) == 0 {
        return nil
    }
    if err := json.Unmarshal(raw, out); err != nil {
        return fmt.Errorf("decode %s %s: %w", method, path, err)
    }
    return nil
}

// statusError maps an HTTP failure to the api error taxonomy, keeping the
// server message verbatim.
func statusError(status int, raw []byte) error {
    var body struct {
        Error   string `json:"error"`
        Message string `json:"message"`
    }
    _ = json.Unmarshal(raw, &body)
    msg := body.Error
    if msg == "" {
        msg = body.Message
    }

    var kind api.Kind
    switch status {
    case http.StatusBadRequest, http.StatusUnprocessableEntity:
        kind = api.KindValidation
    case http.StatusUnauthorized, http.StatusForbidden:
        kind = api.KindAuth
    case http.StatusNotFound:
        kind = api.KindNotFound
    case http.StatusConflict:
        kind = api.KindConflict
    default:
        return api.Unexpected(status, msg)
    }
    if msg == "" {
        msg = strings.ToLower(http.StatusText(status))
    }
    return &api.Error{Kind: kind, Status: status, Message: msg}
}

// resetJar is a cookie jar that can be emptied while in use.
type resetJar struct {
    mu  sync.RWMutex
    jar *cookiejar.Jar
}

func newResetJar() (*resetJar, error) {
    j, err := cookiejar.New(nil)
    if err != nil {
        return nil, err
    }
    return &resetJar{jar: j}, nil
}

func (r *resetJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    r.jar.SetCookies(u, cookies)
}

func (r *resetJar) Cookies(u *url.URL) []*http.Cookie {
    r.mu.RLock()
    defer r.mu.RUnlock()
    return r.jar.Cookies(u)
}

// Reset drops every cookie.
func (r *resetJar) Reset() {
    j, _ := cookiejar.New(nil)
    r.mu.Lock()
    r.jar = j
    r.mu.Unlock()
}

func idPath(format string, id uint64) string { return fmt.Sprintf(format, id) }
