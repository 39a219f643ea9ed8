package edux

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"eduxctl/pkg/logger"

	"github.com/corpix/uarand"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Edux instance of FIT CTU.
const DefaultBaseURL = "https://edux.fit.cvut.cz/"

const (
	coursesPrefix  = "courses/"
	classification = "/classification/view/"
	startPage      = "start"
)

// Page markers Edux renders instead of returning proper status codes.
// Each condition has a Czech and an English variant.
var (
	permissionDeniedMarkers = []string{`id="nepovolena_akce"`, `id="permission_denied"`}
	notFoundMarkers         = []string{`id="stranka_s_timto_nazvem_jeste_neexistuje"`, `id="this_topic_does_not_exist_yet"`}
)

// Options configures a Client. CookieFile and Cookies are mutually exclusive;
// when both are empty the DefaultCookieFile is read.
type Options struct {
	BaseURL    string
	CookieFile string
	Cookies    map[string]string
	UserAgent  string
	Timeout    time.Duration
	CacheDir   string // empty disables the course list cache
	Refresh    bool   // ignore cached data, still storing fresh results
	Logger     *slog.Logger
}

// Client handles HTTP requests to Edux and owns the session cookies
type Client struct {
	http     *resty.Client
	baseURL  string
	session  *Session
	cacheDir string
	refresh  bool
	log      *slog.Logger
}

// NewClient creates a new Edux client
func NewClient(opts Options) (*Client, error) {
	if opts.CookieFile != "" && opts.Cookies != nil {
		return nil, fmt.Errorf("%w: cookie file and cookie values cannot be used at the same time", ErrBadCookieConfig)
	}

	var cookies map[string]string
	if opts.Cookies != nil {
		cookies = opts.Cookies
	} else {
		cookieFile := opts.CookieFile
		if cookieFile == "" {
			cookieFile = DefaultCookieFile
		}
		var err error
		cookies, err = LoadCookieFile(cookieFile)
		if err != nil {
			return nil, err
		}
	}

	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimRight(base, "/")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = uarand.GetRandom()
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	httpClient := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	// Cookies live in the Session, not in a jar, so they can be persisted.
	httpClient.SetCookieJar(nil)

	return &Client{
		http:     httpClient,
		baseURL:  base,
		session:  NewSession(cookies),
		cacheDir: opts.CacheDir,
		refresh:  opts.Refresh,
		log:      log.With("module", "edux"),
	}, nil
}

// Session returns the live cookie set of the client.
func (c *Client) Session() *Session {
	return c.session
}

// BaseURL returns the Edux root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SaveCookies persists the current session to a cookie file.
func (c *Client) SaveCookies(path string) error {
	return SaveCookieFile(path, c.session.Cookies())
}

// FormURL builds the address of a classification page.
func (c *Client) FormURL(course string, path []string, edit bool) string {
	u := c.baseURL + "/" + classificationPath(course, path)
	if edit {
		u += "?do=edit"
	}
	return u
}

func classificationPath(course string, path []string) string {
	return coursesPrefix + course + classification + strings.Join(path, "/")
}

// Get fetches a page with the session cookies and returns its body
func (c *Client) Get(ctx context.Context, path string, query url.Values) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetCookies(c.session.httpCookies()).
		SetQueryParamsFromValues(query).
		Get("/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	return c.handle(res)
}

// Post submits form values with the session cookies and returns the response body
func (c *Client) Post(ctx context.Context, path string, form map[string]string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetCookies(c.session.httpCookies()).
		SetFormData(form).
		Post("/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to post to %s: %w", path, err)
	}
	return c.handle(res)
}

// getPublic fetches a page without sending or updating cookies.
func (c *Client) getPublic(ctx context.Context, path string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get("/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	c.log.Debug("fetched public page", "url", res.Request.URL, "status", res.StatusCode())
	if res.IsError() {
		return "", &PageError{URL: res.Request.URL, Err: fmt.Errorf("unexpected status code %d", res.StatusCode())}
	}
	return res.String(), nil
}

func (c *Client) handle(res *resty.Response) (string, error) {
	if c.session.Update(res.Cookies()) {
		c.log.Debug("session cookies rotated", "cookies", c.session.Names())
	}
	c.log.Debug("fetched page", "method", res.Request.Method, "url", res.Request.URL, "status", res.StatusCode())

	body := res.String()
	if err := checkMarkers(body); err != nil {
		return "", &PageError{URL: res.Request.URL, Err: err}
	}
	if res.IsError() {
		return "", &PageError{URL: res.Request.URL, Err: fmt.Errorf("unexpected status code %d", res.StatusCode())}
	}
	return body, nil
}

// checkMarkers looks for the error pages Edux serves with a 200 status.
func checkMarkers(body string) error {
	for _, m := range permissionDeniedMarkers {
		if strings.Contains(body, m) {
			return ErrPermissionDenied
		}
	}
	for _, m := range notFoundMarkers {
		if strings.Contains(body, m) {
			return ErrNotFound
		}
	}
	return nil
}
