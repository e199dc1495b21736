package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/maxvaer/paramfuzz/internal/config"
)

// Response holds the parts of an HTTP response the probes look at. Size
// is the raw body length; Text is the body decoded to UTF-8 using the
// response charset.
type Response struct {
	StatusCode int
	Size       int64
	Body       []byte
	Text       string
	URL        string
}

// Requester wraps an HTTP client bound to a single target URL.
type Requester struct {
	client    *http.Client
	target    *url.URL
	headers   map[string]string
	userAgent string
}

// NewRequester creates a Requester from the provided options. The target
// must be an absolute http:// or https:// URL.
func NewRequester(opts *config.Options) (*Requester, error) {
	target, err := ParseTarget(opts.URL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		MaxIdleConnsPerHost: opts.Threads,
		MaxIdleConns:        opts.Threads,
	}
	if opts.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}

	if opts.NoRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "paramfuzz/1.0"
	}

	return &Requester{
		client:    client,
		target:    target,
		headers:   opts.Headers,
		userAgent: ua,
	}, nil
}

// ParseTarget parses raw and checks that it is an http(s) URL with a host.
func ParseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return u, nil
}

// TargetURL returns the unmodified target URL.
func (r *Requester) TargetURL() string {
	return r.target.String()
}

// ProbeURL returns the target URL with name=value added to its query.
// An existing query string is kept as-is and the new pair is joined with '&'.
func (r *Requester) ProbeURL(name, value string) string {
	u := *r.target
	pair := url.QueryEscape(name) + "=" + url.QueryEscape(value)
	if u.RawQuery == "" {
		u.RawQuery = pair
	} else {
		u.RawQuery += "&" + pair
	}
	u.ForceQuery = false
	return u.String()
}

// Get sends a GET request for targetURL and returns the fully read response.
func (r *Requester) Get(ctx context.Context, targetURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", r.userAgent)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body for %s: %w", targetURL, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Size:       int64(len(body)),
		Body:       body,
		Text:       DecodeBody(body, resp.Header.Get("Content-Type")),
		URL:        targetURL,
	}, nil
}
