package linkscan

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
)

const (
	connectTimeout = 5 * time.Second
	readTimeout    = 5 * time.Second
	userAgent      = "CodeCanvas-LinkChecker/1.0"
)

// Prober issues a single bounded health probe against a URL.
type Prober interface {
	Probe(ctx context.Context, url string) int
}

// HTTPProber probes with HEAD and falls back to GET for servers that reject
// HEAD. Redirects are followed; the final status counts.
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				ResponseHeaderTimeout: readTimeout,
			},
			Timeout: connectTimeout + readTimeout,
		}
	}
	return &HTTPProber{client: client}
}

// Probe returns the HTTP status of the URL, or StatusConnectionFailed when
// no response could be obtained at all (bad URL, DNS, refused, timeout).
// A probe never returns an error: an unreachable target is data, not a
// failure of the scan.
func (p *HTTPProber) Probe(ctx context.Context, url string) int {
	status := p.request(ctx, http.MethodHead, url)
	if status == http.StatusMethodNotAllowed {
		status = p.request(ctx, http.MethodGet, url)
	}
	return status
}

func (p *HTTPProber) request(ctx context.Context, method, url string) int {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return domain.StatusConnectionFailed
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.StatusConnectionFailed
	}
	defer resp.Body.Close()

	return resp.StatusCode
}
