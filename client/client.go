package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/totegamma/twitton"
)

const (
	defaultTimeout   = 3 * time.Second
	defaultUserAgent = "twitton-client/1.0"
)

type Options struct {
	Timeout   time.Duration
	Scheme    string // defaults to https
	UserAgent string
}

// Client performs read-only discovery against remote nodes.
type Client struct {
	http   *resty.Client
	cache  *cache.Cache
	scheme string
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Scheme == "" {
		opts.Scheme = "https"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	r := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	return &Client{
		http:   r,
		cache:  cache.New(10*time.Minute, 15*time.Minute),
		scheme: opts.Scheme,
	}
}

// StatusError is returned when a remote node answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Webfinger queries the node named by handle ("user@domain" or "acct:user@domain").
func (c *Client) Webfinger(ctx context.Context, handle string) (twitton.WebfingerDocument, error) {
	user, domain, err := twitton.ParseAcct(handle)
	if err != nil {
		return twitton.WebfingerDocument{}, err
	}
	resource := twitton.ComposeAcct(user, domain)

	cacheKey := "webfinger:" + resource
	if x, found := c.cache.Get(cacheKey); found {
		slog.DebugContext(ctx, "webfinger cache hit", slog.String("resource", resource), slog.String("module", "client"))
		return x.(twitton.WebfingerDocument), nil
	}

	var doc twitton.WebfingerDocument
	url := c.scheme + "://" + domain + "/.well-known/webfinger"
	err = c.getJSON(ctx, url, map[string]string{"resource": resource}, twitton.MediaTypeJSON, &doc)
	if err != nil {
		return twitton.WebfingerDocument{}, errors.Wrapf(err, "failed to resolve %s", resource)
	}

	c.cache.Set(cacheKey, doc, cache.DefaultExpiration)

	return doc, nil
}

// Actor fetches the actor document at href.
func (c *Client) Actor(ctx context.Context, href string) (twitton.Actor, error) {
	var actor twitton.Actor
	err := c.getJSON(ctx, href, nil, twitton.MediaTypeActivityJSON, &actor)
	if err != nil {
		return twitton.Actor{}, errors.Wrapf(err, "failed to fetch actor %s", href)
	}
	return actor, nil
}

// Lookup resolves handle through WebFinger and follows its self link.
func (c *Client) Lookup(ctx context.Context, handle string) (twitton.Actor, error) {
	doc, err := c.Webfinger(ctx, handle)
	if err != nil {
		return twitton.Actor{}, err
	}

	link, ok := doc.Link(twitton.RelSelf)
	if !ok || link.Href == nil {
		return twitton.Actor{}, errors.Errorf("%s has no self link", doc.Subject)
	}

	return c.Actor(ctx, *link.Href)
}

func (c *Client) getJSON(ctx context.Context, url string, query map[string]string, accept string, result any) error {
	slog.DebugContext(ctx, "making request", slog.String("url", url), slog.String("module", "client"))

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", accept)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}

	if resp.StatusCode() != http.StatusOK {
		return &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}
