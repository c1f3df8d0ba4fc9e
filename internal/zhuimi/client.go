// Package zhuimi contains the logic for talking to the zhuimi site: logging
// in, scraping the dashboard and performing the daily check-in.
package zhuimi

import (
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"
	"zhuimi-checkin/internal/captcha"
	"zhuimi-checkin/internal/components/assert"
	"zhuimi-checkin/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://zhuimi.xn--v4q818bf34b.com/"

const (
	pathLogin     = "/user/login"
	pathDoLogin   = "/user/doLogin"
	pathDashboard = "/dashboard"
	pathSignin    = "/signin"
	pathDoSignin  = "/doSignin"
)

const (
	report_client_login          = "client.login"
	report_client_fetch_profile  = "client.fetch-profile"
	report_client_signin         = "client.signin"
	report_client_api_count      = "client.api-count"
	report_client_remaining_days = "client.remaining-days"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	BaseUrl string
	// Timeout of a single request, 0 means 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond limits the request rate, 0 means 2, negative disables the limit.
	RequestsPerSecond float64
	// CloudflareBypass wraps the transport to look like a real browser to cloudflare.
	CloudflareBypass bool
	// Captcha answers the login captcha, if nil captcha.Static with CaptchaToken is used.
	Captcha      captcha.Solver
	CaptchaToken string
}

// Client is the session shared by every step of a run, it holds the cookies
// set by the site.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	captcha captcha.Solver
	tel     telemetry.API
}

func NewClient(opts Options, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("zhuimi", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}

	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if parsedBaseUrl.Scheme == "" || parsedBaseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	if opts.RequestsPerSecond > 0 {
		// max burst >= 2 just means that no requests will be dropped
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 2)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)

	solver := opts.Captcha
	if solver == nil {
		solver = captcha.NewStatic(httpClient, opts.CaptchaToken)
	}

	c := &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		captcha: solver,
		tel:     tel,
	}
	return c, nil
}

// absolute resolves path against the base url, used for Referer headers.
func (c *Client) absolute(path string) string {
	return c.BaseUrl.ResolveReference(&url.URL{Path: path}).String()
}

// origin is the value browsers send as the Origin header for the site.
func (c *Client) origin() string {
	return fmt.Sprintf("%s://%s", c.BaseUrl.Scheme, c.BaseUrl.Host)
}
