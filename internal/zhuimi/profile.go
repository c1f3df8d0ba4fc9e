package zhuimi

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"zhuimi-checkin/internal/components/chrono"
	"zhuimi-checkin/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const secondsPerDay = 24 * 60 * 60

var (
	apiLinkSelectors    = []string{"#tvboxLinkContainer .endpoint-url code", ".endpoint-url code"}
	expireTimeSelectors = []string{".expire-time"}
)

// Profile is the account status shown on the dashboard.
type Profile struct {
	ApiLink    string
	ExpireText string
	ExpiresAt  time.Time
	// RemainingDays counts today as a remaining day.
	RemainingDays int
}

// RemainingDays returns the whole days between now and expiresAt rounded
// down, plus one for the current day.
func RemainingDays(expiresAt, now time.Time) int {
	// time.Duration saturates after ~292 years, far dates are computed in seconds.
	seconds := expiresAt.Unix() - now.Unix()
	days := seconds / secondsPerDay
	if seconds%secondsPerDay < 0 {
		days--
	}
	return int(days) + 1
}

// ParseProfile reads the profile out of a dashboard page, the expiry is
// interpreted in now's location.
func ParseProfile(doc *goquery.Document, now time.Time) (Profile, error) {
	apiLink, ok := htmlutil.FirstText(doc, apiLinkSelectors...)
	if !ok {
		return Profile{}, fmt.Errorf("could not find api link")
	}

	expireText, ok := htmlutil.FirstText(doc, expireTimeSelectors...)
	if !ok {
		return Profile{}, fmt.Errorf("could not find expire time")
	}
	expiresAt, err := time.ParseInLocation(chrono.Layout, expireText, now.Location())
	if err != nil {
		return Profile{}, fmt.Errorf("parse expire time: %w", err)
	}

	return Profile{
		ApiLink:       apiLink,
		ExpireText:    expireText,
		ExpiresAt:     expiresAt,
		RemainingDays: RemainingDays(expiresAt, now),
	}, nil
}

// FetchProfile scrapes the dashboard of the logged in account.
func (c *Client) FetchProfile(ctx context.Context, now time.Time) (Profile, error) {
	profileError := func(err error) error {
		return fmt.Errorf("zhuimi: fetch profile: %w", err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", c.absolute(pathLogin)).
		SetHeader("Upgrade-Insecure-Requests", "1").
		Get(pathDashboard)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_profile,
			fmt.Errorf("fetch: %w", err),
		)
		return Profile{}, profileError(err)
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("unexpected status %s", res.Status())
		c.tel.ReportBroken(report_client_fetch_profile, err)
		return Profile{}, profileError(err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_profile,
			fmt.Errorf("parse: %w", err),
		)
		return Profile{}, profileError(err)
	}

	profile, err := ParseProfile(doc, now)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_profile, err)
		return Profile{}, profileError(err)
	}
	c.tel.ReportCount(report_client_remaining_days, int64(profile.RemainingDays))
	return profile, nil
}
