// Package checkin runs the daily check-in workflow from login to notification.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"zhuimi-checkin/internal/components/assert"
	"zhuimi-checkin/internal/components/chrono"
	"zhuimi-checkin/internal/components/metrics"
	"zhuimi-checkin/internal/components/telemetry"
	"zhuimi-checkin/internal/notify"
	"zhuimi-checkin/internal/zhuimi"
)

const (
	report_runner_login   = "runner.login"
	report_runner_profile = "runner.profile"
)

// Site is the part of the zhuimi client a run depends on.
//
// note: fault injection point
type Site interface {
	Login(ctx context.Context, creds zhuimi.Credentials) (zhuimi.AuthResult, error)
	FetchProfile(ctx context.Context, now time.Time) (zhuimi.Profile, error)
	Signin(ctx context.Context) zhuimi.SigninOutcome
}

type Runner struct {
	site     Site
	notifier notify.Notifier
	clock    chrono.API
	tel      telemetry.API

	// Out receives the rendered summary, nothing is printed if nil.
	Out io.Writer
	// Metrics is updated at the end of every run if set.
	Metrics *metrics.Recorder
}

func NewRunner(site Site, notifier notify.Notifier, clock chrono.API, tel telemetry.API) Runner {
	assert.NotNil(site)
	assert.NotNil(notifier)
	assert.NotNil(clock)
	assert.NotNil(tel)

	return Runner{
		site:     site,
		notifier: notifier,
		clock:    clock,
		tel:      telemetry.NewScopedAPI("checkin", tel),
	}
}

// Run performs a single check-in, every failure ends up in the report and
// the notification, none is returned.
func (r Runner) Run(ctx context.Context, creds zhuimi.Credentials) Report {
	report := r.run(ctx, creds)
	r.observe(report)
	return report
}

func (r Runner) run(ctx context.Context, creds zhuimi.Credentials) Report {
	report := Report{Username: creds.Username}

	auth, err := r.site.Login(ctx, creds)
	if errors.Is(err, zhuimi.ErrMissingCredentials) {
		report.Stage = StageConfig
		report.Time = r.clock.Now()
		r.tel.ReportWarning(report_runner_login, err)
		r.deliver(ctx, report.Render())
		return report
	}
	if err != nil {
		report.Stage = StageLogin
		report.Time = r.clock.Now()
		r.tel.ReportWarning(report_runner_login, err)
		r.deliver(ctx, report.Render())
		return report
	}
	report.Auth = auth

	report.Time = r.clock.Now()

	report.Profile, report.ProfileErr = r.site.FetchProfile(ctx, report.Time)
	if report.ProfileErr != nil {
		r.tel.ReportWarning(report_runner_profile, report.ProfileErr)
	}

	report.Signin = r.site.Signin(ctx)
	report.Stage = StageComplete

	r.deliver(ctx, report.Render())
	return report
}

func (r Runner) deliver(ctx context.Context, message string) {
	if r.Out != nil {
		fmt.Fprintln(r.Out, message)
	}
	r.notifier.Notify(ctx, message)
}

func (r Runner) observe(report Report) {
	if r.Metrics == nil {
		return
	}
	r.Metrics.ObserveRun(
		report.Time,
		string(report.Stage),
		report.Stage == StageComplete && report.Signin.Kind == zhuimi.SigninSucceeded,
	)
	if report.Stage == StageComplete && report.ProfileErr == nil {
		r.Metrics.ObserveRemainingDays(report.Profile.RemainingDays)
	}
}
