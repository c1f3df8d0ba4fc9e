// Package captcha provides the value sent as `login_token` when logging in.
package captcha

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// DefaultStaticToken is the answer the site currently accepts regardless of
// the challenge served, replace it through config if the site changes it.
const DefaultStaticToken = "来抽奖吧"

// Solver produces a captcha answer for the current session.
type Solver interface {
	Solve(ctx context.Context) (string, error)
}

// Static requests the captcha endpoint so the session looks like a browser's
// and then answers with a fixed token.
type Static struct {
	// Http is the session the captcha is requested on, it may be nil in
	// which case no request is made.
	Http     *resty.Client
	Endpoint string
	Token    string
}

func NewStatic(http *resty.Client, token string) Static {
	if token == "" {
		token = DefaultStaticToken
	}
	return Static{
		Http:     http,
		Endpoint: "/utils/captcha",
		Token:    token,
	}
}

func (s Static) Solve(ctx context.Context) (string, error) {
	if s.Http != nil {
		// the challenge image is never read, only the request matters
		_, err := s.Http.R().
			SetContext(ctx).
			Get(s.Endpoint)
		if err != nil {
			return "", err
		}
	}
	return s.Token, nil
}
