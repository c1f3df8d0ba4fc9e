package zhuimi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/mazen160/go-random"
)

// ErrMissingCredentials is returned by Login before any request is made if
// the username or password is empty.
var ErrMissingCredentials = errors.New("zhuimi: missing username or password")

// AuthError is returned when the site rejects the login or answers with
// something that is not a login response.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zhuimi: login failed (status %d): %s", e.StatusCode, e.Err.Error())
	}
	return fmt.Sprintf("zhuimi: login failed (status %d)", e.StatusCode)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

type Credentials struct {
	Username string
	Password string
}

// AuthResult is what the site reports about the account on login, fields the
// site omitted are nil.
type AuthResult struct {
	Token    *string
	ApiCount *string
}

const boundaryPrefix = "----WebKitFormBoundary"

func newBoundary() (string, error) {
	suffix, err := random.String(16)
	if err != nil {
		return "", err
	}
	return boundaryPrefix + suffix, nil
}

// encodeLoginForm writes the login form the same way a browser would, the
// site rejects bodies that don't come with a webkit style boundary.
func encodeLoginForm(boundary string, creds Credentials, captchaToken string) ([]byte, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	err := writer.SetBoundary(boundary)
	if err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"username", creds.Username},
		{"password", creds.Password},
		{"login_token", captchaToken},
	}
	for _, field := range fields {
		err = writer.WriteField(field[0], field[1])
		if err != nil {
			return nil, "", err
		}
	}
	err = writer.Close()
	if err != nil {
		return nil, "", err
	}

	return body.Bytes(), writer.FormDataContentType(), nil
}

// Login authenticates the session, on success the cookie jar holds the
// logged in session for the later steps.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	if creds.Username == "" || creds.Password == "" {
		c.tel.ReportWarning(report_client_login, ErrMissingCredentials)
		return AuthResult{}, ErrMissingCredentials
	}

	loginPage := c.absolute(pathLogin)

	_, err := c.Http.R().
		SetContext(ctx).
		Get(pathLogin)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login page request: %w", err),
		)
		return AuthResult{}, fmt.Errorf("zhuimi: login page: %w", err)
	}

	captchaToken, err := c.captcha.Solve(ctx)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("solve captcha: %w", err),
		)
		return AuthResult{}, fmt.Errorf("zhuimi: captcha: %w", err)
	}

	boundary, err := newBoundary()
	if err != nil {
		return AuthResult{}, fmt.Errorf("zhuimi: generate boundary: %w", err)
	}
	body, contentType, err := encodeLoginForm(boundary, creds, captchaToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("zhuimi: encode login form: %w", err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Referer", loginPage).
		SetHeader("Origin", c.origin()).
		SetBody(body).
		Post(pathDoLogin)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login request: %w", err),
		)
		return AuthResult{}, fmt.Errorf("zhuimi: login request: %w", err)
	}

	authError := func(err error) error {
		c.tel.ReportWarning(
			report_client_login,
			err,
			res.StatusCode(),
			res.String(),
		)
		return &AuthError{
			StatusCode: res.StatusCode(),
			Body:       res.String(),
			Err:        err,
		}
	}

	data, err := decodeObject(res.Body())
	if err != nil {
		return AuthResult{}, authError(fmt.Errorf("parse login response: %w", err))
	}
	if !truthy(data["success"]) {
		return AuthResult{}, authError(fmt.Errorf("login rejected"))
	}

	result := AuthResult{
		Token:    lookupText(data, "data", "token"),
		ApiCount: lookupText(data, "data", "user", "api_count"),
	}
	c.tel.ReportInfo("logged in", creds.Username)
	if result.ApiCount != nil {
		count, err := strconv.ParseInt(*result.ApiCount, 10, 64)
		if err == nil {
			c.tel.ReportCount(report_client_api_count, count)
		}
	}
	return result, nil
}
