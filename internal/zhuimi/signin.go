package zhuimi

import (
	"context"
	"fmt"
	"net/http"
)

type SigninKind int

const (
	// SigninSucceeded means the site accepted the check-in.
	SigninSucceeded SigninKind = iota
	// SigninRejected means the site answered but refused, ex. already checked in today.
	SigninRejected
	// SigninHttpError means the check-in endpoint answered with a non-200 status.
	SigninHttpError
	// SigninException means the check-in could not be completed at all.
	SigninException
)

func (k SigninKind) String() string {
	switch k {
	case SigninSucceeded:
		return "succeeded"
	case SigninRejected:
		return "rejected"
	case SigninHttpError:
		return "http_error"
	case SigninException:
		return "exception"
	}
	return fmt.Sprintf("SigninKind(%d)", int(k))
}

// SigninOutcome is the result of a check-in attempt.
type SigninOutcome struct {
	Kind SigninKind
	// Reward is the amount of api calls granted, nil if the site didn't say.
	Reward *string
	// Reason is the message the site gave when rejecting, nil if it gave none.
	Reason     *string
	StatusCode int
	Err        error
}

func (o SigninOutcome) Message() string {
	switch o.Kind {
	case SigninSucceeded:
		reward := "?"
		if o.Reward != nil {
			reward = *o.Reward
		}
		return fmt.Sprintf("🎉 签到成功，奖励：%s 次API调用", reward)
	case SigninRejected:
		reason := "未知"
		if o.Reason != nil {
			reason = *o.Reason
		}
		return fmt.Sprintf("⚠️ 签到失败：%s", reason)
	case SigninHttpError:
		return fmt.Sprintf("❌ 签到失败，状态码：%d", o.StatusCode)
	}
	errText := "unknown error"
	if o.Err != nil {
		errText = o.Err.Error()
	}
	return fmt.Sprintf("⚠️ 签到异常：%s", errText)
}

// Signin performs the daily check-in, every failure is folded into the outcome.
func (c *Client) Signin(ctx context.Context) SigninOutcome {
	exception := func(err error) SigninOutcome {
		c.tel.ReportBroken(report_client_signin, err)
		return SigninOutcome{Kind: SigninException, Err: err}
	}

	// the check-in page is only requested so the session carries it as referer
	_, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", c.absolute(pathDashboard)).
		Get(pathSignin)
	if err != nil {
		return exception(fmt.Errorf("signin page: %w", err))
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetHeader("Content-Type", "application/json").
		SetHeader("Referer", c.absolute(pathSignin)).
		SetHeader("Origin", c.origin()).
		SetBody([]byte("{}")).
		Post(pathDoSignin)
	if err != nil {
		return exception(fmt.Errorf("signin request: %w", err))
	}
	c.tel.ReportDebug("signin response", res.String())

	if res.StatusCode() != http.StatusOK {
		c.tel.ReportWarning(report_client_signin, res.Status())
		return SigninOutcome{Kind: SigninHttpError, StatusCode: res.StatusCode()}
	}

	data, err := decodeObject(res.Body())
	if err != nil {
		return exception(fmt.Errorf("parse signin response: %w", err))
	}

	if !isZero(data["code"]) {
		reason := lookupText(data, "message")
		c.tel.ReportWarning(report_client_signin, "rejected", display(data["code"]))
		return SigninOutcome{
			Kind:       SigninRejected,
			Reason:     reason,
			StatusCode: res.StatusCode(),
		}
	}

	outcome := SigninOutcome{
		Kind:       SigninSucceeded,
		Reward:     lookupText(data, "data", "reward"),
		StatusCode: res.StatusCode(),
	}
	c.tel.ReportInfo("signed in", outcome.Message())
	return outcome
}
