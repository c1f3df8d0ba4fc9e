package checkin

import (
	"fmt"
	"strconv"
	"time"
	"zhuimi-checkin/internal/components/chrono"
	"zhuimi-checkin/internal/zhuimi"
)

// Stage is how far a run got.
type Stage string

const (
	StageConfig   Stage = "config"
	StageLogin    Stage = "login"
	StageComplete Stage = "complete"
)

const (
	MessageMissingCredentials = "❌ 未设置ZHUIMI_USERNAME或ZHUIMI_PASSWORD环境变量，登录失败"
	MessageLoginFailed        = "❌ 登录失败，请检查账号、密码或验证码是否过期。"
)

// display text for values that could not be obtained
const (
	textUnknown     = "未知"
	textFetchFailed = "获取失败"
)

// Report is everything a run found out.
type Report struct {
	Stage    Stage
	Username string
	Auth     zhuimi.AuthResult
	Profile  zhuimi.Profile
	// ProfileErr is set if the dashboard could not be scraped, Profile is
	// empty in that case.
	ProfileErr error
	Signin     zhuimi.SigninOutcome
	Time       time.Time
}

func orUnknown(value *string) string {
	if value == nil {
		return textUnknown
	}
	return *value
}

const summaryTemplate = `📅 *逐觅签到通知*

👤 用户名：%s
🔐 Token：%s
🔗 专属链接：%s
📆 到期时间：%s
📊 剩余天数：%s 天
🧮 剩余API次数：%s  次

%s
🕒 时间：%s
`

// Render formats the report as the notification text.
func (r Report) Render() string {
	switch r.Stage {
	case StageConfig:
		return MessageMissingCredentials
	case StageLogin:
		return MessageLoginFailed
	}

	apiLink := textFetchFailed
	expireText := textFetchFailed
	remainingDays := textUnknown
	if r.ProfileErr == nil {
		apiLink = r.Profile.ApiLink
		expireText = r.Profile.ExpireText
		remainingDays = strconv.Itoa(r.Profile.RemainingDays)
	}

	return fmt.Sprintf(
		summaryTemplate,
		r.Username,
		orUnknown(r.Auth.Token),
		apiLink,
		expireText,
		remainingDays,
		orUnknown(r.Auth.ApiCount),
		r.Signin.Message(),
		r.Time.Format(chrono.Layout),
	)
}
