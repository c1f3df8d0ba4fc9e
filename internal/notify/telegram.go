package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"zhuimi-checkin/internal/components/assert"
	"zhuimi-checkin/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

const DefaultTelegramApiUrl = "https://api.telegram.org"

type TelegramOptions struct {
	BotToken string
	ChatId   string
	// ApiUrl defaults to DefaultTelegramApiUrl.
	ApiUrl  string
	Timeout time.Duration
}

type sendMessageRequest struct {
	ChatId    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Telegram sends messages through a telegram bot, rendered as markdown.
type Telegram struct {
	http *resty.Client
	opts TelegramOptions
	tel  telemetry.API
}

func NewTelegram(opts TelegramOptions, tel telemetry.API) Telegram {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("notify", tel)

	if opts.ApiUrl == "" {
		opts.ApiUrl = DefaultTelegramApiUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.ApiUrl)
	client.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(client, tel)

	return Telegram{http: client, opts: opts, tel: tel}
}

func (t Telegram) Configured() bool {
	return t.opts.BotToken != "" && t.opts.ChatId != ""
}

func (t Telegram) Notify(ctx context.Context, message string) {
	if !t.Configured() {
		t.tel.ReportInfo("telegram bot token or chat id not configured, skipping")
		return
	}

	res, err := t.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sendMessageRequest{
			ChatId:    t.opts.ChatId,
			Text:      message,
			ParseMode: "Markdown",
		}).
		Post(fmt.Sprintf("/bot%s/sendMessage", t.opts.BotToken))
	if err != nil {
		t.tel.ReportBroken(report_telegram_send, telemetry.Redact(err.Error()))
		return
	}
	if res.StatusCode() != http.StatusOK {
		t.tel.ReportBroken(
			report_telegram_send,
			fmt.Errorf("unexpected status %d", res.StatusCode()),
			res.String(),
		)
		return
	}
	t.tel.ReportInfo("telegram message sent")
}
