package commands

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
	"zhuimi-checkin/internal/captcha"
	"zhuimi-checkin/internal/notify"
	"zhuimi-checkin/internal/zhuimi"
	"zhuimi-checkin/lib/configutil"
)

type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatId   string `json:"chat_id"`
	ApiUrl   string `json:"api_url"`
}

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
	Subject      string   `json:"subject"`
}

type HttpConfig struct {
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
}

type Config struct {
	BaseUrl      string         `json:"base_url"`
	Username     string         `json:"username"`
	Password     string         `json:"password"`
	CaptchaToken string         `json:"captcha_token"`
	Telegram     TelegramConfig `json:"telegram"`
	Smtp         SmtpConfig     `json:"smtp"`
	Http         HttpConfig     `json:"http"`
	MetricsFile  string         `json:"metrics_file"`
}

var defaultConfig = Config{
	BaseUrl:      zhuimi.DefaultBaseUrl,
	CaptchaToken: captcha.DefaultStaticToken,
	Telegram: TelegramConfig{
		ApiUrl: notify.DefaultTelegramApiUrl,
	},
	Http: HttpConfig{
		TimeoutSeconds:    30,
		RequestsPerSecond: 2,
	},
}

// configFromEnv reads the environment variables the workflow has always been
// configured with, unset variables are left empty.
func configFromEnv() Config {
	cfg := Config{
		BaseUrl:     os.Getenv("ZHUIMI_BASE_URL"),
		Username:    os.Getenv("ZHUIMI_USERNAME"),
		Password:    os.Getenv("ZHUIMI_PASSWORD"),
		MetricsFile: os.Getenv("CHECKIN_METRICS_FILE"),
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatId:   os.Getenv("TELEGRAM_CHAT_ID"),
		},
		Smtp: SmtpConfig{
			Server:       os.Getenv("SMTP_SERVER"),
			EmailAddress: os.Getenv("SMTP_EMAIL_ADDRESS"),
			Password:     os.Getenv("SMTP_PASSWORD"),
		},
	}
	for _, to := range strings.Split(os.Getenv("SMTP_TO"), ",") {
		to = strings.TrimSpace(to)
		if to != "" {
			cfg.Smtp.To = append(cfg.Smtp.To, to)
		}
	}
	if port, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		cfg.Smtp.Port = port
	}
	return cfg
}

// LoadConfig layers, from lowest to highest priority: defaults, the config
// file and its .local override, the environment (including dotenv files).
// A missing config file is not an error.
func LoadConfig(path string, dotenvFiles ...string) (Config, error) {
	err := configutil.LoadDotenv(dotenvFiles...)
	if err != nil {
		return Config{}, err
	}

	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = configutil.Override(&cfg, configFromEnv())
	if err != nil {
		return Config{}, err
	}
	err = configutil.Default(&cfg, defaultConfig)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Credentials() zhuimi.Credentials {
	return zhuimi.Credentials{
		Username: c.Username,
		Password: c.Password,
	}
}

func (c Config) ClientOptions() zhuimi.Options {
	return zhuimi.Options{
		BaseUrl:           c.BaseUrl,
		Timeout:           time.Duration(c.Http.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.Http.RequestsPerSecond,
		CloudflareBypass:  c.Http.CloudflareBypass,
		CaptchaToken:      c.CaptchaToken,
	}
}

func (c Config) TelegramOptions() notify.TelegramOptions {
	return notify.TelegramOptions{
		BotToken: c.Telegram.BotToken,
		ChatId:   c.Telegram.ChatId,
		ApiUrl:   c.Telegram.ApiUrl,
		Timeout:  time.Duration(c.Http.TimeoutSeconds) * time.Second,
	}
}

func (c Config) SmtpOptions() notify.SmtpOptions {
	return notify.SmtpOptions{
		Server:       c.Smtp.Server,
		Port:         c.Smtp.Port,
		EmailAddress: c.Smtp.EmailAddress,
		Password:     c.Smtp.Password,
		To:           c.Smtp.To,
		Subject:      c.Smtp.Subject,
	}
}
