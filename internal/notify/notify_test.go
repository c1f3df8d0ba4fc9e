package notify

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"zhuimi-checkin/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeTelegram struct {
	mutex    sync.Mutex
	status   int
	requests []*http.Request
	bodies   []sendMessageRequest
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body sendMessageRequest
	json.NewDecoder(r.Body).Decode(&body)
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)
	w.WriteHeader(f.status)
	w.Write([]byte(`{"ok": true}`))
}

func (f *fakeTelegram) received() ([]*http.Request, []sendMessageRequest) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.requests, f.bodies
}

func TestTelegramSend(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusOK}
	server := httptest.NewServer(fake)
	defer server.Close()

	tel := telemetry.NewRecorder()
	notifier := NewTelegram(TelegramOptions{
		BotToken: "123:abc",
		ChatId:   "42",
		ApiUrl:   server.URL,
	}, tel)
	require.True(t, notifier.Configured())

	notifier.Notify(context.Background(), "📅 *hello*")

	requests, bodies := fake.received()
	require.Len(t, requests, 1)
	require.Equal(t, "/bot123:abc/sendMessage", requests[0].URL.Path)
	require.Equal(t, sendMessageRequest{
		ChatId:    "42",
		Text:      "📅 *hello*",
		ParseMode: "Markdown",
	}, bodies[0])
	require.True(t, tel.Contains("info", "telegram message sent"))
	require.Empty(t, tel.Reports("broken"))
}

func TestTelegramFailureIsReported(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusBadRequest}
	server := httptest.NewServer(fake)
	defer server.Close()

	tel := telemetry.NewRecorder()
	notifier := NewTelegram(TelegramOptions{BotToken: "t", ChatId: "c", ApiUrl: server.URL}, tel)
	notifier.Notify(context.Background(), "hello")

	requests, _ := fake.received()
	require.Len(t, requests, 1)
	require.True(t, tel.Contains("broken", report_telegram_send))
}

func TestTelegramUnconfigured(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusOK}
	server := httptest.NewServer(fake)
	defer server.Close()

	cases := []TelegramOptions{
		{ApiUrl: server.URL},
		{ApiUrl: server.URL, BotToken: "t"},
		{ApiUrl: server.URL, ChatId: "c"},
	}
	for _, opts := range cases {
		tel := telemetry.NewRecorder()
		notifier := NewTelegram(opts, tel)
		require.False(t, notifier.Configured())

		notifier.Notify(context.Background(), "hello")
		require.True(t, tel.Contains("info", "skipping"))
	}
	requests, _ := fake.received()
	require.Empty(t, requests)
}

func closedAddr(t testing.TB) (string, int) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	listener.Close()
	portNo, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, portNo
}

func TestEmailCompose(t *testing.T) {
	notifier := NewEmail(SmtpOptions{
		Server:       "smtp.example.com",
		EmailAddress: "bot@example.com",
		To:           []string{"me@example.com"},
	}, telemetry.NewRecorder())
	require.True(t, notifier.Configured())
	require.Equal(t, 587, notifier.opts.Port)

	mail := notifier.compose("body text")
	require.Equal(t, "Zhuimi Checkin <bot@example.com>", mail.From)
	require.Equal(t, []string{"me@example.com"}, mail.To)
	require.Equal(t, "逐觅签到通知", mail.Subject)
	require.Equal(t, "body text", string(mail.Text))
}

func TestEmailUnconfigured(t *testing.T) {
	tel := telemetry.NewRecorder()
	notifier := NewEmail(SmtpOptions{Server: "smtp.example.com"}, tel)
	require.False(t, notifier.Configured())

	notifier.Notify(context.Background(), "hello")
	require.Empty(t, tel.Reports("broken"))
	require.True(t, tel.Contains("debug", "skipping"))
}

func TestEmailFailureIsReported(t *testing.T) {
	host, port := closedAddr(t)
	tel := telemetry.NewRecorder()
	notifier := NewEmail(SmtpOptions{
		Server:       host,
		Port:         port,
		EmailAddress: "bot@example.com",
		To:           []string{"me@example.com"},
	}, tel)

	notifier.Notify(context.Background(), "hello")
	require.True(t, tel.Contains("broken", report_email_send))
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) {
	r.messages = append(r.messages, message)
}

func TestMulti(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	Multi{a, b}.Notify(context.Background(), "hello")
	require.Equal(t, []string{"hello"}, a.messages)
	require.Equal(t, []string{"hello"}, b.messages)
}
