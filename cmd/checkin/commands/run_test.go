package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"zhuimi-checkin/internal/zhuimi"

	"github.com/stretchr/testify/require"
)

func newSite(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/utils/captcha", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/user/doLogin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": {"token": "T1", "user": {"api_count": "42"}}}`)
	})
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div id="tvboxLinkContainer"><div class="endpoint-url"><code>https://x.example/api</code></div></div><span class="expire-time">2099-01-01 00:00:00</span>`)
	})
	mux.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/doSignin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code": 0, "data": {"reward": 5}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

type telegramRecorder struct {
	mutex sync.Mutex
	texts []string
}

func (r *telegramRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	json.NewDecoder(req.Body).Decode(&body)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.texts = append(r.texts, body.Text)
}

func (r *telegramRecorder) received() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]string(nil), r.texts...)
}

func execute(t *testing.T, args ...string) string {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	require.NoError(t, err)
	return out.String()
}

func writeConfig(t *testing.T, dir string, site, telegram string) string {
	path := filepath.Join(dir, "checkin.json5")
	contents := fmt.Sprintf(`{
		base_url: %q,
		telegram: { bot_token: "t", chat_id: "c", api_url: %q },
		http: { requests_per_second: -1 },
		metrics_file: %q,
	}`, site, telegram, filepath.Join(dir, "checkin.prom"))
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
	return path
}

func TestRunCommand(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZHUIMI_USERNAME", "alice")
	t.Setenv("ZHUIMI_PASSWORD", "secret")

	site := newSite(t)
	telegram := &telegramRecorder{}
	telegramServer := httptest.NewServer(telegram)
	defer telegramServer.Close()

	dir := t.TempDir()
	config := writeConfig(t, dir, site.URL, telegramServer.URL)

	out := execute(t, "run", "--config", config, "--env-file", filepath.Join(dir, ".env"))
	require.True(t, strings.Contains(out, "👤 用户名：alice"))
	require.True(t, strings.Contains(out, "🎉 签到成功，奖励：5 次API调用"))

	texts := telegram.received()
	require.Len(t, texts, 1)
	require.True(t, strings.Contains(texts[0], "🔗 专属链接：https://x.example/api"))

	metrics, err := os.ReadFile(filepath.Join(dir, "checkin.prom"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(metrics), "zhuimi_checkin_success 1"))
}

func TestRunCommandMissingCredentials(t *testing.T) {
	clearEnv(t)

	site := newSite(t)
	telegram := &telegramRecorder{}
	telegramServer := httptest.NewServer(telegram)
	defer telegramServer.Close()

	dir := t.TempDir()
	config := writeConfig(t, dir, site.URL, telegramServer.URL)

	out := execute(t, "run", "--config", config, "--env-file", filepath.Join(dir, ".env"))
	require.True(t, strings.Contains(out, "登录失败"))
	require.Len(t, telegram.received(), 1)
}

func TestRenderProfile(t *testing.T) {
	token := "T1"
	rendered := renderProfile(
		zhuimi.AuthResult{Token: &token},
		zhuimi.Profile{ApiLink: "https://x.example/api", ExpireText: "2099-01-01 00:00:00", RemainingDays: 3},
	)
	for _, expect := range []string{"T1", "unknown", "https://x.example/api", "2099-01-01 00:00:00", "3"} {
		require.True(t, strings.Contains(rendered, expect), expect)
	}
}
