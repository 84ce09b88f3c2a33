package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_CLIENT_ID", "test-client-id")
	t.Setenv("DISCORD_CLIENT_SECRET", "test-client-secret")
	t.Setenv("DISCORD_REDIRECT_URL", "http://localhost:4900/auth/discord/callback")
	t.Setenv("SESSION_SECRET", "test-session-secret-32bytes-long!")
	t.Setenv("SUBMIT_REDIRECT_URL", "https://discord.com/channels/1/2")
	t.Setenv("DATA_DIR", t.TempDir())
}

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.DiscordClientID != "test-client-id" {
		t.Errorf("DiscordClientID = %q, want %q", cfg.DiscordClientID, "test-client-id")
	}

	// グローバルロガーがJSON出力に設定されていることを確認
	slog.Default().Info("init test")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

func TestInit_WithMissingConfig_ReturnsError(t *testing.T) {
	// 必須環境変数をすべてクリア
	t.Setenv("DISCORD_CLIENT_ID", "")
	t.Setenv("DISCORD_CLIENT_SECRET", "")
	t.Setenv("DISCORD_REDIRECT_URL", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SUBMIT_REDIRECT_URL", "")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}

func TestRun_WithMissingEnv_ReturnsError(t *testing.T) {
	t.Setenv("DISCORD_CLIENT_ID", "")
	t.Setenv("DISCORD_CLIENT_SECRET", "")
	t.Setenv("DISCORD_REDIRECT_URL", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SUBMIT_REDIRECT_URL", "")

	var buf bytes.Buffer
	err := Run(&buf, []string{"serve"})
	if err == nil {
		t.Fatal("Run with missing env should return error")
	}
}

func TestRunHealthcheck_HealthyServer_Succeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	port := strings.TrimPrefix(server.URL, "http://127.0.0.1:")
	// httptestは127.0.0.1で待ち受けるため、localhost宛てのヘルスチェックと同一ホストになる
	if err := runHealthcheck(port); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}
}

func TestRunHealthcheck_UnhealthyServer_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	port := strings.TrimPrefix(server.URL, "http://127.0.0.1:")
	if err := runHealthcheck(port); err == nil {
		t.Error("expected error for unhealthy server")
	}
}

func TestRunHealthcheck_NoServer_ReturnsError(t *testing.T) {
	// 使われていないポートに対するヘルスチェックは失敗する
	if err := runHealthcheck("1"); err == nil {
		t.Error("expected error when no server is listening")
	}
}

func TestRun_HealthcheckCommand_SkipsFullInit(t *testing.T) {
	// 必須環境変数が無くてもhealthcheckサブコマンドは設定読み込みを行わない。
	// サーバーが起動していないため接続エラーになることを確認する。
	t.Setenv("DISCORD_CLIENT_ID", "")
	t.Setenv("SERVER_PORT", "1")

	var buf bytes.Buffer
	err := Run(&buf, []string{"healthcheck"})
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if strings.Contains(err.Error(), "environment") {
		t.Errorf("healthcheck should not load config, got %v", err)
	}
}
