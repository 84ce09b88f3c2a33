// Package config はアプリケーションの設定を提供する。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Discord OAuth
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string

	// Session
	SessionSecret string
	SessionMaxAge int

	// Submission
	// SubmitRedirectURLは投稿成功後の転送先。システムはこのURLの内容には
	// 一切関知しない（不透明な転送先）。
	SubmitRedirectURL string

	// Storage
	DataDir         string
	AllowlistPath   string
	SubmissionsPath string

	// Server
	ServerPort string

	// Cookie
	CookieSecure bool
	CookieDomain string
}

// 永続化ファイル名。DataDir配下に配置される。
const (
	allowlistFileName   = "allowed_logins.json"
	submissionsFileName = "submissions.json"
)

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DiscordClientID = os.Getenv("DISCORD_CLIENT_ID")
	if cfg.DiscordClientID == "" {
		missing = append(missing, "DISCORD_CLIENT_ID")
	}

	cfg.DiscordClientSecret = os.Getenv("DISCORD_CLIENT_SECRET")
	if cfg.DiscordClientSecret == "" {
		missing = append(missing, "DISCORD_CLIENT_SECRET")
	}

	cfg.DiscordRedirectURL = os.Getenv("DISCORD_REDIRECT_URL")
	if cfg.DiscordRedirectURL == "" {
		missing = append(missing, "DISCORD_REDIRECT_URL")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	cfg.SubmitRedirectURL = os.Getenv("SUBMIT_REDIRECT_URL")
	if cfg.SubmitRedirectURL == "" {
		missing = append(missing, "SUBMIT_REDIRECT_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.DataDir = getEnvString("DATA_DIR", ".")
	cfg.ServerPort = getEnvString("SERVER_PORT", "4900")
	cfg.CookieSecure = strings.HasPrefix(cfg.DiscordRedirectURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")

	cfg.AllowlistPath = filepath.Join(cfg.DataDir, allowlistFileName)
	cfg.SubmissionsPath = filepath.Join(cfg.DataDir, submissionsFileName)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
