package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./spotdash.db" {
			t.Errorf("expected database path ./spotdash.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8888 {
			t.Errorf("expected server port 8888, got %d", config.Server.Port)
		}

		if config.Server.CookieName != "spotify_dashboard_session" {
			t.Errorf("unexpected cookie name %s", config.Server.CookieName)
		}

		if config.Client.BaseURL != "http://127.0.0.1:8888" {
			t.Errorf("expected client base URL http://127.0.0.1:8888, got %s", config.Client.BaseURL)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "")
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "")
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:8080/callback"

[client]
session_id = "abc"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Server.CookieName != "spotify_dashboard_session" {
			t.Errorf("missing keys should keep defaults, got cookie name %q", config.Server.CookieName)
		}
		if config.Client.SessionID != "abc" {
			t.Errorf("expected session id abc, got %s", config.Client.SessionID)
		}
		if !config.Credentials.Spotify.Valid() {
			t.Error("expected spotify credentials to be valid")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		config := DefaultConfig()
		env := map[string]string{
			"SPOTIFY_CLIENT_ID":    "env_id",
			"SPOTIFY_REDIRECT_URI": "http://example.com/callback",
		}
		config.ApplyEnv(func(k string) string { return env[k] })

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "your_spotify_client_secret" {
			t.Errorf("unset variables should not override, got %s", config.Credentials.Spotify.ClientSecret)
		}
		if config.Credentials.Spotify.RedirectURI != "http://example.com/callback" {
			t.Errorf("unexpected redirect uri %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("SaveConfig Round Trip", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "")
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Client.SessionID = "session-123"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Client.SessionID != "session-123" {
			t.Errorf("expected saved session id, got %q", loaded.Client.SessionID)
		}
	})

	t.Run("LoadOrDefault Missing File", func(t *testing.T) {
		config, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Server.Port != 8888 {
			t.Errorf("expected default port, got %d", config.Server.Port)
		}
	})
}
