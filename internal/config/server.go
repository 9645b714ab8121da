package config

import (
	"fmt"
	"os"
	"strings"
)

// ServerConfig describes the recommendation server settings.
// Values come from the environment; a .env file is loaded by the caller.
type ServerConfig struct {
	Addr        string
	CatalogPath string
	ImageDir    string
}

// LoadServerConfig reads POSECHAT_ADDR, POSECHAT_CATALOG and POSECHAT_IMAGE_DIR.
func LoadServerConfig() (ServerConfig, error) {
	addr, err := parseAddr(os.Getenv("POSECHAT_ADDR"))
	if err != nil {
		return ServerConfig{}, err
	}

	cfg := ServerConfig{
		Addr:        addr,
		CatalogPath: envOr("POSECHAT_CATALOG", "posestepvideo.csv"),
		ImageDir:    envOr("POSECHAT_IMAGE_DIR", "Pose"),
	}
	return cfg, nil
}

// parseAddr accepts "5000", ":5000" or "host:5000".
func parseAddr(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return ":5000", nil
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid POSECHAT_ADDR value: %q", raw)
	}
	return ":" + port, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
