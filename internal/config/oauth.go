package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const oauthFileBase = "deskrota_oauth"

// OAuthClientConfig is the Google "installed app" client file used for publishing
type OAuthClientConfig struct {
	Installed OAuthInstalled `json:"installed" validate:"required"`
}

// OAuthInstalled represents the installed section of the client file
type OAuthInstalled struct {
	ClientID     string   `json:"client_id" validate:"required"`
	ProjectID    string   `json:"project_id" validate:"required"`
	AuthURI      string   `json:"auth_uri" validate:"required,url"`
	TokenURI     string   `json:"token_uri" validate:"required,url"`
	ClientSecret string   `json:"client_secret" validate:"required"`
	RedirectURIs []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`

	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url,omitempty" validate:"omitempty,url"`
}

// LoadOAuthClientWithEnv loads the OAuth client file for an environment,
// e.g. env="prod" reads deskrota_oauth.prod.json
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	name := oauthFileBase + ".json"
	if env != "" {
		name = oauthFileBase + "." + env + ".json"
	}

	path, err := findFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth client file: %w", err)
	}

	return LoadOAuthClientFromPath(path)
}

// LoadOAuthClientFromPath loads and validates the OAuth client file at path
func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var oauthCfg OAuthClientConfig
	if err := json.Unmarshal(data, &oauthCfg); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file: %w", err)
	}

	if err := validate.Struct(&oauthCfg); err != nil {
		return nil, fmt.Errorf("oauth client validation failed: %w", err)
	}

	return &oauthCfg, nil
}
