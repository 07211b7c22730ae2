package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 1 << 20 // 1 MiB

	signupPath        = "/auth/v1/signup"
	passwordTokenPath = "/auth/v1/token?grant_type=password"
	logoutPath        = "/auth/v1/logout"

	minPasswordLength = 6
)

// HTTPDoer is the transport seam; *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL        string
	APIKey         string
	HTTPClient     HTTPDoer
	RequestTimeout time.Duration
}

// Bridge talks to a Supabase-style GoTrue auth endpoint and normalizes its
// responses into core shapes. Wire structs never leave this package.
type Bridge struct {
	baseURL        string
	apiKey         string
	httpClient     HTTPDoer
	requestTimeout time.Duration
}

func NewBridge(cfg Config) (*Bridge, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, core.NewConfigurationError("identity: base URL is required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, core.NewConfigurationError("identity: API key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &Bridge{
		baseURL:        baseURL,
		apiKey:         apiKey,
		httpClient:     httpClient,
		requestTimeout: requestTimeout,
	}, nil
}

// FromConfig builds a bridge from the resolved service configuration.
func FromConfig(cfg core.IdentityConfig, httpClient HTTPDoer) (*Bridge, error) {
	return NewBridge(Config{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		HTTPClient:     httpClient,
		RequestTimeout: cfg.RequestTimeout,
	})
}

type signupRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type providerUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         providerUser `json:"user"`
}

func (b *Bridge) Register(ctx context.Context, in core.RegisterInput) (core.UserProfile, error) {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return core.UserProfile{}, err
	}

	payload := signupRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	if fullName := strings.TrimSpace(in.FullName); fullName != "" {
		payload.Data = map[string]any{"full_name": fullName}
	}

	var user providerUser
	if err := b.postJSON(ctx, signupPath, payload, "", &user); err != nil {
		return core.UserProfile{}, err
	}
	return b.toProfile(signupPath, user)
}

func (b *Bridge) Login(ctx context.Context, email, password string) (core.AuthResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return core.AuthResult{}, err
	}

	payload := passwordGrantRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	var token tokenResponse
	if err := b.postJSON(ctx, passwordTokenPath, payload, "", &token); err != nil {
		return core.AuthResult{}, err
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return core.AuthResult{}, core.NewProviderError(
			"identity: token response is missing access_token",
			map[string]any{"endpoint": passwordTokenPath},
		)
	}
	user, err := b.toProfile(passwordTokenPath, token.User)
	if err != nil {
		return core.AuthResult{}, err
	}

	result := core.AuthResult{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    token.ExpiresIn,
		User:         user,
	}
	if token.ExpiresIn > 0 {
		result.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	return result, nil
}

func (b *Bridge) Logout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return core.NewValidationError("access_token", "access token is required")
	}
	return b.postJSON(ctx, logoutPath, nil, strings.TrimSpace(accessToken), nil)
}

func validateCredentials(email, password string) error {
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return core.NewValidationError("email", "email is required")
	}
	if !strings.Contains(trimmedEmail, "@") {
		return core.NewValidationError("email", "email is malformed")
	}
	if len(password) < minPasswordLength {
		return core.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// postJSON issues the request and decodes a 2xx body into out when out is
// non-nil. A nil payload sends an empty body.
func (b *Bridge) postJSON(ctx context.Context, path string, payload any, bearerToken string, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	requestCtx, cancel := context.WithTimeout(ctx, b.requestTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return core.WrapProviderError(err, "identity: encode request body", map[string]any{"endpoint": path})
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, b.baseURL+path, body)
	if err != nil {
		return core.WrapProviderError(err, "identity: build request", map[string]any{"endpoint": path})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", b.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	res, err := b.httpClient.Do(req)
	if err != nil {
		return core.WrapProviderError(err, "identity: provider request failed", map[string]any{"endpoint": path})
	}
	defer res.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes+1))
	if readErr != nil {
		return core.WrapProviderError(readErr, "identity: read provider response", map[string]any{"endpoint": path})
	}
	if int64(len(raw)) > maxResponseBytes {
		return core.NewProviderError(
			fmt.Sprintf("identity: provider response exceeds %d bytes", maxResponseBytes),
			map[string]any{"endpoint": path},
		)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return core.NewProviderError(
			fmt.Sprintf("identity: provider returned status %d", res.StatusCode),
			map[string]any{
				"endpoint": path,
				"status":   res.StatusCode,
				"body":     string(raw),
			},
		)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return core.WrapProviderError(err, "identity: decode provider response", map[string]any{
			"endpoint": path,
			"status":   res.StatusCode,
		})
	}
	return nil
}

// toProfile rejects 2xx payloads that lack a usable user. A provider that
// answered success without an id or email is a provider failure, not user error.
func (b *Bridge) toProfile(endpoint string, user providerUser) (core.UserProfile, error) {
	id, err := uuid.Parse(strings.TrimSpace(user.ID))
	if err != nil || id == uuid.Nil {
		return core.UserProfile{}, core.NewProviderError(
			"identity: provider user is missing a valid id",
			map[string]any{"endpoint": endpoint, "user_id": user.ID},
		)
	}
	email := strings.TrimSpace(user.Email)
	if email == "" {
		return core.UserProfile{}, core.NewProviderError(
			"identity: provider user is missing an email",
			map[string]any{"endpoint": endpoint, "user_id": user.ID},
		)
	}

	profile := core.UserProfile{
		ID:        id,
		Email:     email,
		FullName:  readString(user.UserMetadata["full_name"]),
		CreatedAt: parseProviderTime(user.CreatedAt),
		UpdatedAt: parseProviderTime(user.UpdatedAt),
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}
	return profile, nil
}

func parseProviderTime(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func readString(value any) string {
	if typed, ok := value.(string); ok {
		return strings.TrimSpace(typed)
	}
	return ""
}

var _ core.AuthBridge = (*Bridge)(nil)
