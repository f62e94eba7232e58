package components

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/utils"
)

// Token issues and verifies HS256 tokens for api_auth. Signing keys are the
// entries of api_auth.credentials, read through the configuration that
// resolved the component; the first entry signs, any entry verifies.
type Token struct {
	issuer string
	ttl    time.Duration
	conf   registry.Configuration
}

func NewToken(issuer, ttl string) (*Token, error) {
	d, err := duration(ttl)
	if err != nil {
		return nil, fmt.Errorf("token.ttl: %w", err)
	}
	if d <= 0 {
		d = time.Hour
	}
	return &Token{issuer: issuer, ttl: d}, nil
}

// SetConfigurationObject implements registry.ConfigurationAware.
func (t *Token) SetConfigurationObject(conf registry.Configuration) {
	t.conf = conf
}

func (t *Token) keys() []string {
	if t.conf == nil {
		return nil
	}
	v, ok := t.conf.GetConfig(merger.SectionAPIAuth, "credentials")
	if !ok {
		return nil
	}
	keys := v.StringList()
	out := keys[:0]
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Issue signs a token for subject.
func (t *Token) Issue(subject string) (string, error) {
	keys := t.keys()
	if len(keys) == 0 {
		return "", ErrNoSigningKey
	}
	return utils.GenerateJWTToken(t.issuer, subject, t.ttl, keys[0])
}

// Verify returns the subject of a valid token. raw may carry a "Bearer "
// prefix.
func (t *Token) Verify(raw string) (string, error) {
	if bearer, err := utils.ParseBearerToken(raw); err == nil {
		raw = bearer
	}
	raw = strings.TrimSpace(raw)

	keys := t.keys()
	if len(keys) == 0 {
		return "", ErrNoSigningKey
	}

	var lastErr error
	for _, key := range keys {
		subject, err := utils.ValidateAndParseJWTToken(raw, key, t.issuer)
		if err == nil {
			return subject, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// Method exposes "Verify" (also reachable as the ApiAuth fallback name),
// returning whether the token is valid, and "Issue" returning a token.
func (t *Token) Method(name string) (callback.Func, bool) {
	switch name {
	case "Verify", "ApiAuth":
		return func(_ context.Context, args ...any) (any, error) {
			if len(args) == 0 {
				return false, nil
			}
			raw, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%w: Verify wants a string token, got %T", callback.ErrInvalidCallback, args[0])
			}
			_, err := t.Verify(raw)
			if errors.Is(err, ErrNoSigningKey) {
				return nil, err
			}
			return err == nil, nil
		}, true
	case "Issue":
		return func(_ context.Context, args ...any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%w: Issue wants a subject", callback.ErrInvalidCallback)
			}
			return t.Issue(fmt.Sprint(args[0]))
		}, true
	}
	return nil, false
}
