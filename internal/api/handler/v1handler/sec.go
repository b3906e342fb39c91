package v1handler

import (
	"context"
	"crypto/rsa"
	"net/http"
	"numerology/internal/config"
	"numerology/pkg/domain"
	"numerology/pkg/logger"
	"numerology/pkg/serrors"
	"strings"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

// UserIDKey is the context key under which the authenticated domain.UserID is stored.
const UserIDKey ctxKey = "UserID"

// BearerAuth is a bearer token taken from the Authorization header.
type BearerAuth struct {
	Token string
}

// SecHandlerOptions configures token verification.
type SecHandlerOptions struct {
	// PublicKey is a PEM encoded RSA public key. Authentication is disabled when empty.
	PublicKey string
}

func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.Auth.PublicKey}
}

// SecHandler verifies RS256 signed JWTs whose subject is a user UUID.
type SecHandler struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse RSA public key")
	}

	return &SecHandler{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Enabled reports whether requests have to carry a token.
func (s *SecHandler) Enabled() bool { return s != nil && s.key != nil }

// HandleBearerAuth verifies t and returns ctx extended with the user ID.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, operationName string, t BearerAuth) (context.Context, error) {
	if !s.Enabled() {
		return ctx, nil
	}

	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(t.Token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	ctx = context.WithValue(ctx, UserIDKey, domain.UserID(id))
	ctx = logger.WithFields(ctx, zap.Stringer("user_id", id))
	logger.Debug(ctx, "request authenticated", zap.String("operation", operationName))

	return ctx, nil
}

// Authenticate requires a valid bearer token before calling next.
func (s *SecHandler) Authenticate(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if !s.Enabled() {
			return next(w, r)
		}

		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return serrors.With(serrors.ErrUnauthorized, "missing bearer token")
		}

		ctx, err := s.HandleBearerAuth(r.Context(), r.Pattern, BearerAuth{Token: strings.TrimSpace(token)})
		if err != nil {
			return err
		}

		return next(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext returns the authenticated user, if any.
func GetUserIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(UserIDKey).(domain.UserID)

	return id, ok
}
