package middleware

import (
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
)

// jwtClaimsStateKey is the state bag key for validated JWT claims.
const jwtClaimsStateKey = "jwt_claims"

// JWTConfig configures the JWT authentication middleware.
type JWTConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// SigningKey is the HMAC secret used to validate tokens (required)
	SigningKey []byte
	// SigningMethods restricts accepted algorithms (default: HS256)
	SigningMethods []string
	// HeaderName is the header carrying the bearer token (default: "Authorization")
	HeaderName string
	// RequiredRoles, when set, additionally requires the "roles" claim to
	// contain every listed role; missing roles yield a 403.
	RequiredRoles []string
}

// JWTAuth creates a JWT bearer authentication middleware. Requests without a
// valid token are rejected with a 401 error; authenticated requests carry
// their claims in the context state bag. Panics if no signing key is
// provided.
func JWTAuth(cfg JWTConfig) router.Middleware {
	if len(cfg.SigningKey) == 0 {
		panic("jwt middleware: signing key is required")
	}
	if len(cfg.SigningMethods) == 0 {
		cfg.SigningMethods = []string{"HS256"}
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "Authorization"
	}

	keyFunc := func(*jwt.Token) (any, error) {
		return cfg.SigningKey, nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods(cfg.SigningMethods))

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		header := ctx.Request().Header.Get(cfg.HeaderName)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return httperr.Unauthorized("missing bearer token")
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
			return httperr.Unauthorized("invalid token").WithError(err)
		}

		if len(cfg.RequiredRoles) > 0 {
			if missing := missingRoles(claims, cfg.RequiredRoles); len(missing) > 0 {
				return httperr.Forbidden("insufficient permissions", missing...)
			}
		}

		ctx.Set(jwtClaimsStateKey, claims)
		return next()
	}
}

// GetClaims retrieves the validated JWT claims from the context state bag.
func GetClaims(ctx *router.Context) (jwt.MapClaims, bool) {
	v, ok := ctx.Get(jwtClaimsStateKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}

// missingRoles returns the required roles absent from the token's "roles" claim.
func missingRoles(claims jwt.MapClaims, required []string) []string {
	var have []string
	if raw, ok := claims["roles"].([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				have = append(have, s)
			}
		}
	}

	var missing []string
	for _, want := range required {
		if !slices.Contains(have, want) {
			missing = append(missing, want)
		}
	}
	return missing
}
