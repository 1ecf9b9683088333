package auth

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-shop/internal/shared/errors"
)

// Rule grants access to one route. A rule without roles is public.
type Rule struct {
	Method  string
	Pattern string
	Roles   []string
}

// Policy is the access table for a router, keyed by method and gin pattern.
type Policy struct {
	rules map[string]Rule
}

func NewPolicy(rules ...Rule) *Policy {
	p := &Policy{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		p.rules[policyKey(rule.Method, rule.Pattern)] = rule
	}
	return p
}

func (p *Policy) Lookup(method, pattern string) (Rule, bool) {
	if p == nil {
		return Rule{}, false
	}
	rule, ok := p.rules[policyKey(method, pattern)]
	return rule, ok
}

func policyKey(method, pattern string) string {
	return strings.ToUpper(method) + " " + pattern
}

// Guard authenticates the caller and enforces the route's rule before the
// handler runs. Matched routes missing from the policy are refused.
func Guard(authn Authenticator, policy *Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		pattern := c.FullPath()
		if pattern == "" {
			// unmatched path, let gin answer 404/405
			c.Next()
			return
		}
		rule, ok := policy.Lookup(c.Request.Method, pattern)
		if !ok {
			slog.WarnContext(c.Request.Context(), "route has no access rule",
				slog.String("http.method", c.Request.Method), slog.String("http.route", pattern))
			apierrors.Abort(c, apierrors.ErrForbidden.WithDetail("route is not accessible"))
			return
		}
		if len(rule.Roles) == 0 {
			c.Next()
			return
		}

		token, found := bearerToken(c.GetHeader("Authorization"))
		if !found {
			unauthorized(c, ErrMissingToken)
			return
		}
		principal, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, err)
			return
		}
		if !principal.HasAnyRole(rule.Roles...) {
			apierrors.Abort(c, apierrors.ErrForbidden.
				WithDetail("caller lacks a required role").
				WithExtension("requiredRoles", rule.Roles))
			return
		}

		ctx := WithBearerToken(WithPrincipal(c.Request.Context(), principal), token)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func unauthorized(c *gin.Context, err error) {
	detail := ErrInvalidToken.Error()
	if errors.Is(err, ErrMissingToken) {
		detail = ErrMissingToken.Error()
	}
	slog.DebugContext(c.Request.Context(), "authentication failed", slog.String("error", err.Error()))
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail(detail))
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
