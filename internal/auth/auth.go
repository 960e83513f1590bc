package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Permission keys known to the system. Membership in a grade's permission
// map with value true grants the capability.
const (
	PermViewPatients       = "view_patients"
	PermCreatePatients     = "create_patients"
	PermDeletePatients     = "delete_patients"
	PermCreateReports      = "create_reports"
	PermDeleteReports      = "delete_reports"
	PermManageUsers        = "manage_users"
	PermDeleteUsers        = "delete_users"
	PermViewRoster         = "view_roster"
	PermManageAppointments = "manage_appointments"
)

// Principal is the request-scoped acting identity. Authority fields
// (GradeLevel, IsAdmin, Permissions) are always sourced from the user's real
// grade. The Display* fields come from the visible grade when one is set and
// exist only for rendering; they must never feed an authorization decision.
type Principal struct {
	UserID      int64           `json:"id"`
	Username    string          `json:"username"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	BadgeNumber string          `json:"badge_number"`
	IsAdmin     bool            `json:"is_admin"`
	GradeID     int64           `json:"grade_id"`
	GradeLevel  int             `json:"grade_level"`
	Permissions map[string]bool `json:"permissions"`

	VisibleGradeID    *int64 `json:"visible_grade_id,omitempty"`
	DisplayGradeName  string `json:"grade_name"`
	DisplayGradeColor string `json:"grade_color"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}
