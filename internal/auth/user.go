package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (LoginResponse, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByCode(userCode string) (*User, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetUserByEmail(email string) (*User, string, error)
	GetUserByCode(userCode string) (*User, error)
}

// Role is the closed set of roles known to the system.
type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleHR         Role = "HR"
	RoleManager    Role = "Manager"
	RoleEmployee   Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User is the acting user attached to the request context.
type User struct {
	ID       int64  `json:"-"`
	Code     string `json:"code"`
	OrgID    int64  `json:"-"`
	OrgCode  string `json:"org_code"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

// IsBackOffice reports whether the user may act on timesheets they do not own.
func (u *User) IsBackOffice() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleHR
}

func (u *User) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResponse struct {
	AuthTokens
	User User `json:"user"`
}

type Claims struct {
	UserCode string `json:"user_code"`
	OrgCode  string `json:"org_code"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserNotFound       = errors.New("user not found")
)

type userCtxKey string

const ContextUserKey userCtxKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
