package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"herbanusa-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid access token")
	ErrUnknownRole  = errors.New("unknown role claim")
)

// ExtractAccessToken reads the identity provider's token from the
// access_token cookie, falling back to the Authorization bearer header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// Claims issued by the identity provider. Only role and seller_id are read
// beyond the registered claims.
type Claims struct {
	Role     string `json:"role"`
	SellerID string `json:"seller_id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// ParseViewer verifies an HS256 token and maps its claims to a Viewer. A
// missing role means customer.
func ParseViewer(token string, secret []byte) (utils.Viewer, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return utils.Viewer{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := claims.Role
	switch role {
	case "":
		role = utils.RoleCustomer
	case utils.RoleCustomer, utils.RoleFarmer:
	default:
		return utils.Viewer{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	return utils.Viewer{
		Subject:  claims.Subject,
		Role:     role,
		SellerID: claims.SellerID,
		Name:     claims.Name,
	}, nil
}
