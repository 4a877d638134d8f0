package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies access tokens. Loaded from the environment;
// the fallback only exists so a development terminal starts without a .env.
var jwtSecretKey = []byte(Getenv("JWT_SECRET_KEY", "dev-only-dulceria-pos-secret"))

// AccessTokenTTL covers a full shop shift.
const AccessTokenTTL = 12 * time.Hour

// Claims defines the JWT claims structure for a logged-in employee.
type Claims struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Code         string `json:"code"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a new JWT access token for a given employee.
func GenerateAccessToken(employeeID int64, name string, code string) (string, error) {
	expirationTime := time.Now().Add(AccessTokenTTL)
	claims := &Claims{
		EmployeeID:   employeeID,
		EmployeeName: name,
		Code:         code,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "dulceria-pos-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
