package storage

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

const uploadScope = "blob:upload"

// SignUploadToken mints a short-lived token authorizing one direct binary
// upload to the ref it carries. The token is the query credential on the
// upload URL handed to clients.
func SignUploadToken(secret []byte, ref string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ref,
		"scope": uploadScope,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign upload token failed")
	}
	return signed, nil
}

// ParseUploadToken validates an upload token and returns the blob ref it
// authorizes.
func ParseUploadToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid upload token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid upload token")
	}
	if scope, _ := claims["scope"].(string); scope != uploadScope {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid upload token scope")
	}
	ref, _ := claims["sub"].(string)
	if ref == "" {
		return "", appErr.New(appErr.CodeUnauthorized, "upload token missing ref")
	}
	return ref, nil
}
