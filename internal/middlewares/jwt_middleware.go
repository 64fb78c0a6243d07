package middlewares

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"strings"

	"tandem-server/configs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"
const emailIDKey = "user_email"

// parseSessionPublicKey는 설정의 PEM 공개키를 파싱합니다. 아이덴티티 공급자가
// 발급하는 세션 토큰은 RS256 또는 ES256으로 서명됩니다.
func parseSessionPublicKey() (interface{}, error) {
	block, _ := pem.Decode([]byte(configs.Configs.Secrets.SessionPublicKey))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}
	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	switch pubKey.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey:
		return pubKey, nil
	default:
		return nil, errors.New("session public key is not an RSA or ECDSA public key")
	}
}

// JWTMiddleware는 요청 헤더의 Authorization에서 Bearer 토큰을 추출하여
// 아이덴티티 공급자의 공개키로 검증한 후, sub 클레임(사용자 ID)과 email
// 클레임을 컨텍스트에 저장합니다.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Authorization 헤더에서 토큰 추출
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header format"})
		}
		tokenStr := parts[1]

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodRSA, *jwt.SigningMethodECDSA:
			default:
				return nil, errors.New("unexpected signing method")
			}
			return parseSessionPublicKey()
		})
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}

		// 토큰이 유효하면 sub 클레임(사용자 ID)을 컨텍스트에 저장
		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sub claim not found in token"})
			}
			c.Set(userIDKey, sub)
			// email은 초대 목록 조회에 사용됩니다
			if email, ok := claims["email"].(string); ok {
				c.Set(emailIDKey, email)
			}
			return next(c)
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
}

// GetUserIDFromContext는 미들웨어에서 저장한 user_id를 컨텍스트에서 추출합니다.
func GetUserIDFromContext(c echo.Context) (string, error) {
	uid := c.Get(userIDKey)
	if uid == nil {
		return "", errors.New("user id not found in context")
	}
	userID, ok := uid.(string)
	if !ok {
		return "", errors.New("user id has invalid type")
	}
	return userID, nil
}

// GetEmailFromContext는 미들웨어에서 저장한 user_email을 컨텍스트에서 추출합니다.
func GetEmailFromContext(c echo.Context) (string, error) {
	email := c.Get(emailIDKey)
	if email == nil {
		return "", errors.New("user email not found in context")
	}
	emailStr, ok := email.(string)
	if !ok {
		return "", errors.New("user email has invalid type")
	}
	return emailStr, nil
}
