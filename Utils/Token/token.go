package Token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ProSpine/Config"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

func GenerateToken(employee_id uint) (string, error) {
	cfg := Config.Load()

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["employee_id"] = employee_id
	claims["exp"] = time.Now().Add(time.Hour * time.Duration(cfg.TokenLifespanHours)).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(cfg.ApiSecret))
}

func TokenValid(c *gin.Context) error {
	tokenString := ExtractToken(c)
	_, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(Config.Load().ApiSecret), nil
	})
	return err
}

func ExtractToken(c *gin.Context) string {
	token := c.Query("token")
	if token != "" {
		return token
	}
	bearerToken := c.Request.Header.Get("Authorization")
	if len(strings.Split(bearerToken, " ")) == 2 {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

func ExtractJWT(c *gin.Context) (*jwt.Token, error) {
	tokenString := ExtractToken(c)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(Config.Load().ApiSecret), nil
	})
}

func ExtractTokenID(c *gin.Context) (uint, error) {
	token, err := ExtractJWT(c)
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	uid, err := strconv.ParseUint(fmt.Sprintf("%.0f", claims["employee_id"]), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(uid), nil
}
