package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

// ErrUnknownRole возвращается, если в токене нет роли client или freelancer.
var ErrUnknownRole = errors.New("token: неизвестная роль")

// TokenManager проверяет access токены, выпущенные сервисом авторизации.
// Выпуск токенов здесь нужен только для локального запуска и тестов.
type TokenManager struct {
	accessSecret []byte
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(accessSecret string) *TokenManager {
	return &TokenManager{accessSecret: []byte(accessSecret)}
}

// ParseAccess извлекает userID и роль из access токена.
func (m *TokenManager) ParseAccess(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, "", err
	}
	if !parsed.Valid {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	role, _ := claims["role"].(string)

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", err
	}

	return userID, role, nil
}

// ParseRecipient превращает access токен в адресата уведомлений.
func (m *TokenManager) ParseRecipient(token string) (entity.Recipient, error) {
	userID, role, err := m.ParseAccess(token)
	if err != nil {
		return entity.Recipient{}, err
	}
	kind := valueobject.RecipientKind(role)
	if !kind.IsValid() {
		return entity.Recipient{}, ErrUnknownRole
	}
	return entity.Recipient{Kind: kind, ID: userID}, nil
}

// IssueAccess формирует access токен для участника.
func (m *TokenManager) IssueAccess(to entity.Recipient, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  to.ID.String(),
		"role": string(to.Kind),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.accessSecret)
}
