package notice

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidNotice = errors.New("invalid notice")
	ErrExpiredNotice = errors.New("notice expired")
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Notice is the transient outcome of a mutating request, shown once by the next page view.
type Notice struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Status: StatusSuccess, Message: msg} }
func Error(msg string) Notice   { return Notice{Status: StatusError, Message: msg} }

type claims struct {
	Status  Status `json:"st"`
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// Codec signs notices so they can travel through the client without server-side session state.
type Codec struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewCodec(secretKey string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Codec{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) Encode(n Notice) (string, error) {
	now := c.now()
	cl := claims{
		Status:  n.Status,
		Message: n.Message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return token.SignedString(c.secretKey)
}

func (c *Codec) Decode(tokenString string) (Notice, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidNotice
		}
		return c.secretKey, nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Notice{}, ErrExpiredNotice
		}
		return Notice{}, ErrInvalidNotice
	}

	cl, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Notice{}, ErrInvalidNotice
	}
	if cl.Status != StatusSuccess && cl.Status != StatusError {
		return Notice{}, ErrInvalidNotice
	}

	return Notice{Status: cl.Status, Message: cl.Message}, nil
}
