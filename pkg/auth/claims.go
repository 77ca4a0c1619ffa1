package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-backend/pkg/enums"
)

// AccessTokenPayload is the data minted into an access token.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
	Name    string
	Role    enums.Role
	JTI     string
}

// AccessTokenClaims is the typed JWT claim set carried by every request.
type AccessTokenClaims struct {
	UserID  uuid.UUID  `json:"uid"`
	StoreID uuid.UUID  `json:"store_id"`
	Name    string     `json:"name"`
	Role    enums.Role `json:"role"`
	jwt.RegisteredClaims
}
