package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "tjsl_backend/internals/features/users/user/model"
)

func TestIssueAccessToken_ClaimsReadableByMiddleware(t *testing.T) {
	u := userModel.UserModel{ID: uuid.New(), UserName: "pelaksana1", Role: "USER"}
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	tok, exp, err := IssueAccessToken(u, "s3cret", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), exp)

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err = parser.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)

	assert.Equal(t, u.ID.String(), claims["id"])
	assert.Equal(t, "USER", claims["role"])
	assert.Equal(t, "pelaksana1", claims["user_name"])
	assert.EqualValues(t, exp.Unix(), claims["exp"])
}
