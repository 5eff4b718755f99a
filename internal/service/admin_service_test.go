package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"availability/internal/config"
	"availability/internal/records"
	"availability/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type staticHistory map[int64]time.Time

func (h staticHistory) LastSubmittedAt(context.Context, []int64) (map[int64]time.Time, error) {
	return h, nil
}

func TestAdminService_ListRequests(t *testing.T) {
	m := records.NewMemoryStore()
	seedRequests(m)
	submitted := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAdminService(repository.NewAvailabilityRepository(m), staticHistory{2: submitted})
	ctx := context.Background()

	all, err := svc.ListRequests(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Nil(t, all[0].Responded)
	require.NotNil(t, all[1].Responded)
	require.NotNil(t, all[1].LastSubmittedAt)
	assert.Equal(t, submitted, *all[1].LastSubmittedAt)

	pending, err := svc.ListRequests(ctx, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Ada", pending[0].Name)
	assert.Equal(t, "1", pending[0].RequestGroup)
}

func TestAdminAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAdminAuthService(config.Admin{JWTSecret: "s3cret", PasswordHash: string(hash)})

	_, err = svc.Login("wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	signed, err := svc.Login("hunter2")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(adminTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestAdminAuthService_Disabled(t *testing.T) {
	_, err := NewAdminAuthService(config.Admin{}).Login("anything")
	assert.Error(t, err)
}
