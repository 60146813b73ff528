package services

import (
	"encoding/json"
	"testing"

	"quickstay-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	require.NoError(t, svc.Upsert(models.User{
		ID: "user_1", Email: "a@example.com", Username: "A User",
	}))

	user, err := svc.GetByID("user_1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	require.NoError(t, svc.PromoteToOwner("user_1"))

	// A replayed update refreshes profile fields but keeps the local role.
	require.NoError(t, svc.Upsert(models.User{
		ID: "user_1", Email: "b@example.com", Username: "B User",
	}))

	user, err = svc.GetByID("user_1")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", user.Email)
	assert.Equal(t, models.RoleHotelOwner, user.Role)
}

func TestStoreRecentSearchedCityCapsAtThree(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	seedGuest(t, db, "user_1")

	for _, city := range []string{"Dubai", "London", "New York", "Singapore"} {
		_, err := svc.StoreRecentSearchedCity("user_1", city)
		require.NoError(t, err)
	}

	// Re-searching an existing city moves it to the end without duplicating.
	cities, err := svc.StoreRecentSearchedCity("user_1", "London")
	require.NoError(t, err)
	assert.Equal(t, []string{"New York", "Singapore", "London"}, cities)

	user, err := svc.GetByID("user_1")
	require.NoError(t, err)
	var stored []string
	require.NoError(t, json.Unmarshal(user.RecentSearchedCities, &stored))
	assert.Len(t, stored, 3)
}
