package profiles

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_PublicMain_normalizesFieldNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := upstream.NewMockAPI(ctrl)
	service := NewService(apiMock)

	// upstream is loose with naming, camelCase here
	apiMock.
		EXPECT().
		Get(gomock.Any(), "/api/profiles/public/main").
		Return(json.RawMessage(`{
			"id": 1,
			"fullName": "Chukwuma Oranu",
			"profession": "Software Engineer",
			"email": "chuks@example.com",
			"profileImage": "/uploads/me.jpg"
		}`), nil)

	profile, err := service.PublicMain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Chukwuma Oranu", profile.FullName)
	assert.Equal(t, "/uploads/me.jpg", profile.ProfileImage)
}

func TestService_optimisticCacheFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := upstream.NewMockAPI(ctrl)
	service := NewService(apiMock)
	ctx := context.Background()

	apiMock.
		EXPECT().
		Get(gomock.Any(), "/api/profiles").
		Return(json.RawMessage(`[{"id":1,"full_name":"Chukwuma Oranu","email":"chuks@example.com"}]`), nil).
		Times(1)

	profiles, err := service.All(ctx, false)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	updatedProfile := profiles[0]
	updatedProfile.Profession = "Staff Engineer"
	apiMock.
		EXPECT().
		Put(gomock.Any(), "/api/profiles/update/1", updatedProfile).
		Return(json.RawMessage(`{"id":1,"full_name":"Chukwuma Oranu","email":"chuks@example.com","profession":"Staff Engineer"}`), nil)

	_, err = service.Update(ctx, 1, updatedProfile)
	require.NoError(t, err)

	// served from cache, no refetch
	profiles, err = service.All(ctx, false)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Staff Engineer", profiles[0].Profession)
}
