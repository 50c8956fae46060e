package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grantflow/internal/domain"
	"grantflow/internal/service"
	"grantflow/mocks"
)

func setupProfileService() (*service.ProfileService, *mocks.MockProfileRepo) {
	profiles := new(mocks.MockProfileRepo)
	return service.NewProfileService(profiles), profiles
}

func TestProfileService_Create_Success(t *testing.T) {
	svc, profiles := setupProfileService()

	profiles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	profile, err := svc.Create(context.Background(), service.CreateProfileInput{
		DisplayName: "Maria Santos",
		Notes:       "transfer student",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Maria Santos", profile.DisplayName)
	assert.Equal(t, domain.ProfileTypeIndividual, profile.ProfileType)
	assert.NotEqual(t, uuid.Nil, profile.ID)
	profiles.AssertExpectations(t)
}

func TestProfileService_Create_OrganizationType(t *testing.T) {
	svc, profiles := setupProfileService()

	profiles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	profile, err := svc.Create(context.Background(), service.CreateProfileInput{
		ProfileType: domain.ProfileTypeOrganization,
		DisplayName: "Westside Youth Center",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ProfileTypeOrganization, profile.ProfileType)
}

func TestProfileService_Create_MissingDisplayName(t *testing.T) {
	svc, profiles := setupProfileService()

	profile, err := svc.Create(context.Background(), service.CreateProfileInput{})

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, domain.ErrDisplayNameRequired)
	profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileService_Update_PartialFields(t *testing.T) {
	svc, profiles := setupProfileService()
	id := uuid.New()

	existing := &domain.Profile{
		ID:          id,
		DisplayName: "Maria Santos",
		FullName:    "Maria G Santos",
		City:        "Sacramento",
	}
	profiles.On("GetByID", mock.Anything, id).Return(existing, nil)
	profiles.On("Update", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	newCity := "Davis"
	updated, err := svc.Update(context.Background(), id, service.UpdateProfileInput{City: &newCity})

	assert.NoError(t, err)
	assert.Equal(t, "Davis", updated.City)
	assert.Equal(t, "Maria G Santos", updated.FullName)
	assert.Equal(t, "Maria Santos", updated.DisplayName)
}

func TestProfileService_Update_EmptyDisplayNameRejected(t *testing.T) {
	svc, profiles := setupProfileService()
	id := uuid.New()

	profiles.On("GetByID", mock.Anything, id).Return(&domain.Profile{ID: id, DisplayName: "Maria"}, nil)

	empty := ""
	updated, err := svc.Update(context.Background(), id, service.UpdateProfileInput{DisplayName: &empty})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domain.ErrDisplayNameRequired)
	profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_Update_NotFound(t *testing.T) {
	svc, profiles := setupProfileService()
	id := uuid.New()

	profiles.On("GetByID", mock.Anything, id).Return(nil, domain.ErrProfileNotFound)

	updated, err := svc.Update(context.Background(), id, service.UpdateProfileInput{})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileService_Get(t *testing.T) {
	svc, profiles := setupProfileService()
	id := uuid.New()

	profiles.On("GetByID", mock.Anything, id).Return(&domain.Profile{ID: id}, nil)

	profile, err := svc.Get(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, id, profile.ID)
}

func TestProfileService_List(t *testing.T) {
	svc, profiles := setupProfileService()

	profiles.On("List", mock.Anything, 0, 20).
		Return([]domain.Profile{{DisplayName: "a"}, {DisplayName: "b"}}, 2, nil)

	list, total, err := svc.List(context.Background(), 0, 20)

	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, total)
}

func TestProfileService_Delete(t *testing.T) {
	svc, profiles := setupProfileService()
	id := uuid.New()

	profiles.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), id))
	profiles.AssertExpectations(t)
}
