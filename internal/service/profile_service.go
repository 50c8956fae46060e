package service

import (
	"context"

	"github.com/google/uuid"

	"grantflow/internal/domain"
	"grantflow/internal/port"
)

// CreateProfileInput is the DTO for creating a profile.
type CreateProfileInput struct {
	ProfileType domain.ProfileType `json:"profile_type"`
	DisplayName string             `json:"display_name"`
	Notes       string             `json:"notes"`
}

// UpdateProfileInput is the DTO for updating a profile. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	DisplayName  *string `json:"display_name"`
	Notes        *string `json:"notes"`
	FullName     *string `json:"full_name"`
	DOB          *string `json:"dob"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
}

// ProfileService owns profile CRUD.
type ProfileService struct {
	profiles port.ProfileRepository
}

// NewProfileService wires a ProfileService.
func NewProfileService(profiles port.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Create validates and stores a new profile. Profile type defaults to
// individual.
func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput) (*domain.Profile, error) {
	if input.DisplayName == "" {
		return nil, domain.ErrDisplayNameRequired
	}
	if input.ProfileType == "" {
		input.ProfileType = domain.ProfileTypeIndividual
	}

	profile := &domain.Profile{
		ID:          uuid.New(),
		ProfileType: input.ProfileType,
		DisplayName: input.DisplayName,
		Notes:       input.Notes,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns a profile by ID.
func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// List returns a page of profiles, newest first.
func (s *ProfileService) List(ctx context.Context, offset, limit int) ([]domain.Profile, int, error) {
	return s.profiles.List(ctx, offset, limit)
}

// Update applies the non-nil fields of the input to a profile.
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			return nil, domain.ErrDisplayNameRequired
		}
		profile.DisplayName = *input.DisplayName
	}
	if input.Notes != nil {
		profile.Notes = *input.Notes
	}
	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.DOB != nil {
		profile.DOB = *input.DOB
	}
	if input.AddressLine1 != nil {
		profile.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		profile.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.State != nil {
		profile.State = *input.State
	}
	if input.Zip != nil {
		profile.Zip = *input.Zip
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile.
func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.profiles.Delete(ctx, id)
}
