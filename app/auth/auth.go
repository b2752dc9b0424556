package auth

import (
	"errors"
	"fmt"

	"github.com/folio-dev/folio/app/database"
)

var (
	// ErrNoIdentity means no authenticated identity could be resolved for
	// the request token.
	ErrNoIdentity = errors.New("no authenticated identity")
	// ErrNotAdmin means the identity exists but does not carry the admin flag.
	ErrNotAdmin = errors.New("admin privileges required")
)

// Service resolves identities and enforces the admin gate. The admin flag is
// re-read from the database on every check; nothing is cached.
type Service struct {
	profileRepo database.ProfileRepository
}

func NewService(profileRepo database.ProfileRepository) *Service {
	return &Service{profileRepo: profileRepo}
}

// Identify resolves the profile behind an API token.
func (s *Service) Identify(token string) (*database.Profile, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}

	profile, err := s.profileRepo.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	if profile == nil {
		return nil, ErrNoIdentity
	}

	return profile, nil
}

// RequireAdmin resolves the identity and then reads its is_admin flag fresh
// from the database. Any failure along the way denies access.
func (s *Service) RequireAdmin(token string) (*database.Profile, error) {
	profile, err := s.Identify(token)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.profileRepo.GetAdminFlag(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify admin status: %w", err)
	}
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	return profile, nil
}
