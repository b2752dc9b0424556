package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProfileRepo handles database operations for profiles
type ProfileRepo struct {
	db *DB
}

var _ ProfileRepository = (*ProfileRepo)(nil)

func NewProfileRepository(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, name, COALESCE(headline, ''), COALESCE(bio, ''),
	       COALESCE(avatar_url, ''), COALESCE(location, ''), COALESCE(links, '{}'),
	       COALESCE(skills, '[]'), is_admin, COALESCE(api_token, ''), created_at, updated_at`

func (r *ProfileRepo) scanProfile(row *sql.Row) (*Profile, error) {
	var p Profile
	var links, skills string
	err := row.Scan(
		&p.ID, &p.Name, &p.Headline, &p.Bio, &p.AvatarURL, &p.Location,
		&links, &skills, &p.IsAdmin, &p.APIToken, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}

	if p.Links, err = decodeStringMap(links); err != nil {
		return nil, err
	}
	if p.Skills, err = decodeStrings(skills); err != nil {
		return nil, err
	}

	return &p, nil
}

// GetSiteProfile returns the site owner's profile
func (r *ProfileRepo) GetSiteProfile() (*Profile, error) {
	row := r.db.QueryRow(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE is_admin = 1
		ORDER BY created_at
		LIMIT 1
	`)

	profile, err := r.scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get site profile: %w", err)
	}
	return profile, nil
}

// GetByToken resolves the identity behind an API token
func (r *ProfileRepo) GetByToken(token string) (*Profile, error) {
	if token == "" {
		return nil, nil
	}

	row := r.db.QueryRow(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE api_token = ?
	`, token)

	profile, err := r.scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by token: %w", err)
	}
	return profile, nil
}

// GetAdminFlag reads the is_admin flag for a profile. A missing profile is
// an error so callers fail closed.
func (r *ProfileRepo) GetAdminFlag(id string) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRow("SELECT is_admin FROM profiles WHERE id = ?", id).Scan(&isAdmin)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("profile %s not found", id)
	}
	if err != nil {
		return false, fmt.Errorf("failed to read admin flag: %w", err)
	}
	return isAdmin, nil
}

// UpsertSiteProfile inserts or updates the site owner's profile
func (r *ProfileRepo) UpsertSiteProfile(profile Profile) (string, error) {
	links, err := encodeStringMap(profile.Links)
	if err != nil {
		return "", err
	}
	skills, err := encodeStrings(profile.Skills)
	if err != nil {
		return "", err
	}

	existing, err := r.GetSiteProfile()
	if err != nil {
		return "", fmt.Errorf("failed to check existing profile: %w", err)
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err = r.db.Exec(`
			UPDATE profiles
			SET name = ?, headline = ?, bio = ?, avatar_url = ?, location = ?,
			    links = ?, skills = ?, api_token = ?, updated_at = ?
			WHERE id = ?
		`, profile.Name, profile.Headline, profile.Bio, profile.AvatarURL, profile.Location,
			links, skills, profile.APIToken, now, existing.ID)
		if err != nil {
			return "", fmt.Errorf("failed to update profile: %w", err)
		}
		return existing.ID, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO profiles (id, name, headline, bio, avatar_url, location,
			links, skills, is_admin, api_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?)
	`, id, profile.Name, profile.Headline, profile.Bio, profile.AvatarURL, profile.Location,
		links, skills, profile.APIToken, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}

	return id, nil
}
