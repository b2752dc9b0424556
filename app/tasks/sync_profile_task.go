package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/folio-dev/folio/app/cfg"
	"github.com/folio-dev/folio/app/database"
	"github.com/folio-dev/folio/app/profile"
)

type SyncProfileTask struct {
	Task
	siteProfile *profile.SiteProfile
	profileRepo database.ProfileRepository
}

func NewSyncProfileTask(siteProfile *profile.SiteProfile, profileRepo database.ProfileRepository) *SyncProfileTask {
	return &SyncProfileTask{
		Task:        NewTask(TaskTypeSyncProfile, siteProfile.Profile.Name),
		siteProfile: siteProfile,
		profileRepo: profileRepo,
	}
}

func (t *SyncProfileTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	info := t.siteProfile.Profile

	id, err := t.profileRepo.UpsertSiteProfile(database.Profile{
		Name:      info.Name,
		Headline:  info.Headline,
		Bio:       info.Bio,
		AvatarURL: info.AvatarURL,
		Location:  info.Location,
		Links:     info.Links,
		Skills:    info.Skills,
		APIToken:  cfg.Get().AdminToken,
	})
	if err != nil {
		slog.Error("Task failed", "type", "SyncProfile", "profile", info.Name, "error", err)
		return fmt.Errorf("failed to sync site profile to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncProfile",
		"profile", info.Name,
		"id", id,
		"duration", t.GetDuration())

	return nil
}
