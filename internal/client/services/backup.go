package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/client"
	"github.com/dmitrijs2005/epicquest/internal/client/models"
	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/logging"
)

// CollectionUsers is the cloud collection holding player documents.
const CollectionUsers = "users"

// cloudProfile is the document mirrored to the cloud. Credentials never
// leave the device.
type cloudProfile struct {
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	PlayerLevel int                `json:"playerLevel"`
	CreatedAt   time.Time          `json:"createdAt"`
	Cards       []*models.HeroCard `json:"cards"`
}

// BackupService mirrors the signed-in player's collection to the cloud
// and merges it back.
type BackupService struct {
	users  *AsyncUserService
	cloud  client.Cloud
	logger logging.Logger
}

func NewBackupService(users *AsyncUserService, cloud client.Cloud, logger logging.Logger) *BackupService {
	return &BackupService{users: users, cloud: cloud, logger: logger.With("module", "backup")}
}

// Backup uploads the current collection and returns how many cards were sent.
func (b *BackupService) Backup(ctx context.Context) (int, error) {
	uid := b.cloud.CurrentUser()
	if uid == "" {
		return 0, client.ErrNotSignedIn
	}

	u, err := b.users.CurrentUser(ctx).Await(ctx)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, common.ErrNoActiveSession
	}

	doc, err := toDocument(cloudProfile{
		Username:    u.Username,
		Email:       u.Email,
		PlayerLevel: u.PlayerLevel,
		CreatedAt:   u.CreatedAt,
		Cards:       u.Collection,
	})
	if err != nil {
		return 0, err
	}

	if err := b.cloud.SaveDocument(ctx, CollectionUsers, uid, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}

	b.logger.Info(ctx, "collection backed up", "user", u.Username, "cards", len(u.Collection))
	return len(u.Collection), nil
}

// Restore downloads the cloud copy and adds the cards missing locally.
// It returns how many cards were added.
func (b *BackupService) Restore(ctx context.Context) (int, error) {
	uid := b.cloud.CurrentUser()
	if uid == "" {
		return 0, client.ErrNotSignedIn
	}

	doc, err := b.cloud.GetDocument(ctx, CollectionUsers, uid)
	if err != nil {
		return 0, fmt.Errorf("get document: %w", err)
	}

	var p cloudProfile
	if err := fromDocument(doc, &p); err != nil {
		return 0, err
	}

	added, err := Do(b.users, func(users UserService) (int, error) {
		u := users.CurrentUser(ctx)
		if u == nil {
			return 0, common.ErrNoActiveSession
		}
		if p.Username != "" && p.Username != u.Username {
			return 0, fmt.Errorf("cloud copy belongs to %q", p.Username)
		}

		n := 0
		for _, c := range p.Cards {
			if c == nil || c.ID == "" {
				continue
			}
			if err := u.AddCard(c); err == nil {
				n++
			}
		}
		if n == 0 {
			return 0, nil
		}
		return n, users.UpdateUser(ctx, u)
	}).Await(ctx)
	if err != nil {
		return 0, err
	}

	b.logger.Info(ctx, "collection restored", "added", added)
	return added, nil
}

func toDocument(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return m, nil
}

func fromDocument(m map[string]any, v any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
