package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"depositdefender/config"
	"depositdefender/internal/database"
	"depositdefender/internal/repositories"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/datatypes"
)

// Share tokens carry 128 bits from a CSPRNG. The token is the only access
// control on a share, so it must not be guessable.
const SHARE_TOKEN_BYTES = 16

// SharingService turns a report into a time-limited, access-counted public
// artifact addressed by an opaque token.
type SharingService struct {
	shareRepo repositories.ShareRepository
	config    config.Config
	log       logger.Logger
}

func NewSharingService(shareRepo repositories.ShareRepository, config config.Config) *SharingService {
	return &SharingService{
		shareRepo: shareRepo,
		config:    config,
		log:       logger.New("sharingService"),
	}
}

// CreateShare persists a snapshot of the report under a fresh token and
// returns the share plus its public URL.
func (s *SharingService) CreateShare(ctx context.Context, report *Report) (*SharedReport, string, error) {
	log := s.log.Function("CreateShare")

	token, err := generateShareToken()
	if err != nil {
		return nil, "", log.Err("failed to generate share token", err)
	}

	now := time.Now().UTC()
	share := &SharedReport{
		ID:          token,
		ReportData:  datatypes.NewJSONType(*report),
		PDFData:     report.PDFData,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(s.config.ShareExpiryDays) * 24 * time.Hour),
		AccessCount: 0,
	}

	if err := s.shareRepo.Save(ctx, share); err != nil {
		return nil, "", err
	}

	log.Info("Created share", "shareID", token, "reportID", report.ID, "expiresAt", share.ExpiresAt)

	return share, s.ShareURL(token), nil
}

// ResolveShare looks a share up by token. Expired shares are invisible: they
// resolve as not-found, never have their counter bumped, and trigger an
// opportunistic sweep of everything else that has expired. A valid resolution
// increments the access counter before returning. The read-then-write
// increment is not atomic; a single page context drives all writes in
// practice, so the counter may only under-count under concurrent tabs.
func (s *SharingService) ResolveShare(ctx context.Context, shareID string) (*SharedReport, error) {
	log := s.log.Function("ResolveShare")

	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	if share.Expired(time.Now().UTC()) {
		if _, cleanupErr := s.CleanupExpired(ctx); cleanupErr != nil {
			log.Warn("cleanup sweep after expired resolve failed", "error", cleanupErr)
		}
		return nil, database.ErrNotFound
	}

	share.AccessCount++
	if err := s.shareRepo.Save(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// ShareInfo reports validity, expiry and access count without counting as an
// access.
type ShareInfo struct {
	Valid       bool      `json:"valid"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
	AccessCount int       `json:"accessCount,omitempty"`
}

func (s *SharingService) GetShareInfo(ctx context.Context, shareID string) (ShareInfo, error) {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ShareInfo{Valid: false}, nil
		}
		return ShareInfo{}, err
	}

	return ShareInfo{
		Valid:       !share.Expired(time.Now().UTC()),
		ExpiresAt:   share.ExpiresAt,
		AccessCount: share.AccessCount,
	}, nil
}

// Revoke backdates the expiry by one second, invalidating the share on its
// next resolution. A soft delete: the record stays until a cleanup sweep.
// Revoking an unknown token is a no-op.
func (s *SharingService) Revoke(ctx context.Context, shareID string) error {
	log := s.log.Function("Revoke")

	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		return err
	}

	share.ExpiresAt = time.Now().UTC().Add(-time.Second)
	if err := s.shareRepo.Save(ctx, share); err != nil {
		return err
	}

	log.Info("Revoked share", "shareID", shareID)
	return nil
}

// CleanupExpired sweeps every share whose expiry has passed. Invoked
// opportunistically from ResolveShare and on the hourly schedule; never
// required for correctness since expired shares already resolve as
// not-found.
func (s *SharingService) CleanupExpired(ctx context.Context) (int64, error) {
	log := s.log.Function("CleanupExpired")

	removed, err := s.shareRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		log.Info("Removed expired shares", "count", removed)
	}

	return removed, nil
}

func (s *SharingService) ShareURL(shareID string) string {
	return fmt.Sprintf("%s/shared/%s", strings.TrimRight(s.config.ShareBaseURL, "/"), shareID)
}

func generateShareToken() (string, error) {
	tokenBytes := make([]byte, SHARE_TOKEN_BYTES)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}
