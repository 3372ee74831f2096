package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

const (
	shortCodeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	shortCodeAllowed   = shortCodeAlphabet + "_-"
	manageTokenBytes   = 16
	maxCollisionTries  = 5
	recentScansLimit   = 100
)

var shortCodeLengths = []int{8, 10, 12}

type trackedService struct {
	repo    ports.TrackedQRRepository
	baseURL string
}

// NewTrackedService builds the tracked-QR subsystem. Short codes are
// generated with a retry-with-escalating-length pattern, trying 8, then 10,
// then 12 characters as collisions exhaust the shorter lengths.
func NewTrackedService(repo ports.TrackedQRRepository, baseURL string) ports.TrackedService {
	return &trackedService{repo: repo, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *trackedService) Create(ctx context.Context, req domain.TrackedCreateRequest) (*domain.TrackedCreateResponse, error) {
	if err := validateTargetURL(req.TargetURL); err != nil {
		return nil, err
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now().UTC()) {
		return nil, domain.NewValidationError(domain.KindBadSize, "expires_at must be in the future")
	}

	shortCode := req.ShortCode
	if shortCode != "" {
		if err := validateShortCode(shortCode); err != nil {
			return nil, err
		}
		exists, err := s.repo.ExistsByShortCode(ctx, shortCode)
		if err != nil {
			return nil, domain.NewInternalError(err.Error())
		}
		if exists {
			return nil, domain.NewConflictError("short_code is already taken")
		}
	} else {
		generated, err := s.generateUniqueShortCode(ctx)
		if err != nil {
			return nil, err
		}
		shortCode = generated
	}

	manageToken, err := generateManageToken()
	if err != nil {
		return nil, domain.NewInternalError(err.Error())
	}

	tracked := &domain.TrackedQR{
		ID:          generateID(),
		ShortCode:   shortCode,
		TargetURL:   req.TargetURL,
		ManageToken: manageToken,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   req.ExpiresAt,
	}

	if err := s.repo.Create(ctx, tracked); err != nil {
		return nil, err
	}

	shortURL := fmt.Sprintf("%s/r/%s", s.baseURL, shortCode)
	gen, err := render(req.ToSpec(shortURL))
	if err != nil {
		return nil, err
	}

	return &domain.TrackedCreateResponse{
		GenerateResponse: *gen,
		ID:               tracked.ID,
		ManageToken:      tracked.ManageToken,
		ShortURL:         shortURL,
		ShortCode:        tracked.ShortCode,
		TargetURL:        tracked.TargetURL,
		ScanCount:        0,
		ExpiresAt:        tracked.ExpiresAt,
	}, nil
}

func (s *trackedService) Stats(ctx context.Context, id string) (*domain.TrackedStatsResponse, error) {
	tracked, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.RecentScans(ctx, id, recentScansLimit)
	if err != nil {
		return nil, domain.NewInternalError(err.Error())
	}

	views := make([]domain.ScanEventView, len(events))
	for i, e := range events {
		views[i] = domain.ScanEventView{
			ScannedAt: e.ScannedAt,
			UserAgent: e.UserAgent,
			Referrer:  e.Referrer,
			IP:        e.IP,
		}
	}

	return &domain.TrackedStatsResponse{
		ID:          tracked.ID,
		ShortCode:   tracked.ShortCode,
		TargetURL:   tracked.TargetURL,
		ScanCount:   tracked.ScanCount,
		ExpiresAt:   tracked.ExpiresAt,
		RecentScans: views,
	}, nil
}

func (s *trackedService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Authorize implements the capability guard: the presented token must
// match the tracked QR's manage_token under constant-time comparison so
// that no early byte mismatch leaks timing information.
func (s *trackedService) Authorize(ctx context.Context, id, presentedToken string) (*domain.TrackedQR, error) {
	tracked, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if presentedToken == "" || !constantTimeEquals(presentedToken, tracked.ManageToken) {
		return nil, domain.NewUnauthorizedError()
	}
	return tracked, nil
}

func (s *trackedService) Resolve(ctx context.Context, shortCode, userAgent, referrer, ip string) (string, error) {
	tracked, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return "", err
	}

	if tracked.IsExpired(time.Now().UTC()) {
		return "", domain.NewExpiredError()
	}

	event := &domain.ScanEvent{
		ScannedAt: time.Now().UTC(),
		UserAgent: truncate(userAgent, 512),
		Referrer:  truncate(referrer, 512),
		IP:        truncate(ip, 64),
	}
	if err := s.repo.RecordScan(ctx, tracked.ID, event); err != nil {
		return "", domain.NewInternalError(err.Error())
	}

	return tracked.TargetURL, nil
}

func (s *trackedService) generateUniqueShortCode(ctx context.Context) (string, error) {
	for _, length := range shortCodeLengths {
		for attempt := 0; attempt < maxCollisionTries; attempt++ {
			code, err := randomShortCode(length)
			if err != nil {
				return "", domain.NewInternalError(err.Error())
			}
			exists, err := s.repo.ExistsByShortCode(ctx, code)
			if err != nil {
				return "", domain.NewInternalError(err.Error())
			}
			if !exists {
				return code, nil
			}
		}
	}
	return "", domain.NewInternalError("could not allocate a unique short code")
}

func randomShortCode(length int) (string, error) {
	b := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(shortCodeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

func generateManageToken() (string, error) {
	b := make([]byte, manageTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func constantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func validateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewValidationError(domain.KindBadFormat, "target_url must be an absolute http(s) URL")
	}
	return nil
}

func validateShortCode(code string) error {
	if len(code) < 3 || len(code) > 32 {
		return domain.NewValidationError(domain.KindBadFormat, "short_code must be 3-32 characters")
	}
	for _, c := range code {
		if !strings.ContainsRune(shortCodeAllowed, c) {
			return domain.NewValidationError(domain.KindBadFormat, "short_code must match [A-Za-z0-9_-]")
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
