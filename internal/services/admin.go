package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roomreserve/internal/domain"
)

type adminService struct {
	verifier    domain.PassphraseVerifier
	tokens      domain.TokenIssuer
	tokenExpiry time.Duration

	ledger  domain.CapacityLedger
	roster  domain.RosterStore
	log     domain.SubmissionLog
	gateway domain.SyncGateway
	sync    *SyncService

	// defaultLimits is what ResetAll restores the ledger to.
	defaultLimits map[domain.RoomSize]int
}

// NewAdminService creates the AdminService. defaultLimits is copied.
func NewAdminService(
	verifier domain.PassphraseVerifier,
	tokens domain.TokenIssuer,
	tokenExpiry time.Duration,
	ledger domain.CapacityLedger,
	roster domain.RosterStore,
	log domain.SubmissionLog,
	gateway domain.SyncGateway,
	sync *SyncService,
	defaultLimits map[domain.RoomSize]int,
) domain.AdminService {
	defaults := make(map[domain.RoomSize]int, len(defaultLimits))
	for size, limit := range defaultLimits {
		defaults[size] = limit
	}
	return &adminService{
		verifier:      verifier,
		tokens:        tokens,
		tokenExpiry:   tokenExpiry,
		ledger:        ledger,
		roster:        roster,
		log:           log,
		gateway:       gateway,
		sync:          sync,
		defaultLimits: defaults,
	}
}

func (s *adminService) Authenticate(passphrase string) (string, error) {
	if err := s.verifier.Verify(passphrase); err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue admin token: %w", err)
	}
	return token, nil
}

func (s *adminService) UpdateCapacity(ctx context.Context, size domain.RoomSize, limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0", domain.ErrInvalidInput)
	}
	if _, err := s.ledger.Get(size); err != nil {
		return err
	}
	if err := s.gateway.UpdateCapacity(ctx, size, limit); err != nil {
		return fmt.Errorf("update remote capacity: %w", err)
	}
	return s.ledger.Set(size, limit)
}

func (s *adminService) ListSubmissions() []*domain.Submission {
	return s.log.List()
}

func (s *adminService) DeleteSubmission(ctx context.Context, id string) error {
	// Resolve locally first so an unknown ID never reaches the remote.
	sub, err := s.log.Get(id)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteSubmission(ctx, id); err != nil {
		return fmt.Errorf("delete remote submission: %w", err)
	}
	if _, err := s.log.Remove(id); err != nil {
		return err
	}
	s.roster.MarkFree(sub.Names)
	return s.ledger.Increment(sub.RoomSize)
}

func (s *adminService) ResetAll(ctx context.Context) error {
	if err := s.gateway.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset remote data: %w", err)
	}
	s.log.Clear()
	s.roster.ClearUsed()
	s.ledger.ReplaceAll(s.defaultLimits)
	return nil
}

func (s *adminService) Refresh(ctx context.Context) error {
	return s.sync.Refresh(ctx)
}

func (s *adminService) ListNames() []domain.NameEntry {
	return s.roster.Names()
}

func (s *adminService) ReplaceRoster(ctx context.Context, names []string) error {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: duplicate name %q", domain.ErrInvalidInput, n)
		}
		seen[n] = struct{}{}
		cleaned = append(cleaned, n)
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("%w: roster cannot be empty", domain.ErrInvalidInput)
	}
	if err := s.gateway.ReplaceNames(ctx, cleaned); err != nil {
		return fmt.Errorf("replace remote roster: %w", err)
	}
	s.roster.ReplaceRoster(cleaned)
	return nil
}

func (s *adminService) ExportSubmissions(ctx context.Context) ([]byte, error) {
	if s.log.Len() == 0 {
		return nil, fmt.Errorf("%w: no submissions to export", domain.ErrNotFound)
	}
	data, err := s.gateway.ExportSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("export submissions: %w", err)
	}
	return data, nil
}
