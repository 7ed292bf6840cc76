package services

import (
	"context"
	"fmt"

	"roomreserve/internal/domain"
)

// SyncService performs the initial load and admin refresh: it pulls the
// full remote snapshot and overwrites every local store with it. Remote
// wins entirely; there is no diffing.
type SyncService struct {
	gateway domain.SyncGateway
	ledger  domain.CapacityLedger
	roster  domain.RosterStore
	log     domain.SubmissionLog
}

func NewSyncService(
	gateway domain.SyncGateway,
	ledger domain.CapacityLedger,
	roster domain.RosterStore,
	log domain.SubmissionLog,
) *SyncService {
	return &SyncService{
		gateway: gateway,
		ledger:  ledger,
		roster:  roster,
		log:     log,
	}
}

func (s *SyncService) Refresh(ctx context.Context) error {
	snap, err := s.gateway.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load remote snapshot: %w", err)
	}
	s.ledger.ReplaceAll(snap.RoomLimits)
	s.roster.Replace(snap.AvailableNames, snap.UsedNames)
	s.log.Replace(snap.Submissions)
	return nil
}
