package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"medreg/internal/domains/registration/repository"
	"medreg/shared/clock"
	"medreg/shared/constant"
)

// identifierGenerator derives the two human-facing identifiers from current
// transaction state. Neither derivation locks anything; uniqueness is
// enforced by constraints and the insert retry loop.
type identifierGenerator struct {
	repo  repository.Registration
	clock clock.Clock
}

func regNoPrefix(now time.Time) string {
	return constant.RegNoPrefix + now.Format(constant.RegNoDateLayout)
}

// nextRegNo issues the next registration number for today: prefix plus a
// zero-padded max+1 sequence scoped to the day.
func (g *identifierGenerator) nextRegNo(ctx context.Context, tx *sqlx.Tx) (string, error) {
	prefix := regNoPrefix(g.clock.Now())

	maxSeq, err := g.repo.MaxRegSeqByDateTx(ctx, tx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to derive registration number: %w", err)
	}

	return fmt.Sprintf("%s%0*d", prefix, constant.RegNoSeqDigits, maxSeq+1), nil
}

// nextQueueNo issues the next queue number within a schedule, starting at 1.
func (g *identifierGenerator) nextQueueNo(ctx context.Context, tx *sqlx.Tx, scheduleID string) (int, error) {
	maxQueueNo, err := g.repo.MaxQueueNoTx(ctx, tx, scheduleID)
	if err != nil {
		return 0, fmt.Errorf("failed to derive queue number: %w", err)
	}

	return maxQueueNo + 1, nil
}
