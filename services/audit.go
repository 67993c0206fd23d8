package services

import (
	"context"

	"FoodOrder/audit"

	"go.uber.org/zap"
)

// recordAudit never fails the caller; a lost audit entry is only logged.
func recordAudit(ctx context.Context, rec audit.Recorder, log *zap.Logger, entry audit.Entry) {
	if err := rec.Record(ctx, entry); err != nil {
		log.Warn("audit record failed",
			zap.String("action", entry.Action),
			zap.Uint("entityID", entry.EntityID),
			zap.Error(err))
	}
}
