package jobs

import (
	"os"
	"time"

	"go.uber.org/zap"

	"casemart/logger"
	"casemart/services"
)

const defaultDepositTTL = 30 * time.Minute

// StartDepositExpiryScheduler cancels pending deposits that were never
// confirmed by the gateway.
func StartDepositExpiryScheduler() {
	ttl := defaultDepositTTL
	if v := os.Getenv("DEPOSIT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		} else {
			logger.Log.Warn("invalid DEPOSIT_TTL, using default", zap.String("value", v))
		}
	}

	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		for {
			<-ticker.C
			n, err := services.ExpireStaleDeposits(ttl)
			if err != nil {
				logger.Log.Error("expire stale deposits", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("expired stale deposits", zap.Int64("count", n))
			}
		}
	}()
}
