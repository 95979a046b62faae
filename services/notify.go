package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"casemart/logger"
	"casemart/models"
)

var notifyClient = &http.Client{Timeout: 10 * time.Second}

// NotifyOrder dispatches an order notification to the configured
// webhook after commit. Fire-and-forget: a delivery failure is logged
// and never rolls back the order.
func NotifyOrder(order *models.Order) {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	if url == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(map[string]any{
			"event":        "order.completed",
			"order_id":     order.ID,
			"user_id":      order.UserID,
			"total_amount": order.TotalAmount,
			"secret_code":  order.SecretCode,
			"items":        order.Items,
		})
		if err != nil {
			logger.Log.Warn("order notification payload", zap.Error(err))
			return
		}

		resp, err := notifyClient.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			logger.Log.Warn("order notification failed",
				zap.Uint("order_id", order.ID),
				zap.Error(err),
			)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			logger.Log.Warn("order notification rejected",
				zap.Uint("order_id", order.ID),
				zap.Int("status", resp.StatusCode),
			)
		}
	}()
}
