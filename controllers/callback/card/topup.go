package card

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/services"
)

type TopupRequest struct {
	UserID    uint   `json:"user_id" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	RefID     string `json:"ref_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

func signaturePayload(req TopupRequest) string {
	return fmt.Sprintf("%d:%d:%s", req.UserID, req.Amount, req.RefID)
}

func verifySignature(req TopupRequest) bool {
	secret := os.Getenv("CARD_CALLBACK_SECRET")
	if secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signaturePayload(req)))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(req.Signature))
}

// Topup consumes the prepaid-card provider's signed callback. RefID is
// the idempotency key: replays credit nothing.
func Topup(c *fiber.Ctx) error {
	var req TopupRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "INVALID_CALLBACK")
	}
	if !verifySignature(req) {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SIGNATURE")
	}

	trx, err := services.CreditTopup(req.UserID, req.Amount, "card", req.RefID)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Top-up credited", fiber.Map{
		"ref_id": trx.RefID,
		"amount": trx.Amount,
		"status": trx.Status,
	})
}
