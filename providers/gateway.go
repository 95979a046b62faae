package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var client = &http.Client{Timeout: 15 * time.Second}

// PaymentURL asks the configured payment gateway for a checkout link
// bound to the deposit's order code. Without a configured gateway it
// hands back a local stub path so the flow stays testable offline.
func PaymentURL(orderCode string, amount int64) (string, error) {
	base := os.Getenv("GATEWAY_URL")
	if base == "" {
		return "/pay/" + orderCode, nil
	}

	payload, err := json.Marshal(map[string]any{
		"order_code": orderCode,
		"amount":     amount,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, base+"/v1/links", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("GATEWAY_API_KEY"))

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		PaymentURL string `json:"payment_url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.PaymentURL == "" {
		return "", fmt.Errorf("gateway response missing payment_url")
	}
	return out.PaymentURL, nil
}
