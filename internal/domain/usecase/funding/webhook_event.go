package funding

import (
	"encoding/json"
)

// parseWebhookEvent decodes a verified webhook payload. Verification always
// happens first, over the raw bytes.
func parseWebhookEvent(payload []byte) (*webhookEvent, error) {
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
