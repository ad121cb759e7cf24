package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsAppPayload is sent by the delivery worker to the WhatsApp gateway
// sidecar. The gateway owns template rendering and session management; the
// backend only ships the raw fields.
type WhatsAppPayload struct {
	MensagemID string          `json:"mensagem_id"`
	Telefone   string          `json:"telefone"`
	Template   string          `json:"template"`
	Campos     json.RawMessage `json:"campos"`
}

// WhatsAppResponse is returned by the gateway after attempting delivery.
type WhatsAppResponse struct {
	Status string `json:"status"` // "enviada" | "rejeitada"
	Motivo string `json:"motivo,omitempty"`
}

// WhatsAppClient is an HTTP client that delegates message delivery to the
// gateway sidecar. The decoupling isolates gateway failures from the core.
type WhatsAppClient struct {
	gatewayURL string
	httpClient *http.Client
}

func NewWhatsAppClient(gatewayURL string) *WhatsAppClient {
	return &WhatsAppClient{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enviar sends a POST to the gateway and returns the delivery result.
func (c *WhatsAppClient) Enviar(ctx context.Context, payload WhatsAppPayload) (*WhatsAppResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/enviar", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp: gateway returned %d", resp.StatusCode)
	}

	var result WhatsAppResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("whatsapp: decode response: %w", err)
	}
	return &result, nil
}
