package worker

// whatsapp_worker.go
// Processes reminder delivery jobs from QueueWhatsApp.
// Sends POST to the WhatsApp gateway sidecar and records the outcome on the
// mensagem row. Implements exponential backoff (max 3 retries) behind the
// gateway circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crmgas/internal/infra"
	"crmgas/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// WhatsAppJobPayload is the job envelope sent to QueueWhatsApp.
type WhatsAppJobPayload struct {
	MensagemID string `json:"mensagem_id"`
}

// mensagemCampos mirrors the jsonb payload the cron writes on each mensagem.
type mensagemCampos struct {
	PrimeiroNome string `json:"primeiro_nome"`
	Telefone     string `json:"telefone"`
	Dias         int    `json:"dias"`
	Template     string `json:"template"`
}

// WhatsAppWorker delivers queued mensagens through the gateway sidecar.
type WhatsAppWorker struct {
	client       *infra.WhatsAppClient
	lembreteRepo repository.LembreteRepository
	cb           *infra.CircuitBreaker
	rdb          *redis.Client
}

func NewWhatsAppWorker(
	client *infra.WhatsAppClient,
	lembreteRepo repository.LembreteRepository,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
) *WhatsAppWorker {
	return &WhatsAppWorker{client: client, lembreteRepo: lembreteRepo, cb: cb, rdb: rdb}
}

// Process handles a single delivery job:
//  1. Parse WhatsAppJobPayload from the job envelope
//  2. Fetch the mensagem; skip silently unless status is still "pendente"
//     (duplicate enqueues are harmless)
//  3. Call the gateway through the circuit breaker with exponential backoff
//  4. Mark the row enviada/erro; exhausted jobs go to the DLQ
func (w *WhatsAppWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload WhatsAppJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("whatsapp_worker: invalid payload")
		return
	}

	mensagemID, err := uuid.Parse(payload.MensagemID)
	if err != nil {
		log.Error().Str("mensagem_id", payload.MensagemID).Msg("whatsapp_worker: invalid mensagem_id")
		return
	}

	m, err := w.lembreteRepo.FindMensagemByID(ctx, mensagemID)
	if err != nil {
		log.Error().Err(err).Str("mensagem_id", payload.MensagemID).Msg("whatsapp_worker: mensagem not found")
		return
	}
	if m.Status != "pendente" {
		log.Debug().Str("mensagem_id", payload.MensagemID).Str("status", m.Status).
			Msg("whatsapp_worker: mensagem already processed — skipping")
		return
	}

	var campos mensagemCampos
	if err := json.Unmarshal([]byte(m.Payload), &campos); err != nil {
		_ = w.lembreteRepo.MarcarErro(ctx, mensagemID, fmt.Sprintf("payload inválido: %v", err))
		return
	}
	telefone := campos.Telefone
	if telefone == "" && m.Cliente != nil {
		telefone = m.Cliente.Telefone
	}
	if telefone == "" {
		_ = w.lembreteRepo.MarcarErro(ctx, mensagemID, "cliente sem telefone")
		return
	}

	gwPayload := infra.WhatsAppPayload{
		MensagemID: mensagemID.String(),
		Telefone:   telefone,
		Template:   campos.Template,
		Campos:     json.RawMessage(m.Payload),
	}

	var gwResp *infra.WhatsAppResponse
	sendErr := withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			resp, err := w.client.Enviar(ctx, gwPayload)
			if err != nil {
				log.Warn().Err(err).Int("attempt", attempt+1).
					Str("mensagem_id", payload.MensagemID).
					Msg("whatsapp_worker: gateway attempt failed, retrying")
				return err
			}
			gwResp = resp
			return nil
		})
	})

	if sendErr != nil {
		_ = w.lembreteRepo.MarcarErro(ctx, mensagemID, sendErr.Error())
		SendToDLQ(ctx, w.rdb, QueueWhatsApp, "whatsapp", raw,
			fmt.Sprintf("gateway failed after 3 retries: %v", sendErr), 3)
		return
	}

	if gwResp != nil && gwResp.Status != "enviada" {
		motivo := gwResp.Motivo
		if motivo == "" {
			motivo = "rejeitada pelo gateway"
		}
		_ = w.lembreteRepo.MarcarErro(ctx, mensagemID, motivo)
		log.Warn().Str("mensagem_id", payload.MensagemID).Str("motivo", motivo).
			Msg("whatsapp_worker: gateway rejected mensagem")
		return
	}

	if err := w.lembreteRepo.MarcarEnviada(ctx, mensagemID); err != nil {
		log.Error().Err(err).Str("mensagem_id", payload.MensagemID).
			Msg("whatsapp_worker: delivered but failed to update status")
		return
	}
	log.Info().Str("mensagem_id", payload.MensagemID).Msg("whatsapp_worker: mensagem delivered")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
