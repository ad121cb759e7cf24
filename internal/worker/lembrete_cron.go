package worker

// lembrete_cron.go
// Background goroutine that periodically materializes repurchase reminders
// (one mensagem per cliente+regra due today) and enqueues delivery jobs for
// every mensagem still pendente whose agendada_para has passed. The sweep
// doubles as recovery: jobs lost to a crash between INSERT and LPUSH get
// re-enqueued on the next tick, and the worker's status check keeps
// duplicate deliveries out.

import (
	"context"
	"time"

	"crmgas/internal/dto"
	"crmgas/internal/infra"
	"crmgas/internal/repository"

	"github.com/rs/zerolog/log"
)

const lembreteBatchSize = 200

// LembreteCronConfig holds all dependencies for the reminder goroutine.
type LembreteCronConfig struct {
	LembreteRepo repository.LembreteRepository
	Dispatcher   *Dispatcher
	CB           *infra.CircuitBreaker
	Interval     time.Duration
}

// StartLembreteCron launches a background goroutine that ticks every
// cfg.Interval. It respects the context for graceful shutdown.
func StartLembreteCron(ctx context.Context, cfg LembreteCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("lembrete_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lembrete_cron: shutting down")
				return
			case <-ticker.C:
				processTick(ctx, cfg)
			}
		}
	}()
}

func processTick(ctx context.Context, cfg LembreteCronConfig) {
	novos, err := cfg.LembreteRepo.GerarMensagensPendentes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lembrete_cron: failed to materialize mensagens")
		return
	}
	if len(novos) > 0 {
		log.Info().Int("count", len(novos)).Msg("lembrete_cron: new mensagens created")
	}

	// If the gateway CB is open, leave the rows pendente — the next tick
	// picks them up once the breaker recovers.
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("lembrete_cron: circuit breaker is open, skipping dispatch")
		return
	}

	pendentes, _, err := cfg.LembreteRepo.ListMensagens(ctx, dto.MensagemFilter{
		Status: "pendente",
		Page:   1,
		Limit:  lembreteBatchSize,
	})
	if err != nil {
		log.Error().Err(err).Msg("lembrete_cron: failed to query pendentes")
		return
	}

	now := time.Now()
	enqueued := 0
	for i := range pendentes {
		m := &pendentes[i]
		if m.AgendadaPara.After(now) {
			continue
		}
		job := WhatsAppJobPayload{MensagemID: m.ID.String()}
		if err := cfg.Dispatcher.EnqueueWhatsApp(ctx, job); err != nil {
			log.Error().Err(err).Str("mensagem_id", m.ID.String()).
				Msg("lembrete_cron: failed to enqueue")
			continue
		}
		enqueued++
	}
	if enqueued > 0 {
		log.Info().Int("count", enqueued).Msg("lembrete_cron: delivery jobs enqueued")
	}
}
