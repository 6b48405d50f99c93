package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibos: renders the PDF ticket for a
// committed sale and emails it to the customer. SMTP calls go through the
// circuit breaker so a downed relay doesn't stall the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quepia/sistema-lafuga/internal/infra"
	"github.com/quepia/sistema-lafuga/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxReciboRetries = 3

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	VentaID      uint   `json:"venta_id"`
	ClienteEmail string `json:"cliente_email"`
	Attempts     int    `json:"attempts"`
}

// ReciboWorker renders and emails PDF receipts for committed sales.
type ReciboWorker struct {
	ventas      repository.VentaRepository
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	rdb         *redis.Client
	dlq         *DLQ
	storagePath string
}

func NewReciboWorker(
	ventas repository.VentaRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	storagePath string,
) *ReciboWorker {
	return &ReciboWorker{
		ventas:      ventas,
		mailer:      mailer,
		cb:          cb,
		rdb:         rdb,
		dlq:         NewDLQ(rdb),
		storagePath: storagePath,
	}
}

// Process renders the receipt PDF and sends it. On SMTP failure the job is
// re-enqueued with an incremented attempt counter; after MaxReciboRetries it
// lands in the DLQ for manual inspection. The sale itself is already
// committed; nothing here affects it.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}
	if payload.ClienteEmail == "" {
		log.Warn().Uint("venta_id", payload.VentaID).Msg("recibo_worker: empty cliente_email, skipping")
		return
	}

	venta, err := w.ventas.FindByID(ctx, payload.VentaID)
	if err != nil {
		// Not retryable: the sale either never existed or storage is down in
		// a way a later BRPOP won't fix any better than the DLQ drain will.
		w.fail(ctx, payload, fmt.Sprintf("fetch venta: %v", err))
		return
	}

	pdfPath, err := infra.GenerateReciboPDF(venta, w.storagePath)
	if err != nil {
		w.fail(ctx, payload, fmt.Sprintf("render pdf: %v", err))
		return
	}

	subject := fmt.Sprintf("Recibo de compra #%d - LA FUGA", venta.ID)
	body := fmt.Sprintf("Hola %s,\n\nAdjuntamos el recibo de tu compra #%d.\n\nGracias por tu visita.\nLA FUGA",
		venta.ClienteNombre, venta.ID)

	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendRecibo(payload.ClienteEmail, subject, body, pdfPath)
	})
	if sendErr != nil {
		payload.Attempts++
		if payload.Attempts >= MaxReciboRetries {
			data, _ := json.Marshal(payload)
			w.dlq.Send(ctx, QueueRecibos, "recibo", data,
				fmt.Sprintf("max retries (%d) exceeded: %v", MaxReciboRetries, sendErr),
				payload.Attempts)
			return
		}
		log.Warn().
			Uint("venta_id", payload.VentaID).
			Int("attempts", payload.Attempts).
			Err(sendErr).
			Msg("recibo_worker: send failed, re-enqueueing")
		if err := w.requeue(ctx, payload); err != nil {
			log.Error().Err(err).Uint("venta_id", payload.VentaID).Msg("recibo_worker: re-enqueue failed")
		}
		return
	}

	log.Info().
		Uint("venta_id", venta.ID).
		Str("to", payload.ClienteEmail).
		Msg("recibo_worker: recibo sent")
}

func (w *ReciboWorker) fail(ctx context.Context, payload ReciboJobPayload, reason string) {
	log.Error().Uint("venta_id", payload.VentaID).Str("reason", reason).Msg("recibo_worker: job failed")
	data, _ := json.Marshal(payload)
	w.dlq.Send(ctx, QueueRecibos, "recibo", data, reason, payload.Attempts)
}

func (w *ReciboWorker) requeue(ctx context.Context, payload ReciboJobPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: "recibo", Payload: data})
	if err != nil {
		return err
	}
	return w.rdb.LPush(ctx, QueueRecibos, encoded).Err()
}
