// Package scheduler ejecuta tareas periódicas del taller: conciliación del libro
// de stock contra el stock almacenado y limpieza de borradores vencidos.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Reconciler devuelve los repuestos con descuadre (inventory.LedgerUseCase).
type Reconciler interface {
	Reconcile(ctx context.Context) ([]entity.StockSummary, error)
}

// DraftPurger elimina borradores vencidos (solo el store en memoria lo necesita).
type DraftPurger interface {
	Purge() int
}

// Scheduler agenda las tareas sobre un cron estándar de 5 campos.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	purger     DraftPurger
	log        zerolog.Logger
	timeout    time.Duration
}

// New crea el scheduler; purger puede ser nil.
func New(reconciler Reconciler, purger DraftPurger, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		reconciler: reconciler,
		purger:     purger,
		log:        log,
		timeout:    2 * time.Minute,
	}
}

// Start agenda la conciliación con reconcileSpec (ej. "0 3 * * *") y arranca el cron.
func (s *Scheduler) Start(reconcileSpec string) error {
	if _, err := s.cron.AddFunc(reconcileSpec, s.RunReconcile); err != nil {
		return fmt.Errorf("scheduler: expresión cron %q: %w", reconcileSpec, err)
	}
	if s.purger != nil {
		if _, err := s.cron.AddFunc("@every 10m", s.RunPurge); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
	}
	s.log.Info().Str("reconcile", reconcileSpec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

// RunReconcile compara libro y stock y registra cada descuadre.
func (s *Scheduler) RunReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	drift, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("conciliación de stock fallida")
		return
	}
	if len(drift) == 0 {
		s.log.Info().Msg("conciliación de stock: sin descuadres")
		return
	}
	for _, d := range drift {
		s.log.Warn().
			Int64("part_id", d.PartID).
			Str("part", d.PartName).
			Str("reference", d.Reference).
			Int64("balance", d.Balance).
			Int64("stock", d.StockQuantity).
			Int64("drift", d.Drift()).
			Msg("descuadre entre libro y stock")
	}
}

// RunPurge limpia borradores vencidos.
func (s *Scheduler) RunPurge() {
	if n := s.purger.Purge(); n > 0 {
		s.log.Debug().Int("drafts", n).Msg("borradores vencidos eliminados")
	}
}
