package scheduler

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // zonas horarias disponibles aun sin tzdata en el sistema

	"github.com/jhoicas/storetrack-api/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Job tarea periódica. Los errores los registra la propia tarea; no hay reintentos.
type Job func(ctx context.Context)

// Scheduler ejecuta tareas con expresiones cron de 5 campos en una zona horaria fija.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// New crea el scheduler en la zona horaria indicada (nombre IANA, p. ej. "Asia/Tehran").
func New(timezone string, log *logger.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("zona horaria %q: %w", timezone, err)
	}
	log = log.Component("scheduler")
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log,
	}, nil
}

// Register agenda job con la expresión cron indicada.
func (s *Scheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.log.Info().Str("job", name).Msg("inicio")
		job(context.Background())
		s.log.Info().Str("job", name).Dur("duration", time.Since(start)).Msg("fin")
	})
	if err != nil {
		return fmt.Errorf("agendar %s (%q): %w", name, spec, err)
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("tarea agendada")
	return nil
}

// Len cantidad de tareas agendadas.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el scheduler y espera a que terminen las tareas en curso o venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("tareas en curso no terminaron antes del cierre")
	}
}

// cronLogger adapta el logger de la app a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
