package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper periodically renders signed terms whose document is missing, for example after
// the artifact store was unavailable at signing time.
type Sweeper struct {
	cron  *cron.Cron
	svc   *Service
	batch int
}

func NewSweeper(svc *Service, schedule string, batch int) (*Sweeper, error) {
	if batch <= 0 {
		batch = 50
	}
	s := &Sweeper{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.PrintfLogger(logrus.StandardLogger())),
			cron.SkipIfStillRunning(cron.PrintfLogger(logrus.StandardLogger())),
		)),
		svc:   svc,
		batch: batch,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) Start() { s.cron.Start() }

// Stop waits for a running pass to finish or ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Sweeper) run() {
	n, err := s.svc.Sweep(context.Background(), s.batch)
	entry := s.svc.log.WithField("rendered", n)
	if err != nil {
		entry.WithError(err).Warn("sweep finished with failures")
		return
	}
	if n > 0 {
		entry.Info("sweep finished")
	}
}
