package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	logger     *zap.Logger
	done       chan struct{}
}

func NewScheduler(d *Dispatcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		dispatcher: d,
		interval:   interval,
		logger:     d.logger,
		done:       make(chan struct{}),
	}
}

// Start runs the dispatch loop until ctx is cancelled. Done is closed once
// the loop has returned.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("outbox scheduler stopped")
				return
			case <-ticker.C:
				n, err := s.dispatcher.DispatchOnce(ctx)
				if err != nil {
					s.logger.Error("outbox dispatch error", zap.Error(err))
				} else if n > 0 {
					s.logger.Info("outbox dispatch processed messages", zap.Int("count", n))
				}
			}
		}
	}()
}

func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}
