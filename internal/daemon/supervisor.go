package daemon

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Runner is one long-lived daemon component.
type Runner struct {
	Name string
	Run  func(ctx context.Context) error
}

// Supervisor runs all components until the context ends or one of them
// fails.
type Supervisor struct {
	Log *zap.Logger
}

// Run starts every runner and waits for termination.
func (s Supervisor) Run(ctx context.Context, runners []Runner) error {
	if len(runners) == 0 {
		return fmt.Errorf("no transports enabled")
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(runners))

	for _, runner := range runners {
		r := runner
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("starting component", zap.String("component", r.Name))
			if err := r.Run(ctx); err != nil {
				log.Error("component exited", zap.String("component", r.Name), zap.Error(err))
				errCh <- fmt.Errorf("%s: %w", r.Name, err)
				return
			}
			log.Info("component stopped", zap.String("component", r.Name))
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		return err
	}

	wg.Wait()
	return nil
}
