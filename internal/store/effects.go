package store

import "context"

// step is one request against the server.
type step struct {
	action string
	id     string
	run    func(ctx context.Context) error
}

// effect is a batch of steps queued by one action. Every step runs even
// after a failure; any failure triggers one reconciliation afterwards.
type effect struct {
	steps []step
}

// enqueue hands an effect to the worker without blocking.
func (s *Store) enqueue(steps ...step) {
	s.mu.Lock()
	s.queue = append(s.queue, effect{steps: steps})
	s.inflight++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until every queued effect, including any reconciliation it
// triggered, has finished.
func (s *Store) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.inflight > 0 {
		s.idle.Wait()
	}
}

// run is the effect worker. Effects execute one at a time in submission order.
func (s *Store) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.ctx.Done():
				return
			}
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.execute(next)

		s.mu.Lock()
		s.inflight--
		if s.inflight == 0 {
			s.idle.Broadcast()
		}
		s.mu.Unlock()
	}
}

func (s *Store) execute(e effect) {
	failed := false
	for _, st := range e.steps {
		if err := st.run(s.ctx); err != nil {
			s.logger.Error("sync failed", "action", st.action, "id", st.id, "err", err)
			failed = true
		}
	}
	if failed {
		s.reconcile()
	}
}

// reconcile discards local state in favour of the server's collections.
func (s *Store) reconcile() {
	s.logger.Warn("reconciling with server")
	if err := s.FetchData(s.ctx); err != nil {
		s.logger.Warn("reconciliation failed, keeping local state", "err", err)
	}
}
