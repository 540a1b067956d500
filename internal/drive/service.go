package drive

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Config struct {
	// Chip is the GPIO character device name, e.g. "gpiochip0".
	Chip string
	// PWMLine is the line offset driven with the PWM carrier.
	PWMLine int
	// MeasLine is the line offset watched for rising edges.
	MeasLine int
	// CarrierPeriod is the PWM carrier period (default 1ms = 1 kHz).
	CarrierPeriod time.Duration
	// PWMSteps is the duty-cycle resolution per carrier cycle.
	PWMSteps int
	// InitialDuty is the duty cycle in percent at startup.
	InitialDuty int
	// RTPriority, when > 0, is the SCHED_FIFO priority requested for
	// the generator thread. Zero leaves the default scheduling class.
	RTPriority int
}

type Snapshot struct {
	Running bool `json:"running"`

	Duty         int    `json:"duty"`
	PeriodMicros uint64 `json:"period_us"`
	TickErrors   uint64 `json:"tick_errors"`

	LastUpdateAt time.Time `json:"last_update_utc,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
}

// Service owns the drive lifecycle: it acquires the two GPIO lines,
// registers the edge watch, runs the generator loop, and tears
// everything down in an order that guarantees neither reactive path
// runs against freed state.
type Service struct {
	cfg Config

	state *State
	ctrl  *Control
	est   *EdgeEstimator
	gen   *Generator

	mu         sync.RWMutex
	running    bool
	lastError  string
	lastUpdate time.Time

	out   OutputLine
	watch EdgeWatch

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(cfg Config) *Service {
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}
	if cfg.CarrierPeriod <= 0 {
		cfg.CarrierPeriod = time.Millisecond
	}
	if cfg.PWMSteps <= 0 {
		cfg.PWMSteps = 100
	}

	state := NewState()
	state.SetDuty(cfg.InitialDuty)

	return &Service{
		cfg:    cfg,
		state:  state,
		ctrl:   NewControl(state),
		est:    NewEdgeEstimator(state),
		stopCh: make(chan struct{}),
	}
}

// Control returns the read-period / write-duty surface. Safe to use
// concurrently with a running service.
func (s *Service) Control() *Control {
	return s.ctrl
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	s.mu.RLock()
	snap := Snapshot{
		Running:      s.running,
		LastError:    s.lastError,
		LastUpdateAt: s.lastUpdate,
	}
	gen := s.gen
	s.mu.RUnlock()

	snap.Duty = s.state.Duty()
	snap.PeriodMicros = s.state.PeriodMicros()
	if gen != nil {
		snap.TickErrors = gen.TickErrors()
	}
	return snap
}

// setErr records an error and stamps the update time; the stamp marks
// actual state changes, not snapshot reads.
func (s *Service) setErr(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.lastUpdate = time.Now().UTC()
	s.mu.Unlock()
}

// Start acquires the output line, registers the edge watch and launches
// the generator. Any failure rolls back what was already acquired: the
// service never runs partially initialized.
func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("drive: service is nil")
	}

	out, err := openOutputFn(s.cfg.Chip, s.cfg.PWMLine)
	if err != nil {
		s.setErr(err.Error())
		return err
	}

	watch, err := watchEdgesFn(s.cfg.Chip, s.cfg.MeasLine, s.est.HandleEdge)
	if err != nil {
		_ = out.Close()
		s.setErr(err.Error())
		return err
	}

	gen := NewGenerator(s.state, out, s.cfg.CarrierPeriod, s.cfg.PWMSteps)

	s.mu.Lock()
	s.out = out
	s.watch = watch
	s.gen = gen
	s.running = true
	s.lastUpdate = time.Now().UTC()
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := lockTimerThread(s.cfg.RTPriority); err != nil {
			// Unprivileged runs still work, just without RT scheduling.
			s.setErr(fmt.Sprintf("drive: rt scheduling unavailable: %v", err))
		}
		gen.run(ctx, s.stopCh)
	}()

	// Release resources if the runtime context is canceled.
	go func() {
		<-ctx.Done()
		s.Close()
	}()
	return nil
}

// Close stops the service. The order matters: the edge watch is closed
// first so the handler cannot fire again, then the generator is stopped
// and waited for, then the output line is driven low and released.
// Idempotent.
func (s *Service) Close() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		s.mu.Lock()
		watch := s.watch
		out := s.out
		s.mu.Unlock()

		if watch != nil {
			_ = watch.Close()
		}

		close(s.stopCh)
		s.wg.Wait()

		if out != nil {
			_ = out.Close()
		}

		s.mu.Lock()
		s.running = false
		s.lastUpdate = time.Now().UTC()
		s.mu.Unlock()
	})
}
