package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/linebot"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/metrics"
)

// Config holds notification service configuration
type Config struct {
	AdminGroupID    string
	NotifyEmployees bool
	WorkerCount     int           // default: 2
	QueueSize       int           // default: 100
	Timeout         time.Duration // default: 10 seconds
}

// Message is one LINE text push.
type Message struct {
	To   string
	Text string
}

type Service interface {
	// NotifyAdmins queues a message for the admin group.
	NotifyAdmins(text string)

	// NotifyEmployee queues a message for one employee when employee pushes are enabled.
	NotifyEmployee(lineUserID string, text string)

	// SendToAdmins pushes synchronously and returns the LINE error.
	SendToAdmins(ctx context.Context, text string) error

	Stop()
}

type service struct {
	notifier linebot.Notifier
	metrics  *metrics.Metrics
	config   Config

	queue  chan Message
	wg     sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once

	// mu orders enqueues against Stop so nothing lands in the queue after the final drain.
	mu      sync.RWMutex
	stopped bool
}

// NewNotificationService starts the background push workers. Pushes never fail the caller;
// errors are logged and counted.
func NewNotificationService(notifier linebot.Notifier, m *metrics.Metrics, cfg Config) Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 100
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	s := &service{
		notifier: notifier,
		metrics:  m,
		config:   cfg,
		queue:    make(chan Message, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case msg := <-s.queue:
			s.deliver(msg, id)
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case msg := <-s.queue:
					s.deliver(msg, id)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(msg Message, worker int) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	if err := s.send(ctx, msg); err != nil {
		slog.Warn("line push failed", "worker", worker, "to", msg.To, "error", err)
	}
}

func (s *service) send(ctx context.Context, msg Message) error {
	err := s.notifier.PushText(ctx, msg.To, msg.Text)
	s.metrics.Notification(err)
	return err
}

func (s *service) enqueue(msg Message) {
	if msg.To == "" {
		return
	}

	s.mu.RLock()
	if !s.stopped {
		select {
		case s.queue <- msg:
			s.mu.RUnlock()
			return
		default:
		}
	}
	stopped := s.stopped
	s.mu.RUnlock()

	// Queue full or workers gone, push directly.
	if stopped {
		slog.Info("notification service stopped, pushing inline", "to", msg.To)
	}
	s.deliver(msg, -1)
}

// NotifyAdmins implements Service.
func (s *service) NotifyAdmins(text string) {
	s.enqueue(Message{To: s.config.AdminGroupID, Text: text})
}

// NotifyEmployee implements Service.
func (s *service) NotifyEmployee(lineUserID string, text string) {
	if !s.config.NotifyEmployees {
		return
	}
	s.enqueue(Message{To: lineUserID, Text: text})
}

// SendToAdmins implements Service.
func (s *service) SendToAdmins(ctx context.Context, text string) error {
	return s.send(ctx, Message{To: s.config.AdminGroupID, Text: text})
}

// Stop waits for queued pushes to go out.
func (s *service) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		close(s.stopCh)
		s.mu.Unlock()

		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
