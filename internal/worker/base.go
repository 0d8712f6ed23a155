package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker - имя, consumer group и сигнал остановки, общие для воркеров стрима
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
}

func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop идемпотентен
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// Sleep ждёт d; false - воркер остановлен или ctx отменён раньше
func (w *BaseWorker) Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.stopChan:
		return false
	case <-ctx.Done():
		return false
	}
}
