package usecase

import (
	"context"
	"sync"
	"time"

	"buddy-backend/internal/progress/domain"

	"go.uber.org/zap"
)

// MilestoneJob is one milestone notification waiting to be delivered.
type MilestoneJob struct {
	UserID    string
	Milestone domain.Milestone
}

// Notifier delivers a milestone to the user.
type Notifier interface {
	NotifyMilestone(ctx context.Context, userID string, m domain.Milestone) error
}

// MilestoneWorker delivers milestone notifications off the request path.
// Delivery is best effort: failures are logged and never retried.
type MilestoneWorker struct {
	notifier    Notifier
	log         *zap.Logger
	jobQueue    chan MilestoneJob
	workerWg    sync.WaitGroup
	workerCount int
	timeout     time.Duration
	started     bool
	mu          sync.Mutex
}

func NewMilestoneWorker(notifier Notifier, workerCount, queueSize int, log *zap.Logger) *MilestoneWorker {
	if workerCount <= 0 {
		workerCount = 2
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &MilestoneWorker{
		notifier:    notifier,
		log:         log.Named("milestones"),
		jobQueue:    make(chan MilestoneJob, queueSize),
		workerCount: workerCount,
		timeout:     10 * time.Second,
	}
}

func (w *MilestoneWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	for i := 0; i < w.workerCount; i++ {
		w.workerWg.Add(1)
		go w.worker()
	}
	w.started = true
	w.log.Info("workers started", zap.Int("count", w.workerCount))
}

// Stop drains queued jobs and waits for the workers to exit.
func (w *MilestoneWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	close(w.jobQueue)
	w.workerWg.Wait()
	w.started = false
	w.log.Info("workers stopped")
}

// Enqueue hands a job to the workers without blocking. It returns false when
// the queue is full or the worker is not running.
func (w *MilestoneWorker) Enqueue(job MilestoneJob) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return false
	}
	select {
	case w.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (w *MilestoneWorker) worker() {
	defer w.workerWg.Done()
	for job := range w.jobQueue {
		w.process(job)
	}
}

func (w *MilestoneWorker) process(job MilestoneJob) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.notifier.NotifyMilestone(ctx, job.UserID, job.Milestone); err != nil {
		w.log.Warn("milestone notification failed",
			zap.String("user_id", job.UserID),
			zap.Int("streak", job.Milestone.Streak),
			zap.Error(err))
	}
}
