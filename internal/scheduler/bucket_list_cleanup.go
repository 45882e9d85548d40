package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRunTime returns the next time schedule fires after now.
func NextRunTime(schedule string, now time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(now), nil
}

// OrphanEntriesCleaner deletes bucket-list entries whose book is gone.
type OrphanEntriesCleaner interface {
	DeleteOrphanEntries(ctx context.Context) (int64, error)
}

// CleanupEnqueuer hands the sweep to the background task queue.
type CleanupEnqueuer interface {
	EnqueueBucketListCleanup(ctx context.Context) (string, error)
}

// BucketListCleanupScheduler periodically removes bucket-list entries left
// behind by deleted books. With an enqueuer the sweep runs on the task queue,
// otherwise it runs inline on the cron goroutine.
type BucketListCleanupScheduler struct {
	cleaner  OrphanEntriesCleaner
	enqueuer CleanupEnqueuer
	schedule string
	timeout  time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isCleaning bool
	lastResult *CleanupResult
}

// CleanupResult records the outcome of the most recent sweep.
type CleanupResult struct {
	At      time.Time
	Removed int64
	TaskID  string
	Err     error
}

// NewBucketListCleanupScheduler creates a scheduler. enqueuer may be nil.
func NewBucketListCleanupScheduler(cleaner OrphanEntriesCleaner, enqueuer CleanupEnqueuer, schedule string) *BucketListCleanupScheduler {
	return &BucketListCleanupScheduler{
		cleaner:  cleaner,
		enqueuer: enqueuer,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the job and starts cron. Cancelling ctx stops the scheduler.
func (s *BucketListCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Bucket list cleanup scheduler: started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running sweep and stops cron.
func (s *BucketListCleanupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	// Waiting happens outside the lock since runCleanup takes it too
	<-s.cron.Stop().Done()

	log.Printf("Bucket list cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *BucketListCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastResult returns the most recent sweep outcome, or nil before the first one.
func (s *BucketListCleanupScheduler) LastResult() *CleanupResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResult == nil {
		return nil
	}
	r := *s.lastResult
	return &r
}

// GetNextRunTime returns when the next sweep will occur
func (s *BucketListCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *BucketListCleanupScheduler) runCleanup() {
	s.mu.Lock()
	if s.isCleaning {
		s.mu.Unlock()
		log.Printf("Bucket list cleanup: skipped (previous run still in progress)")
		return
	}
	s.isCleaning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isCleaning = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if s.enqueuer != nil {
		taskID, err := s.enqueuer.EnqueueBucketListCleanup(ctx)
		if err != nil {
			log.Printf("Bucket list cleanup: failed to enqueue task: %v", err)
		} else {
			log.Printf("Bucket list cleanup: enqueued task %s", taskID)
		}
		s.record(CleanupResult{At: time.Now(), TaskID: taskID, Err: err})
		return
	}

	removed, err := s.cleaner.DeleteOrphanEntries(ctx)
	if err != nil {
		log.Printf("Bucket list cleanup: %v", err)
	} else {
		log.Printf("Bucket list cleanup: removed %d orphaned entries", removed)
	}
	s.record(CleanupResult{At: time.Now(), Removed: removed, Err: err})
}

func (s *BucketListCleanupScheduler) record(r CleanupResult) {
	s.mu.Lock()
	s.lastResult = &r
	s.mu.Unlock()
}
