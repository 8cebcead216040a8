package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hireflow/ats-engine/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueApplication(applicationID uuid.UUID)
}

type worker struct {
	appRepo     repositories.ApplicationRepository
	processor   ApplicationProcessorService
	queue       chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	appRepo repositories.ApplicationRepository,
	processor ApplicationProcessorService,
	concurrency int,
) Worker {
	return &worker{
		appRepo:     appRepo,
		processor:   processor,
		queue:       make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting scoring worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processApplications(ctx, i+1)
	}

	// The poller catches applications that were submitted while the service
	// was down or whose enqueue was lost.
	w.wg.Add(1)
	go w.pollPendingApplications(ctx)

	log.Println("✅ Scoring worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping scoring worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Scoring worker stopped")
}

// EnqueueApplication implements Worker.
func (w *worker) EnqueueApplication(applicationID uuid.UUID) {
	select {
	case w.queue <- applicationID:
		log.Printf("📥 Application %s enqueued for scoring\n", applicationID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue application %s\n", applicationID)
	}
}

func (w *worker) processApplications(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing applications\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case applicationID := <-w.queue:
			log.Printf("👷 Worker #%d processing application %s\n", workerID, applicationID)
			if err := w.processor.ProcessApplication(ctx, applicationID); err != nil {
				log.Printf("❌ Worker #%d failed to process application %s: %v\n", workerID, applicationID, err)
			} else {
				log.Printf("✅ Worker #%d completed application %s\n", workerID, applicationID)
			}
		}
	}
}

func (w *worker) pollPendingApplications(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending applications poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending applications poller stopped")
			return
		case <-ticker.C:
			pending, err := w.appRepo.FindPendingScoring(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending applications: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending applications\n", len(pending))
			}

			for _, app := range pending {
				w.EnqueueApplication(app.ID)
			}
		}
	}
}
