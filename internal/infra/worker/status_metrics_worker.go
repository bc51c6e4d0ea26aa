package worker

import (
	"context"
	"log"
	"time"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/http/middleware"
)

type CampaignLister interface {
	List(ctx context.Context) ([]*entity.Campaign, error)
}

// StatusMetricsWorker periodically gauges how many campaigns sit in each
// lifecycle status.
type StatusMetricsWorker struct {
	repo         CampaignLister
	tickInterval time.Duration
}

func NewStatusMetricsWorker(repo CampaignLister) *StatusMetricsWorker {
	return &StatusMetricsWorker{
		repo:         repo,
		tickInterval: 30 * time.Second,
	}
}

func (w *StatusMetricsWorker) Start(ctx context.Context) {
	log.Println("status metrics worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.gauge(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("status metrics worker stopped")
			return
		case <-ticker.C:
			w.gauge(ctx)
		}
	}
}

func (w *StatusMetricsWorker) gauge(ctx context.Context) {
	campaigns, err := w.repo.List(ctx)
	if err != nil {
		log.Printf("status metrics worker: list failed: %v", err)
		return
	}

	counts := make(map[entity.Status]int, len(entity.AllStatuses))
	for _, c := range campaigns {
		counts[c.Status]++
	}
	for _, status := range entity.AllStatuses {
		middleware.SetCampaignsByStatus(string(status), counts[status])
	}
}
