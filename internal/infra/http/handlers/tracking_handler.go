package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mailforge/campaigns/internal/infra/queue"
	"github.com/mailforge/campaigns/internal/usecase"
)

// TrackingHandler receives engagement callbacks (opens, clicks, bounces,
// unsubscribes) from the external tracking pipeline. With a broker
// configured events are queued for the worker; without one they are
// recorded directly.
type TrackingHandler struct {
	Producer queue.QueueProducerInterface
	Recorder *usecase.RecordTrackingUseCase
}

func NewTrackingHandler(producer queue.QueueProducerInterface, recorder *usecase.RecordTrackingUseCase) *TrackingHandler {
	return &TrackingHandler{
		Producer: producer,
		Recorder: recorder,
	}
}

func (h *TrackingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var event queue.TrackingPayload
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}
	if event.CampaignID == "" || event.Event == "" {
		http.Error(w, "campaign_id and event are required", http.StatusBadRequest)
		return
	}

	if h.Producer != nil {
		if err := h.Producer.PublishTracking(r.Context(), event); err != nil {
			log.Printf("tracking event not queued: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := h.Recorder.Execute(r.Context(), event.CampaignID, event.Event, event.Count); err != nil {
		// Tracking callbacks are lenient like any webhook: an unknown
		// campaign is logged, not bounced back at the sender.
		if usecase.IsDomainError(err) {
			log.Printf("tracking event dropped: %v", err)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
