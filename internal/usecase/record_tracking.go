package usecase

import (
	"context"

	"github.com/mailforge/campaigns/internal/entity"
)

// Engagement events the tracking pipeline understands.
const (
	EventOpen        = "open"
	EventClick       = "click"
	EventBounce      = "bounce"
	EventUnsubscribe = "unsubscribe"
)

// RecordTrackingUseCase stores engagement counts reported by external
// tracking. The counters are written here and nowhere else in this
// service; nothing is derived or computed from them.
type RecordTrackingUseCase struct {
	Repo CampaignRepositoryInterface
}

func NewRecordTrackingUseCase(repo CampaignRepositoryInterface) *RecordTrackingUseCase {
	return &RecordTrackingUseCase{Repo: repo}
}

func (uc *RecordTrackingUseCase) Execute(ctx context.Context, campaignID, event string, count int) error {
	if count <= 0 {
		count = 1
	}

	campaign, err := uc.Repo.FindByID(ctx, campaignID)
	if err != nil {
		return mapRegistryError(err)
	}
	if campaign.Analytics == nil {
		campaign.Analytics = &entity.Analytics{}
	}

	switch event {
	case EventOpen:
		campaign.Analytics.Opens += count
	case EventClick:
		campaign.Analytics.Clicks += count
	case EventBounce:
		campaign.Analytics.Bounces += count
	case EventUnsubscribe:
		campaign.Analytics.Unsubscribes += count
	default:
		return &DomainError{Code: CodeUnknownEvent, Message: "unknown tracking event: " + event}
	}

	if err := uc.Repo.Update(ctx, campaign); err != nil {
		return mapRegistryError(err)
	}
	return nil
}
