package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/queue"
)

type CreateCampaignUseCase struct {
	Repo  CampaignRepositoryInterface
	Queue QueueProducerInterface
}

func NewCreateCampaignUseCase(repo CampaignRepositoryInterface, producer QueueProducerInterface) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{
		Repo:  repo,
		Queue: producer,
	}
}

// Execute ingests pasted CSV content into a fresh draft campaign and makes
// it the active one. Rows without an email are dropped silently; a campaign
// may legally start with zero leads (enrich will refuse it later).
func (uc *CreateCampaignUseCase) Execute(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	if strings.TrimSpace(input.CSV) == "" {
		return nil, &DomainError{Code: CodeEmptyCSV, Message: "csv content is required"}
	}

	rows := ParseLeadRows(input.CSV)
	leads := entity.IngestLeads(rows)

	campaign := entity.NewCampaign(input.Name, leads)
	if err := uc.Repo.Create(ctx, campaign); err != nil {
		return nil, &TechnicalError{Code: "REGISTRY_ERROR", Message: "failed to register campaign: " + err.Error()}
	}

	publishTransition(ctx, uc.Queue, campaign, "", entity.StatusDraft)

	return campaign, nil
}

// publishTransition is best effort: the event bus never fails a transition.
func publishTransition(ctx context.Context, producer QueueProducerInterface, c *entity.Campaign, from, to entity.Status) {
	if producer == nil {
		return
	}
	err := producer.PublishTransition(ctx, queue.TransitionPayload{
		CampaignID: c.ID,
		Name:       c.Name,
		From:       string(from),
		To:         string(to),
		Leads:      len(c.Leads),
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("transition event for campaign %s not published: %v", c.ID, err)
	}
}
