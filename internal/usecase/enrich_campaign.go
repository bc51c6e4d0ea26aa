package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/mailforge/campaigns/internal/entity"
)

// EnrichCampaignUseCase drives the enriching and generating stages. A
// successful enrichment always chains straight into draft generation; no
// separate user action sits between the two.
type EnrichCampaignUseCase struct {
	Repo    CampaignRepositoryInterface
	Gateway AgentGateway
	Queue   QueueProducerInterface
}

func NewEnrichCampaignUseCase(repo CampaignRepositoryInterface, gateway AgentGateway, producer QueueProducerInterface) *EnrichCampaignUseCase {
	return &EnrichCampaignUseCase{
		Repo:    repo,
		Gateway: gateway,
		Queue:   producer,
	}
}

func (uc *EnrichCampaignUseCase) Execute(ctx context.Context, campaignID string) (*entity.Campaign, error) {
	current, err := uc.Repo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, mapRegistryError(err)
	}
	if len(current.Leads) == 0 {
		return nil, &DomainError{Code: CodeNoLeads, Message: "campaign has no leads to enrich"}
	}

	campaign, err := uc.Repo.BeginTransition(ctx, campaignID, entity.StatusEnriching)
	if err != nil {
		return nil, mapRegistryError(err)
	}
	defer uc.Repo.EndTransition(ctx, campaignID)
	publishTransition(ctx, uc.Queue, campaign, current.Status, entity.StatusEnriching)

	results, err := uc.Gateway.EnrichLeads(ctx, campaign.Leads)
	if err != nil {
		// All-or-nothing: nothing was merged, so reverting the status puts
		// the campaign back exactly where it was.
		campaign.Status = entity.StatusDraft
		uc.store(ctx, campaign)
		publishTransition(ctx, uc.Queue, campaign, entity.StatusEnriching, entity.StatusDraft)
		return nil, &TechnicalError{Code: "ENRICHMENT_FAILED", Message: "enrichment agent: " + err.Error()}
	}

	campaign.Leads = entity.MergeEnrichment(campaign.Leads, results)
	campaign.Status = entity.StatusGenerating
	if err := uc.store(ctx, campaign); err != nil {
		return nil, err
	}
	publishTransition(ctx, uc.Queue, campaign, entity.StatusEnriching, entity.StatusGenerating)

	return uc.generateDrafts(ctx, campaign)
}

// generateDrafts is only ever reached through a successful enrichment.
func (uc *EnrichCampaignUseCase) generateDrafts(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	results, err := uc.Gateway.GenerateDrafts(ctx, campaign.Leads)
	if err != nil {
		// Unlike enrichment there is no rollback here: the campaign stays
		// in generating with whatever drafts it had. Re-running enrich is
		// the recovery path.
		return nil, &TechnicalError{Code: "GENERATION_FAILED", Message: "draft agent: " + err.Error()}
	}

	// Full replace: previous drafts, approvals included, are discarded.
	campaign.Drafts = entity.BuildDrafts(campaign.Leads, results)
	campaign.Status = entity.StatusReview
	if err := uc.store(ctx, campaign); err != nil {
		return nil, err
	}
	publishTransition(ctx, uc.Queue, campaign, entity.StatusGenerating, entity.StatusReview)

	return campaign, nil
}

func (uc *EnrichCampaignUseCase) store(ctx context.Context, campaign *entity.Campaign) error {
	if err := uc.Repo.Update(ctx, campaign); err != nil {
		log.Printf("campaign %s snapshot not stored: %v", campaign.ID, err)
		return &TechnicalError{Code: "REGISTRY_ERROR", Message: "failed to store campaign: " + err.Error()}
	}
	return nil
}

func mapRegistryError(err error) error {
	switch {
	case errors.Is(err, entity.ErrCampaignNotFound):
		return &DomainError{Code: CodeCampaignNotFound, Message: "campaign not found"}
	case errors.Is(err, entity.ErrTransitionInFlight):
		return &DomainError{Code: CodeTransitionInFlight, Message: "another transition is in flight for this campaign"}
	case errors.Is(err, entity.ErrInvalidTransition):
		return &DomainError{Code: CodeInvalidTransition, Message: "campaign status does not allow this transition"}
	case errors.Is(err, entity.ErrNoActiveCampaign):
		return &DomainError{Code: CodeCampaignNotFound, Message: "no active campaign"}
	default:
		return &TechnicalError{Code: "REGISTRY_ERROR", Message: err.Error()}
	}
}
