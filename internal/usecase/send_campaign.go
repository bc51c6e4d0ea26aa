package usecase

import (
	"context"
	"log"

	"github.com/mailforge/campaigns/internal/entity"
)

// SendApprovedUseCase drives the sending stage. Only approved drafts go to
// the delivery agent; a failed call reverts to review with delivery results
// untouched so the operator can simply try again.
type SendApprovedUseCase struct {
	Repo    CampaignRepositoryInterface
	Gateway AgentGateway
	Queue   QueueProducerInterface

	EmailService    EmailService
	ReportRecipient string
}

func NewSendApprovedUseCase(
	repo CampaignRepositoryInterface,
	gateway AgentGateway,
	producer QueueProducerInterface,
	emailService EmailService,
	reportRecipient string,
) *SendApprovedUseCase {
	return &SendApprovedUseCase{
		Repo:            repo,
		Gateway:         gateway,
		Queue:           producer,
		EmailService:    emailService,
		ReportRecipient: reportRecipient,
	}
}

func (uc *SendApprovedUseCase) Execute(ctx context.Context, campaignID string) (*entity.Campaign, error) {
	current, err := uc.Repo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, mapRegistryError(err)
	}
	if len(current.ApprovedDrafts()) == 0 {
		return nil, &DomainError{Code: CodeNoApprovedDrafts, Message: "no approved drafts to send"}
	}

	campaign, err := uc.Repo.BeginTransition(ctx, campaignID, entity.StatusSending)
	if err != nil {
		return nil, mapRegistryError(err)
	}
	defer uc.Repo.EndTransition(ctx, campaignID)
	publishTransition(ctx, uc.Queue, campaign, current.Status, entity.StatusSending)

	// Re-read approvals from the fresh snapshot; a concurrent unapprove
	// between the precondition check and the lock could empty the set.
	approved := campaign.ApprovedDrafts()
	if len(approved) == 0 {
		campaign.Status = entity.StatusReview
		if uerr := uc.Repo.Update(ctx, campaign); uerr != nil {
			log.Printf("campaign %s snapshot not stored: %v", campaign.ID, uerr)
		}
		return nil, &DomainError{Code: CodeNoApprovedDrafts, Message: "no approved drafts to send"}
	}

	results, err := uc.Gateway.SendEmails(ctx, approved)
	if err != nil {
		// Delivery results stay exactly as they were; a second attempt
		// remains possible from review.
		campaign.Status = entity.StatusReview
		if uerr := uc.Repo.Update(ctx, campaign); uerr != nil {
			log.Printf("campaign %s snapshot not stored: %v", campaign.ID, uerr)
		}
		publishTransition(ctx, uc.Queue, campaign, entity.StatusSending, entity.StatusReview)
		return nil, &TechnicalError{Code: "DELIVERY_FAILED", Message: "delivery agent: " + err.Error()}
	}

	campaign.DeliveryResults = results
	campaign.Status = entity.StatusCompleted
	if err := uc.Repo.Update(ctx, campaign); err != nil {
		return nil, &TechnicalError{Code: "REGISTRY_ERROR", Message: "failed to store campaign: " + err.Error()}
	}
	publishTransition(ctx, uc.Queue, campaign, entity.StatusSending, entity.StatusCompleted)

	if uc.EmailService != nil && uc.ReportRecipient != "" {
		snapshot := *campaign
		go func() {
			err := uc.EmailService.SendCompletionReport(
				uc.ReportRecipient,
				snapshot.Name,
				len(snapshot.DeliveryResults.SentEmails),
				len(snapshot.DeliveryResults.FailedEmails),
			)
			if err != nil {
				log.Printf("completion report for campaign %s not sent: %v", snapshot.ID, err)
			}
		}()
	}

	return campaign, nil
}
