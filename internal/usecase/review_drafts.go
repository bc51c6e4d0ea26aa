package usecase

import (
	"context"

	"github.com/mailforge/campaigns/internal/entity"
)

// ReviewDraftsUseCase covers the human side of the review stage: editing
// drafts, toggling approval, and bulk-approving a selection. None of these
// touch a draft's leadId, and none are accepted while a transition is in
// flight.
type ReviewDraftsUseCase struct {
	Repo CampaignRepositoryInterface
}

func NewReviewDraftsUseCase(repo CampaignRepositoryInterface) *ReviewDraftsUseCase {
	return &ReviewDraftsUseCase{Repo: repo}
}

// BulkApprove sets approved on every draft whose lead is in the selection.
// Drafts outside the selection are untouched; an approval is never revoked
// here.
func (uc *ReviewDraftsUseCase) BulkApprove(ctx context.Context, campaignID string, leadIDs []string) (*entity.Campaign, error) {
	campaign, err := uc.load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(leadIDs))
	for _, id := range leadIDs {
		selected[id] = true
	}

	for i := range campaign.Drafts {
		if selected[campaign.Drafts[i].LeadID] {
			campaign.Drafts[i].Approved = true
		}
	}

	return uc.save(ctx, campaign)
}

// UpdateDraft replaces the editable content of the lead's draft. Approval
// state is toggled independently and is left alone here.
func (uc *ReviewDraftsUseCase) UpdateDraft(ctx context.Context, campaignID, leadID string, input UpdateDraftInput) (*entity.Campaign, error) {
	campaign, err := uc.load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range campaign.Drafts {
		if campaign.Drafts[i].LeadID == leadID {
			campaign.Drafts[i].SubjectLine = input.SubjectLine
			campaign.Drafts[i].Body = input.Body
			campaign.Drafts[i].PersonalizationNotes = input.PersonalizationNotes
			found = true
			break
		}
	}
	if !found {
		return nil, &DomainError{Code: CodeDraftNotFound, Message: "no draft for lead " + leadID}
	}

	return uc.save(ctx, campaign)
}

// ToggleApproval flips the approved flag of the lead's draft.
func (uc *ReviewDraftsUseCase) ToggleApproval(ctx context.Context, campaignID, leadID string) (*entity.Campaign, error) {
	campaign, err := uc.load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range campaign.Drafts {
		if campaign.Drafts[i].LeadID == leadID {
			campaign.Drafts[i].Approved = !campaign.Drafts[i].Approved
			found = true
			break
		}
	}
	if !found {
		return nil, &DomainError{Code: CodeDraftNotFound, Message: "no draft for lead " + leadID}
	}

	return uc.save(ctx, campaign)
}

func (uc *ReviewDraftsUseCase) load(ctx context.Context, campaignID string) (*entity.Campaign, error) {
	campaign, err := uc.Repo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, mapRegistryError(err)
	}
	if campaign.Status.Transient() {
		return nil, &DomainError{Code: CodeTransitionInFlight, Message: "campaign is mid-transition"}
	}
	return campaign, nil
}

func (uc *ReviewDraftsUseCase) save(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if err := uc.Repo.Update(ctx, campaign); err != nil {
		return nil, mapRegistryError(err)
	}
	return campaign, nil
}
