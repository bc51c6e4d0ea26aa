package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/memory"
	"github.com/mailforge/campaigns/internal/usecase"
)

func seedReviewCampaign(t *testing.T, repo *memory.CampaignRepository) *entity.Campaign {
	t.Helper()
	campaign := seedCampaign(t, repo, "a@x.com", "b@x.com", "c@x.com")
	campaign.Status = entity.StatusReview
	campaign.Drafts = []entity.EmailDraft{
		{LeadID: campaign.Leads[0].ID, SubjectLine: "Hello A", Approved: true},
		{LeadID: campaign.Leads[1].ID, SubjectLine: "Hello B"},
		{LeadID: campaign.Leads[2].ID, SubjectLine: "Hello C", Approved: true},
	}
	err := repo.Update(context.Background(), campaign)
	assert.Nil(t, err)
	return campaign
}

func TestSendApprovedSendsOnlyApprovedDrafts(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewSendApprovedUseCase(repo, gateway, nil, nil, "")

	campaign := seedReviewCampaign(t, repo)

	results := &entity.DeliveryResults{
		SentEmails:   []string{"a@x.com"},
		FailedEmails: []string{"c@x.com"},
	}
	gateway.On("SendEmails", mock.Anything, mock.MatchedBy(func(drafts []entity.EmailDraft) bool {
		if len(drafts) != 2 {
			return false
		}
		for _, d := range drafts {
			if !d.Approved {
				return false
			}
		}
		return true
	})).Return(results, nil)

	result, err := uc.Execute(context.Background(), campaign.ID)

	assert.Nil(t, err)
	assert.Equal(t, entity.StatusCompleted, result.Status)
	assert.Equal(t, results, result.DeliveryResults)

	stored, _ := repo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, entity.StatusCompleted, stored.Status)
	assert.Equal(t, []string{"a@x.com"}, stored.DeliveryResults.SentEmails)
	gateway.AssertExpectations(t)
}

func TestSendApprovedFailureRevertsToReview(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewSendApprovedUseCase(repo, gateway, nil, nil, "")

	campaign := seedReviewCampaign(t, repo)

	gateway.On("SendEmails", mock.Anything, mock.Anything).Return(nil, errors.New("gmail unavailable"))

	_, err := uc.Execute(context.Background(), campaign.ID)

	assert.NotNil(t, err)
	assert.True(t, usecase.IsTechnicalError(err))

	stored, _ := repo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, entity.StatusReview, stored.Status)
	assert.Nil(t, stored.DeliveryResults)
	// drafts and approvals survive the failed attempt
	assert.Len(t, stored.ApprovedDrafts(), 2)
}

func TestSendApprovedRequiresApprovedDrafts(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewSendApprovedUseCase(repo, gateway, nil, nil, "")

	campaign := seedCampaign(t, repo, "a@x.com")
	campaign.Status = entity.StatusReview
	campaign.Drafts = []entity.EmailDraft{{LeadID: campaign.Leads[0].ID}}
	assert.Nil(t, repo.Update(context.Background(), campaign))

	_, err := uc.Execute(context.Background(), campaign.ID)

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeNoApprovedDrafts, derr.Code)
	gateway.AssertNotCalled(t, "SendEmails", mock.Anything, mock.Anything)
}

func TestSendApprovedRejectedOutsideReview(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewSendApprovedUseCase(repo, gateway, nil, nil, "")

	campaign := seedCampaign(t, repo, "a@x.com")
	campaign.Drafts = []entity.EmailDraft{{LeadID: campaign.Leads[0].ID, Approved: true}}
	assert.Nil(t, repo.Update(context.Background(), campaign))

	// still in draft, never went through review
	_, err := uc.Execute(context.Background(), campaign.ID)

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeInvalidTransition, derr.Code)
	gateway.AssertNotCalled(t, "SendEmails", mock.Anything, mock.Anything)
}

func TestSendApprovedDeliversCompletionReport(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	emailService := new(MockEmailService)
	uc := usecase.NewSendApprovedUseCase(repo, gateway, nil, emailService, "ops@mailforge.dev")

	campaign := seedReviewCampaign(t, repo)

	gateway.On("SendEmails", mock.Anything, mock.Anything).Return(&entity.DeliveryResults{
		SentEmails:   []string{"a@x.com", "c@x.com"},
		FailedEmails: []string{},
	}, nil)

	reported := make(chan struct{})
	emailService.On("SendCompletionReport", "ops@mailforge.dev", campaign.Name, 2, 0).
		Return(nil).
		Run(func(args mock.Arguments) { close(reported) })

	_, err := uc.Execute(context.Background(), campaign.ID)
	assert.Nil(t, err)

	select {
	case <-reported:
	case <-time.After(2 * time.Second):
		t.Fatal("completion report was never sent")
	}
	emailService.AssertExpectations(t)
}
