package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/memory"
	"github.com/mailforge/campaigns/internal/usecase"
)

func seedCampaign(t *testing.T, repo *memory.CampaignRepository, emails ...string) *entity.Campaign {
	t.Helper()
	rows := make([]entity.LeadRow, 0, len(emails))
	for _, email := range emails {
		rows = append(rows, entity.LeadRow{Email: email})
	}
	campaign := entity.NewCampaign("Test", entity.IngestLeads(rows))
	err := repo.Create(context.Background(), campaign)
	assert.Nil(t, err)
	return campaign
}

func TestEnrichCampaignChainsIntoReview(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewEnrichCampaignUseCase(repo, gateway, nil)

	campaign := seedCampaign(t, repo, "a@x.com", "b@x.com", "c@x.com")

	gateway.On("EnrichLeads", mock.Anything, mock.Anything).Return([]entity.Enrichment{
		{Email: "a@x.com", Industry: "Tech", CompanySize: "11-50"},
		{Email: "b@x.com", Industry: "Fintech"},
	}, nil)
	gateway.On("GenerateDrafts", mock.Anything, mock.Anything).Return([]entity.GeneratedDraft{
		{LeadKey: "a@x.com", SubjectLine: "Hello A", Body: "..."},
		{LeadKey: "b@x.com", SubjectLine: "Hello B", Body: "..."},
		{LeadKey: "c@x.com", SubjectLine: "Hello C", Body: "..."},
	}, nil)

	result, err := uc.Execute(context.Background(), campaign.ID)

	assert.Nil(t, err)
	assert.Equal(t, entity.StatusReview, result.Status)
	assert.Len(t, result.Drafts, 3)
	for _, d := range result.Drafts {
		assert.False(t, d.Approved)
	}

	stored, _ := repo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, entity.StatusReview, stored.Status)
	assert.True(t, stored.Leads[0].Enriched)
	assert.True(t, stored.Leads[1].Enriched)
	assert.False(t, stored.Leads[2].Enriched)
	gateway.AssertExpectations(t)
}

func TestEnrichCampaignFailureRevertsToDraft(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewEnrichCampaignUseCase(repo, gateway, nil)

	campaign := seedCampaign(t, repo, "a@x.com")
	before, _ := repo.FindByID(context.Background(), campaign.ID)

	gateway.On("EnrichLeads", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := uc.Execute(context.Background(), campaign.ID)

	assert.NotNil(t, err)
	assert.True(t, usecase.IsTechnicalError(err))

	stored, _ := repo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.Equal(t, before.Leads, stored.Leads)
	gateway.AssertNotCalled(t, "GenerateDrafts", mock.Anything, mock.Anything)
}

func TestGenerationFailureLeavesCampaignInGenerating(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewEnrichCampaignUseCase(repo, gateway, nil)

	campaign := seedCampaign(t, repo, "a@x.com")

	gateway.On("EnrichLeads", mock.Anything, mock.Anything).Return([]entity.Enrichment{
		{Email: "a@x.com", Industry: "Tech"},
	}, nil).Once()
	gateway.On("GenerateDrafts", mock.Anything, mock.Anything).Return(nil, errors.New("model overloaded")).Once()

	_, err := uc.Execute(context.Background(), campaign.ID)

	assert.NotNil(t, err)
	assert.True(t, usecase.IsTechnicalError(err))

	// enrichment itself is kept; only the draft stage failed
	stored, _ := repo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, entity.StatusGenerating, stored.Status)
	assert.True(t, stored.Leads[0].Enriched)
	assert.Empty(t, stored.Drafts)

	// recovery path: run enrich again from generating
	gateway.On("EnrichLeads", mock.Anything, mock.Anything).Return([]entity.Enrichment{
		{Email: "a@x.com", Industry: "Tech"},
	}, nil).Once()
	gateway.On("GenerateDrafts", mock.Anything, mock.Anything).Return([]entity.GeneratedDraft{
		{LeadKey: "a@x.com", SubjectLine: "Hello"},
	}, nil).Once()

	result, err := uc.Execute(context.Background(), campaign.ID)
	assert.Nil(t, err)
	assert.Equal(t, entity.StatusReview, result.Status)
	assert.Len(t, result.Drafts, 1)
}

func TestEnrichCampaignWithoutLeads(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewEnrichCampaignUseCase(repo, gateway, nil)

	campaign := seedCampaign(t, repo)

	_, err := uc.Execute(context.Background(), campaign.ID)

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeNoLeads, derr.Code)
	gateway.AssertNotCalled(t, "EnrichLeads", mock.Anything, mock.Anything)
}

func TestEnrichCampaignNotFound(t *testing.T) {
	repo := memory.NewCampaignRepository()
	uc := usecase.NewEnrichCampaignUseCase(repo, new(MockAgentGateway), nil)

	_, err := uc.Execute(context.Background(), "missing")

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeCampaignNotFound, derr.Code)
}

func TestEnrichCampaignRejectedWhileInFlight(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	uc := usecase.NewEnrichCampaignUseCase(repo, gateway, nil)

	campaign := seedCampaign(t, repo, "a@x.com")

	_, err := repo.BeginTransition(context.Background(), campaign.ID, entity.StatusEnriching)
	assert.Nil(t, err)
	defer repo.EndTransition(context.Background(), campaign.ID)

	_, err = uc.Execute(context.Background(), campaign.ID)

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeTransitionInFlight, derr.Code)
	gateway.AssertNotCalled(t, "EnrichLeads", mock.Anything, mock.Anything)
}

func TestEnrichCampaignPublishesTransitions(t *testing.T) {
	repo := memory.NewCampaignRepository()
	gateway := new(MockAgentGateway)
	producer := new(MockQueueProducer)
	uc := usecase.NewEnrichCampaignUseCase(repo, gateway, producer)

	campaign := seedCampaign(t, repo, "a@x.com")

	gateway.On("EnrichLeads", mock.Anything, mock.Anything).Return([]entity.Enrichment{}, nil)
	gateway.On("GenerateDrafts", mock.Anything, mock.Anything).Return([]entity.GeneratedDraft{}, nil)
	producer.On("PublishTransition", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), campaign.ID)

	assert.Nil(t, err)
	// draft->enriching, enriching->generating, generating->review
	producer.AssertNumberOfCalls(t, "PublishTransition", 3)
}
