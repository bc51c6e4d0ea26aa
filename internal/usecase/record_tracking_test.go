package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailforge/campaigns/internal/infra/memory"
	"github.com/mailforge/campaigns/internal/usecase"
)

func TestRecordTrackingAccumulatesCounters(t *testing.T) {
	repo := memory.NewCampaignRepository()
	uc := usecase.NewRecordTrackingUseCase(repo)

	campaign := seedCampaign(t, repo, "a@x.com")
	ctx := context.Background()

	assert.Nil(t, uc.Execute(ctx, campaign.ID, usecase.EventOpen, 3))
	assert.Nil(t, uc.Execute(ctx, campaign.ID, usecase.EventOpen, 1))
	assert.Nil(t, uc.Execute(ctx, campaign.ID, usecase.EventClick, 2))
	assert.Nil(t, uc.Execute(ctx, campaign.ID, usecase.EventBounce, 1))
	assert.Nil(t, uc.Execute(ctx, campaign.ID, usecase.EventUnsubscribe, 1))

	stored, _ := repo.FindByID(ctx, campaign.ID)
	assert.Equal(t, 4, stored.Analytics.Opens)
	assert.Equal(t, 2, stored.Analytics.Clicks)
	assert.Equal(t, 1, stored.Analytics.Bounces)
	assert.Equal(t, 1, stored.Analytics.Unsubscribes)
}

func TestRecordTrackingDefaultsCountToOne(t *testing.T) {
	repo := memory.NewCampaignRepository()
	uc := usecase.NewRecordTrackingUseCase(repo)

	campaign := seedCampaign(t, repo, "a@x.com")

	assert.Nil(t, uc.Execute(context.Background(), campaign.ID, usecase.EventClick, 0))
	assert.Nil(t, uc.Execute(context.Background(), campaign.ID, usecase.EventClick, -5))

	stored, _ := repo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, 2, stored.Analytics.Clicks)
}

func TestRecordTrackingUnknownEvent(t *testing.T) {
	repo := memory.NewCampaignRepository()
	uc := usecase.NewRecordTrackingUseCase(repo)

	campaign := seedCampaign(t, repo, "a@x.com")

	err := uc.Execute(context.Background(), campaign.ID, "forwarded", 1)

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeUnknownEvent, derr.Code)
}

func TestRecordTrackingUnknownCampaign(t *testing.T) {
	repo := memory.NewCampaignRepository()
	uc := usecase.NewRecordTrackingUseCase(repo)

	err := uc.Execute(context.Background(), "missing", usecase.EventOpen, 1)

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeCampaignNotFound, derr.Code)
}
