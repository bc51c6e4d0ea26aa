package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/queue"
)

type MockAgentGateway struct {
	mock.Mock
}

func (m *MockAgentGateway) EnrichLeads(ctx context.Context, leads []entity.Lead) ([]entity.Enrichment, error) {
	args := m.Called(ctx, leads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Enrichment), args.Error(1)
}

func (m *MockAgentGateway) GenerateDrafts(ctx context.Context, leads []entity.Lead) ([]entity.GeneratedDraft, error) {
	args := m.Called(ctx, leads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GeneratedDraft), args.Error(1)
}

func (m *MockAgentGateway) SendEmails(ctx context.Context, drafts []entity.EmailDraft) (*entity.DeliveryResults, error) {
	args := m.Called(ctx, drafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DeliveryResults), args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishTransition(ctx context.Context, payload queue.TransitionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCompletionReport(to, campaignName string, sent, failed int) error {
	args := m.Called(to, campaignName, sent, failed)
	return args.Error(0)
}
