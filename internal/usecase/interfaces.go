package usecase

import (
	"context"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/queue"
)

// AgentGateway is the single call contract shared by the three external
// services. Implementations must treat a missing result key (or an empty
// list) as zero results; only network errors, non-2xx responses and
// malformed top-level JSON are reported as errors.
type AgentGateway interface {
	EnrichLeads(ctx context.Context, leads []entity.Lead) ([]entity.Enrichment, error)
	GenerateDrafts(ctx context.Context, leads []entity.Lead) ([]entity.GeneratedDraft, error)
	SendEmails(ctx context.Context, drafts []entity.EmailDraft) (*entity.DeliveryResults, error)
}

// CampaignRepositoryInterface is the campaign registry. Reads return deep
// copies; writes replace whole snapshots so a reader never observes a
// half-updated campaign.
type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Campaign) error
	FindByID(ctx context.Context, id string) (*entity.Campaign, error)
	Update(ctx context.Context, c *entity.Campaign) error
	List(ctx context.Context) ([]*entity.Campaign, error)
	SetActive(ctx context.Context, id string) error
	Active(ctx context.Context) (*entity.Campaign, error)

	// BeginTransition atomically moves the campaign into the transient
	// status to, failing with entity.ErrTransitionInFlight when another
	// transition holds the campaign, or entity.ErrInvalidTransition when
	// the current status is not a legal source. EndTransition releases
	// the per-campaign lock once the external call has settled.
	BeginTransition(ctx context.Context, id string, to entity.Status) (*entity.Campaign, error)
	EndTransition(ctx context.Context, id string)
}

// QueueProducerInterface publishes campaign lifecycle events. Publishing is
// best effort: a broker failure never fails the transition itself.
type QueueProducerInterface interface {
	PublishTransition(ctx context.Context, payload queue.TransitionPayload) error
}

// EmailService sends the operator-facing completion report.
type EmailService interface {
	SendCompletionReport(to, campaignName string, sent, failed int) error
}
