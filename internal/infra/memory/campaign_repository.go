package memory

import (
	"context"
	"sync"

	"github.com/mailforge/campaigns/internal/entity"
)

// CampaignRepository is the campaign registry, kept entirely in process
// memory (durability across restarts is out of scope for this service).
// All reads hand out deep copies and all writes replace whole snapshots,
// so a reader can never observe a half-updated campaign. It also owns the
// per-campaign transition lock used to serialize enrich/send.
type CampaignRepository struct {
	mu       sync.RWMutex
	order    []string // most-recent-first
	byID     map[string]*entity.Campaign
	inFlight map[string]bool
	activeID string
}

func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		byID:     make(map[string]*entity.Campaign),
		inFlight: make(map[string]bool),
	}
}

// Create registers a campaign, prepends it to the ordered list and makes
// it the active one.
func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[c.ID] = c.Clone()
	r.order = append([]string{c.ID}, r.order...)
	r.activeID = c.ID
	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrCampaignNotFound
	}
	return c.Clone(), nil
}

// Update replaces the stored snapshot. If the updated campaign is the
// active one, the active reference is refreshed in the same step.
func (r *CampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return entity.ErrCampaignNotFound
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Campaign, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

// SetActive switches focus without mutating any campaign.
func (r *CampaignRepository) SetActive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return entity.ErrCampaignNotFound
	}
	r.activeID = id
	return nil
}

func (r *CampaignRepository) Active(ctx context.Context) (*entity.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.activeID == "" {
		return nil, entity.ErrNoActiveCampaign
	}
	c, ok := r.byID[r.activeID]
	if !ok {
		return nil, entity.ErrNoActiveCampaign
	}
	return c.Clone(), nil
}

// BeginTransition atomically claims the campaign for one transition and
// flips it into the transient status. Exactly one of enrich/send can hold
// a campaign at a time; the button-disabling in any UI is just a mirror of
// this check.
func (r *CampaignRepository) BeginTransition(ctx context.Context, id string, to entity.Status) (*entity.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrCampaignNotFound
	}
	if r.inFlight[id] {
		return nil, entity.ErrTransitionInFlight
	}
	if !c.Status.CanEnter(to) {
		if c.Status.Transient() {
			return nil, entity.ErrTransitionInFlight
		}
		return nil, entity.ErrInvalidTransition
	}

	c.Status = to
	r.inFlight[id] = true
	return c.Clone(), nil
}

// EndTransition releases the per-campaign lock once the external call has
// settled, whatever the outcome.
func (r *CampaignRepository) EndTransition(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, id)
}
