package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the campaign lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusEnriching  Status = "enriching"
	StatusGenerating Status = "generating"
	StatusReview     Status = "review"
	StatusSending    Status = "sending"
	StatusCompleted  Status = "completed"
)

// AllStatuses in lifecycle order.
var AllStatuses = []Status{
	StatusDraft, StatusEnriching, StatusGenerating,
	StatusReview, StatusSending, StatusCompleted,
}

// Transient reports whether this status means an external call may be in
// flight. A transient campaign accepts no transitions and no draft edits.
func (s Status) Transient() bool {
	return s == StatusEnriching || s == StatusGenerating || s == StatusSending
}

// transitionSources maps each transient status to the statuses it may be
// entered from. StatusGenerating is a legal source for enriching so a
// campaign left behind by a failed generation can be re-enriched.
var transitionSources = map[Status][]Status{
	StatusEnriching: {StatusDraft, StatusGenerating},
	StatusSending:   {StatusReview},
}

// CanEnter reports whether a campaign in status s may begin the transient
// status to.
func (s Status) CanEnter(to Status) bool {
	for _, from := range transitionSources[to] {
		if s == from {
			return true
		}
	}
	return false
}

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrNoActiveCampaign   = errors.New("no active campaign")
	ErrTransitionInFlight = errors.New("a transition is already in flight")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// DeliveryResults is what the delivery agent reported back. Written once,
// on a successful send; never partially written on failure.
type DeliveryResults struct {
	SentEmails   []string `json:"sent_emails"`
	FailedEmails []string `json:"failed_emails"`
}

// Analytics counters are stored passively. External tracking reports them;
// this service only initializes them to zero.
type Analytics struct {
	Opens        int `json:"opens"`
	Clicks       int `json:"clicks"`
	Bounces      int `json:"bounces"`
	Unsubscribes int `json:"unsubscribes"`
}

// Campaign is the aggregate for one outreach effort. It exclusively owns
// its leads and drafts.
type Campaign struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	CreatedAt       time.Time        `json:"created_at"`
	Status          Status           `json:"status"`
	Leads           []Lead           `json:"leads"`
	Drafts          []EmailDraft     `json:"drafts"`
	DeliveryResults *DeliveryResults `json:"delivery_results,omitempty"`
	Analytics       *Analytics       `json:"analytics,omitempty"`
}

// CampaignStats mirrors the dashboard counters.
type CampaignStats struct {
	Total    int `json:"total"`
	Enriched int `json:"enriched"`
	Approved int `json:"approved"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
}

// NewCampaign allocates a draft campaign owning the given leads, with
// zeroed analytics and no drafts.
func NewCampaign(name string, leads []Lead) *Campaign {
	if name == "" {
		name = "Campaign " + time.Now().Format("01/02/2006")
	}
	if leads == nil {
		leads = []Lead{}
	}
	return &Campaign{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		Status:    StatusDraft,
		Leads:     leads,
		Drafts:    []EmailDraft{},
		Analytics: &Analytics{},
	}
}

// ApprovedDrafts returns the drafts flagged for sending, in order.
func (c *Campaign) ApprovedDrafts() []EmailDraft {
	approved := make([]EmailDraft, 0, len(c.Drafts))
	for _, d := range c.Drafts {
		if d.Approved {
			approved = append(approved, d)
		}
	}
	return approved
}

// EnrichedCount returns how many leads have been matched by enrichment.
func (c *Campaign) EnrichedCount() int {
	n := 0
	for _, l := range c.Leads {
		if l.Enriched {
			n++
		}
	}
	return n
}

// Stats computes the dashboard counters from the current snapshot.
func (c *Campaign) Stats() CampaignStats {
	stats := CampaignStats{
		Total:    len(c.Leads),
		Enriched: c.EnrichedCount(),
		Approved: len(c.ApprovedDrafts()),
	}
	if c.DeliveryResults != nil {
		stats.Sent = len(c.DeliveryResults.SentEmails)
		stats.Failed = len(c.DeliveryResults.FailedEmails)
	}
	return stats
}

// Clone returns a deep copy so registry readers never share mutable slices
// with writers.
func (c *Campaign) Clone() *Campaign {
	out := *c

	out.Leads = make([]Lead, len(c.Leads))
	copy(out.Leads, c.Leads)
	for i, l := range out.Leads {
		if l.EnrichmentData != nil {
			data := make(map[string]any, len(l.EnrichmentData))
			for k, v := range l.EnrichmentData {
				data[k] = v
			}
			out.Leads[i].EnrichmentData = data
		}
	}

	out.Drafts = make([]EmailDraft, len(c.Drafts))
	copy(out.Drafts, c.Drafts)

	if c.DeliveryResults != nil {
		results := DeliveryResults{
			SentEmails:   append([]string{}, c.DeliveryResults.SentEmails...),
			FailedEmails: append([]string{}, c.DeliveryResults.FailedEmails...),
		}
		out.DeliveryResults = &results
	}
	if c.Analytics != nil {
		analytics := *c.Analytics
		out.Analytics = &analytics
	}
	return &out
}
