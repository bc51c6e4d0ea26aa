package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mailforge/campaigns/internal/entity"
)

// Default agent selectors, overridable per environment.
const (
	DefaultEnrichAgentID = "6902b0e4e26dd0e03684e4e3"
	DefaultDraftAgentID  = "6902b0f3de7c6b951ae00e7c"
	DefaultSendAgentID   = "6902b118cb70cd01d3078545"
)

// Client talks to the agent endpoint that fronts the enrichment, draft and
// delivery services. All three calls share one invoke contract; only the
// instruction text and the agent selector differ.
type Client struct {
	baseURL       string
	enrichAgentID string
	draftAgentID  string
	sendAgentID   string
	http          *http.Client
}

func NewClient(baseURL, enrichAgentID, draftAgentID, sendAgentID string) *Client {
	if enrichAgentID == "" {
		enrichAgentID = DefaultEnrichAgentID
	}
	if draftAgentID == "" {
		draftAgentID = DefaultDraftAgentID
	}
	if sendAgentID == "" {
		sendAgentID = DefaultSendAgentID
	}
	return &Client{
		baseURL:       baseURL,
		enrichAgentID: enrichAgentID,
		draftAgentID:  draftAgentID,
		sendAgentID:   sendAgentID,
		http:          &http.Client{Timeout: 120 * time.Second},
	}
}

// EnrichLeads submits every lead in one call and returns whatever subset
// the agent matched. Each entry keeps its raw payload alongside the three
// projected fields.
func (c *Client) EnrichLeads(ctx context.Context, leads []entity.Lead) ([]entity.Enrichment, error) {
	summaries := make([]enrichLeadSummary, len(leads))
	for i, l := range leads {
		summaries[i] = enrichLeadSummary{Email: l.Email, Name: l.Name, Company: l.Company}
	}

	message := "Enrich these leads with Apollo data: " + mustJSON(summaries)
	raw, err := c.invoke(ctx, message, c.enrichAgentID)
	if err != nil {
		return nil, err
	}

	var body struct {
		EnrichedLeads []json.RawMessage `json:"enriched_leads"`
	}
	if err := decodeResult(raw, &body); err != nil {
		return nil, err
	}

	results := make([]entity.Enrichment, 0, len(body.EnrichedLeads))
	for _, item := range body.EnrichedLeads {
		var typed enrichedLeadResult
		if err := json.Unmarshal(item, &typed); err != nil {
			// Not an object; nothing to match a lead against.
			continue
		}
		var data map[string]any
		json.Unmarshal(item, &data)

		results = append(results, entity.Enrichment{
			Email:        typed.Email,
			Industry:     typed.Industry,
			CompanySize:  typed.CompanySize,
			FundingStage: typed.FundingStage,
			Data:         data,
		})
	}
	return results, nil
}

// GenerateDrafts submits every lead in one call. Missing subject/body/notes
// default to empty strings; the lead key is whichever of lead_id or email
// the agent filled in.
func (c *Client) GenerateDrafts(ctx context.Context, leads []entity.Lead) ([]entity.GeneratedDraft, error) {
	summaries := make([]draftLeadSummary, len(leads))
	for i, l := range leads {
		summaries[i] = draftLeadSummary{
			Email:    l.Email,
			Name:     l.Name,
			Company:  l.Company,
			Industry: l.Industry,
			Title:    l.Title,
		}
	}

	message := "Generate personalized email drafts for these leads: " + mustJSON(summaries)
	raw, err := c.invoke(ctx, message, c.draftAgentID)
	if err != nil {
		return nil, err
	}

	var body struct {
		EmailDrafts []emailDraftResult `json:"email_drafts"`
	}
	if err := decodeResult(raw, &body); err != nil {
		return nil, err
	}

	results := make([]entity.GeneratedDraft, 0, len(body.EmailDrafts))
	for _, item := range body.EmailDrafts {
		key := item.LeadID
		if key == "" {
			key = item.Email
		}
		results = append(results, entity.GeneratedDraft{
			LeadKey:              key,
			SubjectLine:          item.SubjectLine,
			Body:                 item.Body,
			PersonalizationNotes: item.PersonalizationNotes,
		})
	}
	return results, nil
}

// SendEmails submits the approved drafts and reads back the two address
// lists, each defaulting to empty.
func (c *Client) SendEmails(ctx context.Context, drafts []entity.EmailDraft) (*entity.DeliveryResults, error) {
	message := "Send these approved emails via Gmail: " + mustJSON(drafts)
	raw, err := c.invoke(ctx, message, c.sendAgentID)
	if err != nil {
		return nil, err
	}

	var body struct {
		DeliveryResults deliveryResultsPayload `json:"delivery_results"`
	}
	if err := decodeResult(raw, &body); err != nil {
		return nil, err
	}

	results := &entity.DeliveryResults{
		SentEmails:   body.DeliveryResults.SentEmails,
		FailedEmails: body.DeliveryResults.FailedEmails,
	}
	if results.SentEmails == nil {
		results.SentEmails = []string{}
	}
	if results.FailedEmails == nil {
		results.FailedEmails = []string{}
	}
	return results, nil
}

func (c *Client) invoke(ctx context.Context, message, agentID string) (json.RawMessage, error) {
	jsonBody, err := json.Marshal(invokeRequest{Message: message, AgentID: agentID})
	if err != nil {
		return nil, fmt.Errorf("agent request marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, string(body))
	}

	var out invokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("agent response decode: %w", err)
	}
	return out.Response, nil
}

// decodeResult unpacks the optional nested result object. A missing
// response is zero results; unparseable content is a hard failure.
func decodeResult(raw json.RawMessage, target any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("agent result decode: %w", err)
	}
	return nil
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
