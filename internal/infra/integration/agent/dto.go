package agent

import "encoding/json"

// One request shape serves all three services: a free-form instruction
// plus the opaque selector of the agent that should handle it.
type invokeRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

// The result object is optional; a missing or empty "response" means zero
// results, not an error.
type invokeResponse struct {
	Response json.RawMessage `json:"response"`
}

// What we include about each lead in the enrichment instruction.
type enrichLeadSummary struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// What we include about each lead in the draft instruction.
type draftLeadSummary struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
	Title    string `json:"title"`
}

// --- Result payloads the agents send back (snake_case) ---

type enrichedLeadResult struct {
	Email        string `json:"email"`
	Industry     string `json:"industry"`
	CompanySize  string `json:"company_size"`
	FundingStage string `json:"funding_stage"`
}

type emailDraftResult struct {
	LeadID               string `json:"lead_id"`
	Email                string `json:"email"`
	SubjectLine          string `json:"subject_line"`
	Body                 string `json:"body"`
	PersonalizationNotes string `json:"personalization_notes"`
}

type deliveryResultsPayload struct {
	SentEmails   []string `json:"sent_emails"`
	FailedEmails []string `json:"failed_emails"`
}
