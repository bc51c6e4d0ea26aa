package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/http/middleware"
	"github.com/mailforge/campaigns/internal/usecase"
)

type CampaignHandler struct {
	CreateUC *usecase.CreateCampaignUseCase
	EnrichUC *usecase.EnrichCampaignUseCase
	SendUC   *usecase.SendApprovedUseCase
	ReviewUC *usecase.ReviewDraftsUseCase
	Repo     usecase.CampaignRepositoryInterface
}

func NewCampaignHandler(
	createUC *usecase.CreateCampaignUseCase,
	enrichUC *usecase.EnrichCampaignUseCase,
	sendUC *usecase.SendApprovedUseCase,
	reviewUC *usecase.ReviewDraftsUseCase,
	repo usecase.CampaignRepositoryInterface,
) *CampaignHandler {
	return &CampaignHandler{
		CreateUC: createUC,
		EnrichUC: enrichUC,
		SendUC:   sendUC,
		ReviewUC: reviewUC,
		Repo:     repo,
	}
}

type campaignSummary struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    entity.Status `json:"status"`
	Leads     int           `json:"leads"`
	CreatedAt string        `json:"created_at"`
}

type campaignResponse struct {
	*entity.Campaign
	Stats entity.CampaignStats `json:"stats"`
}

type bulkApproveRequest struct {
	LeadIDs []string `json:"lead_ids"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON body"})
		return
	}

	campaign, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordCampaignCreated(len(campaign.Leads))
	writeJSON(w, http.StatusCreated, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]campaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		summaries = append(summaries, campaignSummary{
			ID:        c.ID,
			Name:      c.Name,
			Status:    c.Status,
			Leads:     len(c.Leads),
			CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: usecase.CodeCampaignNotFound, Message: "campaign not found"})
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

func (h *CampaignHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.SetActive(r.Context(), chi.URLParam(r, "campaignId")); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: usecase.CodeCampaignNotFound, Message: "campaign not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CampaignHandler) HandleEnrich(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.EnrichUC.Execute(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		recordIntegrationFailure(err)
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(campaign.Status))
	writeJSON(w, http.StatusOK, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

func (h *CampaignHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.SendUC.Execute(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		recordIntegrationFailure(err)
		writeError(w, err)
		return
	}

	middleware.RecordTransition(string(campaign.Status))
	if campaign.DeliveryResults != nil {
		middleware.RecordDelivery(
			len(campaign.DeliveryResults.SentEmails),
			len(campaign.DeliveryResults.FailedEmails),
		)
	}
	writeJSON(w, http.StatusOK, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

func (h *CampaignHandler) HandleBulkApprove(w http.ResponseWriter, r *http.Request) {
	var req bulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON body"})
		return
	}

	campaign, err := h.ReviewUC.BulkApprove(r.Context(), chi.URLParam(r, "campaignId"), req.LeadIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

func (h *CampaignHandler) HandleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateDraftInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON body"})
		return
	}

	campaign, err := h.ReviewUC.UpdateDraft(r.Context(), chi.URLParam(r, "campaignId"), chi.URLParam(r, "leadId"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

func (h *CampaignHandler) HandleToggleApproval(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.ReviewUC.ToggleApproval(r.Context(), chi.URLParam(r, "campaignId"), chi.URLParam(r, "leadId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse{Campaign: campaign, Stats: campaign.Stats()})
}

type leadsResponse struct {
	Leads        []entity.Lead `json:"leads"`
	Total        int           `json:"total"`
	Industries   []string      `json:"industries"`
	CompanySizes []string      `json:"company_sizes"`
}

func (h *CampaignHandler) HandleLeads(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: usecase.CodeCampaignNotFound, Message: "campaign not found"})
		return
	}

	filtered := usecase.FilterLeads(campaign.Leads, filterFromQuery(r))
	writeJSON(w, http.StatusOK, leadsResponse{
		Leads:        filtered,
		Total:        len(campaign.Leads),
		Industries:   usecase.Industries(campaign.Leads),
		CompanySizes: usecase.CompanySizes(campaign.Leads),
	})
}

func (h *CampaignHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: usecase.CodeCampaignNotFound, Message: "campaign not found"})
		return
	}

	filtered := usecase.FilterLeads(campaign.Leads, filterFromQuery(r))
	csv := usecase.ExportCSV(filtered)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="campaign-%s.csv"`, campaign.ID))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}

func filterFromQuery(r *http.Request) usecase.LeadFilter {
	q := r.URL.Query()
	return usecase.LeadFilter{
		Industry:         q.Get("industry"),
		CompanySize:      q.Get("company_size"),
		EnrichmentStatus: q.Get("status"),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the use case error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusUnprocessableEntity
		switch domainErr.Code {
		case usecase.CodeCampaignNotFound, usecase.CodeDraftNotFound:
			status = http.StatusNotFound
		case usecase.CodeTransitionInFlight, usecase.CodeInvalidTransition:
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Code: domainErr.Code, Message: domainErr.Message})
		return
	}
	if techErr, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: techErr.Code, Message: techErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: err.Error()})
}

func recordIntegrationFailure(err error) {
	techErr, ok := err.(*usecase.TechnicalError)
	if !ok {
		return
	}
	switch techErr.Code {
	case "ENRICHMENT_FAILED":
		middleware.RecordIntegrationError("agent-enrich")
	case "GENERATION_FAILED":
		middleware.RecordIntegrationError("agent-draft")
	case "DELIVERY_FAILED":
		middleware.RecordIntegrationError("agent-send")
	}
}
