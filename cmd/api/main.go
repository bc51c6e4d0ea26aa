package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mailforge/campaigns/internal/infra/http/handlers"
	"github.com/mailforge/campaigns/internal/infra/http/middleware"
	"github.com/mailforge/campaigns/internal/infra/integration/agent"
	"github.com/mailforge/campaigns/internal/infra/mail"
	"github.com/mailforge/campaigns/internal/infra/memory"
	"github.com/mailforge/campaigns/internal/infra/queue"
	"github.com/mailforge/campaigns/internal/infra/worker"
	"github.com/mailforge/campaigns/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	// 1. Registry (in-memory; campaigns do not survive a restart)
	repo := memory.NewCampaignRepository()

	// 2. Agent gateway
	agentURL := os.Getenv("AGENT_API_URL")
	if agentURL == "" {
		agentURL = "http://localhost:3000/api/agent"
	}
	gateway := agent.NewClient(
		agentURL,
		os.Getenv("AGENT_ENRICH_ID"),
		os.Getenv("AGENT_DRAFT_ID"),
		os.Getenv("AGENT_SEND_ID"),
	)

	// 3. Event bus (optional; transitions and tracking still work without it)
	var producer usecase.QueueProducerInterface
	var trackingProducer queue.QueueProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rq, err := queue.NewRabbitMQ(url)
		if err != nil {
			log.Printf("rabbitmq unavailable, events disabled: %v", err)
		} else {
			rabbitMQ = rq
			rabbitProducer := queue.NewProducer(rq.Conn, rq.Ch)
			producer = rabbitProducer
			trackingProducer = rabbitProducer
			defer rq.Conn.Close()
			defer rq.Ch.Close()
		}
	}

	// 4. Completion report mail (optional)
	var emailService usecase.EmailService
	if host := os.Getenv("MAIL_HOST"); host != "" {
		port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if err != nil {
			port = 587
		}
		emailService = mail.NewEmailSender(
			host, port,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
	}

	// 5. UseCases
	createUC := usecase.NewCreateCampaignUseCase(repo, producer)
	enrichUC := usecase.NewEnrichCampaignUseCase(repo, gateway, producer)
	sendUC := usecase.NewSendApprovedUseCase(repo, gateway, producer, emailService, os.Getenv("REPORT_RECIPIENT"))
	reviewUC := usecase.NewReviewDraftsUseCase(repo)
	trackingUC := usecase.NewRecordTrackingUseCase(repo)

	// 6. Workers
	if rabbitMQ != nil {
		trackingWorker := queue.NewWorker(rabbitMQ.Ch, trackingUC)
		go trackingWorker.Start(queue.TrackingQueue)
	}
	go worker.NewStatusMetricsWorker(repo).Start(ctx)

	// 7. Handlers
	campaignHandler := handlers.NewCampaignHandler(createUC, enrichUC, sendUC, reviewUC, repo)
	trackingHandler := handlers.NewTrackingHandler(trackingProducer, trackingUC)
	healthHandler := handlers.NewHealthHandler(nil)
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(rabbitMQ.Conn)
	}

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/campaigns", campaignHandler.HandleCreate)
	r.Get("/campaigns", campaignHandler.HandleList)
	r.Get("/campaigns/{campaignId}", campaignHandler.HandleGet)
	r.Post("/campaigns/{campaignId}/activate", campaignHandler.HandleActivate)
	r.Post("/campaigns/{campaignId}/enrich", campaignHandler.HandleEnrich)
	r.Post("/campaigns/{campaignId}/send", campaignHandler.HandleSend)
	r.Post("/campaigns/{campaignId}/drafts/approve", campaignHandler.HandleBulkApprove)
	r.Put("/campaigns/{campaignId}/drafts/{leadId}", campaignHandler.HandleUpdateDraft)
	r.Post("/campaigns/{campaignId}/drafts/{leadId}/approval", campaignHandler.HandleToggleApproval)
	r.Get("/campaigns/{campaignId}/leads", campaignHandler.HandleLeads)
	r.Get("/campaigns/{campaignId}/export", campaignHandler.HandleExport)
	r.Post("/webhooks/tracking", trackingHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("campaign API listening on :%s", port)
	http.ListenAndServe(":"+port, r)
}
