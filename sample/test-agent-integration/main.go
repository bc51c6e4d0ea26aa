package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mailforge/campaigns/internal/entity"
	"github.com/mailforge/campaigns/internal/infra/integration/agent"
)

// Manual smoke test for the agent endpoint. Run with AGENT_API_URL set.
func main() {
	url := os.Getenv("AGENT_API_URL")
	if url == "" {
		log.Fatal("AGENT_API_URL is required")
	}

	client := agent.NewClient(url, os.Getenv("AGENT_ENRICH_ID"), "", "")

	leads := []entity.Lead{
		{ID: "smoke-1", Email: "jane@acme.test", Name: "Jane Doe", Company: "Acme Inc"},
	}

	results, err := client.EnrichLeads(context.Background(), leads)
	if err != nil {
		log.Fatalf("enrich call failed: %v", err)
	}

	fmt.Printf("got %d enrichment result(s)\n", len(results))
	for _, res := range results {
		fmt.Printf("  %s -> industry=%q size=%q funding=%q\n",
			res.Email, res.Industry, res.CompanySize, res.FundingStage)
	}
}
