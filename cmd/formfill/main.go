package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"

	"assessform-client/internal/bootstrap"
	"assessform-client/internal/config"
	"assessform-client/internal/entity"
	"assessform-client/pkg/upload"
)

// Scenario driver: walks a full employee session against a running
// collaborator (the mockserver or a real deployment behind API_BASE_URL).
func main() {
	companyID := flag.String("company", "ACME", "company identifier")
	returningID := flag.Int("returning", -1, "returning employee id (-1 starts a new session)")
	flag.Parse()

	cfg := config.Load()
	c := bootstrap.NewContainer(cfg)
	defer c.Logger.Sync()

	ctx := context.Background()

	color.Cyan("=== Assessment Form Sync ===")
	fmt.Printf("Collaborator: %s\n", cfg.API.BaseURL)

	// 1. Select the company; this resets any previous session and refreshes
	// the roster snapshot.
	c.SessionService.SetCompany(ctx, *companyID)
	if status, ok := c.CompanyStatusService.Current(*companyID); ok {
		fmt.Printf("Company %s: completed=%v employees=%v nextId=%d\n",
			*companyID, status.CompanyCompleted, status.EmployeeIDs, status.NextEmployeeID)
	} else {
		color.Yellow("No status snapshot available (collaborator unreachable?)")
	}

	// 2. Choose a mode.
	if *returningID >= 0 {
		if err := c.SessionService.SelectReturningMode(ctx, *returningID); err != nil {
			log.Fatalf("returning session rejected: %v", err)
		}
		color.Green("Returning session restored for employee %d", *returningID)
	} else {
		if err := c.SessionService.SelectNewMode(); err != nil {
			log.Fatalf("new session rejected: %v", err)
		}
		color.Green("New session started (identity deferred to first save)")
	}

	// 3. Load the employee questionnaire.
	questions, err := c.FormService.SwitchForm(ctx, entity.FormTypeEmployee)
	if err != nil {
		log.Fatalf("load questions: %v", err)
	}
	fmt.Printf("Loaded %d questions\n", len(questions))

	// 4. First save pins the identity for a new session.
	if _, err := c.ResponseService.SetAnswer(ctx, "e1", "Site engineer", nil); err != nil {
		log.Fatalf("save answer: %v", err)
	}
	if sess, ok := c.SessionService.Session(); ok && sess.HasIdentity() {
		color.Green("Identity pinned: employee %d", sess.EmployeeID)
	}

	// 5. Upload an attachment through the tier chain and save it with an
	// answer; a degraded collaborator still succeeds via the local tier.
	desc, err := c.Uploader.Upload(ctx, &upload.Input{
		CompanyID:  *companyID,
		QuestionID: "e4",
		FileName:   "certificate.pdf",
		MimeType:   "application/pdf",
		Data:       []byte("%PDF-1.4 sample certificate"),
	})
	if err != nil {
		log.Fatalf("upload: %v", err)
	}
	fmt.Printf("Attachment stored via %s tier (key %s)\n", desc.Tier, desc.StorageKey)

	if _, err := c.ResponseService.SetAnswer(ctx, "e4", "certificate.pdf", desc); err != nil {
		log.Fatalf("save attachment answer: %v", err)
	}

	ratio := c.ResponseService.CompletionRatio()
	color.Cyan("Done. Completion: %.0f%%, save status: %s", ratio*100, c.ResponseService.SaveStatus())
}
