package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"backoffice/internal/draft"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts the prebuilt template catalog, the line-item catalog, and the
// bootstrap admin account on an empty database. Every check is idempotent —
// existing rows are never touched, so user-modified databases survive
// restarts untouched.
func Seed(ctx context.Context, templateRepo repository.TemplateRepository, catalogRepo repository.LineItemCatalogRepository, userRepo repository.UserRepository) error {
	if err := seedPrebuiltTemplates(ctx, templateRepo); err != nil {
		return fmt.Errorf("seed prebuilt templates: %w", err)
	}
	if err := seedLineItemCatalog(ctx, catalogRepo); err != nil {
		return fmt.Errorf("seed line item catalog: %w", err)
	}
	if err := seedAdminUser(ctx, userRepo); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

// seedAdminUser creates the first admin so a fresh database is loginable.
// All user management routes require an admin token, so without this row no
// one could ever authenticate. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD, with development fallbacks.
func seedAdminUser(ctx context.Context, repo repository.UserRepository) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return fmt.Errorf("ADMIN_PASSWORD is required in production mode")
		}
		password = "admin123" // Development fallback only — DO NOT use in production
	}

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Println("Seeded bootstrap admin user", email)
	return nil
}

func seedPrebuiltTemplates(ctx context.Context, repo repository.TemplateRepository) error {
	count, err := repo.CountPrebuilt(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, tmpl := range prebuiltTemplates() {
		t := tmpl
		if err := repo.Create(ctx, &t); err != nil {
			return err
		}
	}
	log.Println("Seeded prebuilt invoice templates")
	return nil
}

func seedLineItemCatalog(ctx context.Context, repo repository.LineItemCatalogRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := repo.InsertBatch(ctx, lineItemCatalog()); err != nil {
		return err
	}
	log.Println("Seeded line item catalog")
	return nil
}

func prebuiltTemplates() []model.InvoiceTemplate {
	return []model.InvoiceTemplate{
		{
			Name:        "Monthly Bookkeeping",
			Description: "Recurring monthly bookkeeping engagement",
			Category:    draft.CategoryBookkeeping,
			Icon:        draft.DefaultIcon(draft.CategoryBookkeeping),
			Memo:        draft.DefaultMemo,
			IsPrebuilt:  true,
			LineItems: []model.TemplateLineItem{
				{Position: 0, Name: "Monthly bookkeeping", Description: "Transaction categorization and ledger maintenance", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(350)},
				{Position: 1, Name: "Bank reconciliation", Description: "Up to 3 accounts", Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(45)},
				{Position: 2, Name: "Financial statements", Description: "Monthly P&L and balance sheet", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(125)},
			},
			RecurrencePattern:  draft.PatternMonthly,
			RecurrenceInterval: 1,
			RecurrenceEndType:  draft.EndNever,
		},
		{
			Name:        "Individual Tax Return",
			Description: "Form 1040 preparation and filing",
			Category:    draft.CategoryTaxPreparation,
			Icon:        draft.DefaultIcon(draft.CategoryTaxPreparation),
			Memo:        draft.DefaultMemo,
			IsPrebuilt:  true,
			LineItems: []model.TemplateLineItem{
				{Position: 0, Name: "Form 1040 preparation", Description: "Federal individual income tax return", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(400)},
				{Position: 1, Name: "State return", Description: "One state filing included", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(150)},
				{Position: 2, Name: "Schedule C", Description: "Sole proprietorship income", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(175)},
			},
			RecurrencePattern:  draft.PatternNone,
			RecurrenceInterval: 1,
			RecurrenceEndType:  draft.EndNever,
		},
		{
			Name:        "Payroll Processing",
			Description: "Biweekly payroll run for small teams",
			Category:    draft.CategoryPayroll,
			Icon:        draft.DefaultIcon(draft.CategoryPayroll),
			Memo:        draft.DefaultMemo,
			IsPrebuilt:  true,
			LineItems: []model.TemplateLineItem{
				{Position: 0, Name: "Payroll run", Description: "Per-cycle processing, up to 10 employees", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(95)},
				{Position: 1, Name: "Payroll tax filing", Description: "Federal and state deposits", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(75)},
			},
			RecurrencePattern:  draft.PatternMonthly,
			RecurrenceInterval: 1,
			RecurrenceEndType:  draft.EndNever,
		},
		{
			Name:        "Annual Audit Engagement",
			Description: "Year-end financial statement audit",
			Category:    draft.CategoryAudit,
			Icon:        draft.DefaultIcon(draft.CategoryAudit),
			Memo:        draft.DefaultMemo,
			IsPrebuilt:  true,
			LineItems: []model.TemplateLineItem{
				{Position: 0, Name: "Audit planning", Description: "Risk assessment and scoping", Quantity: decimal.NewFromInt(8), Rate: decimal.NewFromInt(185)},
				{Position: 1, Name: "Fieldwork", Description: "Substantive testing hours", Quantity: decimal.NewFromInt(40), Rate: decimal.NewFromInt(185)},
				{Position: 2, Name: "Report preparation", Description: "Audit opinion and management letter", Quantity: decimal.NewFromInt(6), Rate: decimal.NewFromInt(210)},
			},
			RecurrencePattern:  draft.PatternNone,
			RecurrenceInterval: 1,
			RecurrenceEndType:  draft.EndNever,
		},
		{
			Name:        "Advisory Retainer",
			Description: "Monthly CFO advisory services",
			Category:    draft.CategoryAdvisory,
			Icon:        draft.DefaultIcon(draft.CategoryAdvisory),
			Memo:        draft.DefaultMemo,
			IsPrebuilt:  true,
			LineItems: []model.TemplateLineItem{
				{Position: 0, Name: "Advisory retainer", Description: "Monthly strategic finance support", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1500)},
			},
			RecurrencePattern:  draft.PatternMonthly,
			RecurrenceInterval: 1,
			RecurrenceEndType:  draft.EndNever,
		},
	}
}

func lineItemCatalog() []model.LineItemCatalogEntry {
	rate := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	return []model.LineItemCatalogEntry{
		{Name: "Monthly bookkeeping", Description: "Transaction categorization and ledger maintenance", Category: draft.CategoryBookkeeping, DefaultRate: rate(350)},
		{Name: "Bank reconciliation", Description: "Per account, per month", Category: draft.CategoryBookkeeping, DefaultRate: rate(45)},
		{Name: "Accounts payable management", Description: "Bill entry and payment scheduling", Category: draft.CategoryBookkeeping, DefaultRate: rate(150)},
		{Name: "Form 1040 preparation", Description: "Federal individual income tax return", Category: draft.CategoryTaxPreparation, DefaultRate: rate(400)},
		{Name: "Form 1120 preparation", Description: "Corporate income tax return", Category: draft.CategoryTaxPreparation, DefaultRate: rate(850)},
		{Name: "Quarterly estimated taxes", Description: "Safe-harbor calculation and vouchers", Category: draft.CategoryTaxPreparation, DefaultRate: rate(125)},
		{Name: "Payroll run", Description: "Per-cycle processing, up to 10 employees", Category: draft.CategoryPayroll, DefaultRate: rate(95)},
		{Name: "W-2/1099 preparation", Description: "Year-end information returns, per form", Category: draft.CategoryPayroll, DefaultRate: rate(15)},
		{Name: "Audit fieldwork", Description: "Substantive testing, hourly", Category: draft.CategoryAudit, DefaultRate: rate(185)},
		{Name: "Internal controls review", Description: "Walkthrough and documentation", Category: draft.CategoryAudit, DefaultRate: rate(165)},
		{Name: "CFO advisory", Description: "Strategic finance support, hourly", Category: draft.CategoryAdvisory, DefaultRate: rate(225)},
		{Name: "Cash flow forecasting", Description: "13-week rolling forecast", Category: draft.CategoryAdvisory, DefaultRate: rate(300)},
		{Name: "Systems consulting", Description: "Accounting software setup and migration", Category: draft.CategoryConsulting, DefaultRate: rate(175)},
		{Name: "Process documentation", Description: "Workflow mapping and SOPs", Category: draft.CategoryConsulting, DefaultRate: rate(140)},
		{Name: "General services", Description: "Miscellaneous professional services, hourly", Category: draft.CategoryOther, DefaultRate: rate(120)},
	}
}
