// Package seed bootstraps reference data for a fresh install.
package seed

import (
	"context"
	"errors"
	"time"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	paymentsdomain "github.com/auroradigital/billingdesk/internal/payments/domain"
	workflowdomain "github.com/auroradigital/billingdesk/internal/workflow/domain"
	workflowstore "github.com/auroradigital/billingdesk/internal/workflow/store"
	"github.com/auroradigital/billingdesk/pkg/db"
	"gorm.io/gorm"
)

// insert writes seed rows, tolerating a concurrent instance winning
// the same insert first.
func insert(ctx context.Context, tx *gorm.DB, value any) error {
	if err := tx.WithContext(ctx).Create(value).Error; err != nil && !db.IsDuplicateKeyErr(err) {
		return err
	}
	return nil
}

// Ensure seeds the catalog, organization profile, and payments data.
// Each table is only written when empty, so restarts are safe.
func Ensure(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureOrganization(ctx, tx); err != nil {
			return err
		}
		if err := ensureServices(ctx, tx); err != nil {
			return err
		}
		if err := ensureClients(ctx, tx); err != nil {
			return err
		}
		return ensurePayments(ctx, tx)
	})
}

func ensureOrganization(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.Organization{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	org := catalogdomain.Organization{
		ID:              "org-aurora",
		LegalName:       "Aurora Digital Solutions Pvt. Ltd.",
		DisplayName:     "Aurora Digital Solutions",
		Tagline:         "Strategic Digital Expertise Delivered",
		TaxRegistration: "GSTIN: 27AABCU9603R1Z7",
		AddressLine1:    "7th Floor, Crest Tower",
		AddressLine2:    "Bandra Kurla Complex",
		City:            "Mumbai",
		State:           "Maharashtra",
		PostalCode:      "400051",
		Country:         "India",
		Phone:           "+91 22 4150 2380",
		Email:           "billing@auroradigital.in",
		Website:         "www.auroradigital.in",
		BankBeneficiary: "Aurora Digital Solutions Pvt. Ltd.",
		BankName:        "Horizon Bank of India",
		BankAccount:     "018901290384",
		BankIFSC:        "HRZN0001290",
		BankSWIFT:       "HRZNINBB",
	}
	return insert(ctx, tx, &org)
}

func ensureServices(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	services := []catalogdomain.Service{
		{
			ID:          "svc-dm-001",
			Name:        "Search Engine Optimization Retainer",
			Category:    catalogdomain.CategoryDigitalMarketing,
			Description: "Monthly optimization of on-page, off-page, and technical SEO assets with reporting and analytics.",
			Unit:        "Monthly Retainer",
			UnitRate:    65000,
		},
		{
			ID:          "svc-dm-002",
			Name:        "Social Media Campaign Management",
			Category:    catalogdomain.CategoryDigitalMarketing,
			Description: "End-to-end campaign management across social platforms including creative production and performance tracking.",
			Unit:        "Campaign",
			UnitRate:    54000,
		},
		{
			ID:          "svc-web-001",
			Name:        "Corporate Website Redesign",
			Category:    catalogdomain.CategoryWebDevelopment,
			Description: "Responsive redesign with UX strategy, CMS integration, QA, and deployment.",
			Unit:        "Project",
			UnitRate:    185000,
		},
		{
			ID:          "svc-web-002",
			Name:        "eCommerce Platform Build",
			Category:    catalogdomain.CategoryWebDevelopment,
			Description: "Full-stack eCommerce implementation with payment gateway integration and admin training.",
			Unit:        "Project",
			UnitRate:    275000,
		},
		{
			ID:          "svc-soft-001",
			Name:        "Custom CRM Module Development",
			Category:    catalogdomain.CategorySoftwareDevelopment,
			Description: "Build and integrate tailored CRM module with existing enterprise systems.",
			Unit:        "Sprint",
			UnitRate:    95000,
		},
		{
			ID:          "svc-soft-002",
			Name:        "Enterprise API Integration Suite",
			Category:    catalogdomain.CategorySoftwareDevelopment,
			Description: "Secure API integration including documentation, testing, and deployment support.",
			Unit:        "Integration Package",
			UnitRate:    132000,
		},
	}
	return insert(ctx, tx, &services)
}

func ensureClients(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.ClientProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	clients := []catalogdomain.ClientProfile{
		{
			ID:           "cl-aurora-001",
			CompanyName:  "Nimbus Finserve Ltd.",
			ContactName:  "Riya Malhotra",
			Email:        "riya.malhotra@nimbusfinserve.com",
			Phone:        "+91 98190 44221",
			AddressLine1: "903, Sapphire Heights",
			AddressLine2: "Andheri West",
			City:         "Mumbai",
			State:        "Maharashtra",
			PostalCode:   "400058",
			Country:      "India",
			GSTIN:        "27AACCN1234B1Z9",
		},
		{
			ID:           "cl-aurora-002",
			CompanyName:  "Helios Retail Pvt. Ltd.",
			ContactName:  "Ashwin Rao",
			Email:        "ashwin.rao@heliosretail.in",
			Phone:        "+91 99876 55210",
			AddressLine1: "2nd Floor, Meridian Plaza",
			City:         "Bengaluru",
			State:        "Karnataka",
			PostalCode:   "560001",
			Country:      "India",
			GSTIN:        "29AAECP3245L1Z3",
		},
		{
			ID:           "cl-aurora-003",
			CompanyName:  "Orbit Logistics & Warehousing LLP",
			ContactName:  "Samarjeet Singh",
			Email:        "samarjeet@orbitlogistics.com",
			Phone:        "+91 97173 77660",
			AddressLine1: "Plot No. 18, Sector 62",
			City:         "Noida",
			State:        "Uttar Pradesh",
			PostalCode:   "201309",
			Country:      "India",
			GSTIN:        "09AAHFO6521K1ZW",
		},
	}
	return insert(ctx, tx, &clients)
}

func ensurePayments(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&paymentsdomain.GatewayProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	gateway := paymentsdomain.GatewayProfile{
		ID:                   "gw-razorflow",
		ProviderName:         "RazorFlow Payments",
		Status:               paymentsdomain.GatewayOperational,
		FeePercentage:        1.9,
		SettlementWindow:     "T+2 business days",
		ReconciliationStatus: "Balanced",
		MerchantID:           "AURORA-88213",
		LastSync:             time.Date(2026, 3, 6, 22, 30, 0, 0, time.UTC),
	}
	if err := insert(ctx, tx, &gateway); err != nil {
		return err
	}

	channels := []paymentsdomain.Channel{
		{ID: "ch-upi", GatewayID: gateway.ID, Label: "UPI Collect", Status: paymentsdomain.GatewayOperational, SuccessRate: 98.2, SLAMinutes: 2},
		{ID: "ch-cards", GatewayID: gateway.ID, Label: "Card Payments", Status: paymentsdomain.GatewayOperational, SuccessRate: 94.7, SLAMinutes: 5},
		{ID: "ch-netbank", GatewayID: gateway.ID, Label: "Net Banking", Status: paymentsdomain.GatewayDegraded, SuccessRate: 88.1, SLAMinutes: 15},
		{ID: "ch-wire", GatewayID: gateway.ID, Label: "NEFT/RTGS Transfer", Status: paymentsdomain.GatewayOperational, SuccessRate: 99.0, SLAMinutes: 120},
	}
	if err := insert(ctx, tx, &channels); err != nil {
		return err
	}

	transactions := []paymentsdomain.Transaction{
		{ID: "txn-88411", InvoiceNumber: "ADS-2026-0118-m2k8w1qp", ClientID: "cl-aurora-001", Amount: 130000, Currency: "INR", Status: paymentsdomain.TransactionSucceeded, Method: "UPI Collect", ReceivedAt: time.Date(2026, 2, 2, 11, 15, 0, 0, time.UTC)},
		{ID: "txn-88415", InvoiceNumber: "ADS-2026-0125-q7c3t9ze", ClientID: "cl-aurora-002", Amount: 185000, Currency: "INR", Status: paymentsdomain.TransactionSucceeded, Method: "NEFT/RTGS Transfer", ReceivedAt: time.Date(2026, 2, 9, 16, 40, 0, 0, time.UTC)},
		{ID: "txn-88423", InvoiceNumber: "ADS-2026-0201-x4n6b2rv", ClientID: "cl-aurora-003", Amount: 95000, Currency: "INR", Status: paymentsdomain.TransactionFailed, Method: "Card Payments", ReceivedAt: time.Date(2026, 2, 17, 10, 5, 0, 0, time.UTC)},
		{ID: "txn-88430", InvoiceNumber: "ADS-2026-0201-x4n6b2rv", ClientID: "cl-aurora-003", Amount: 95000, Currency: "INR", Status: paymentsdomain.TransactionSucceeded, Method: "UPI Collect", ReceivedAt: time.Date(2026, 2, 18, 9, 25, 0, 0, time.UTC)},
		{ID: "txn-88436", InvoiceNumber: "ADS-2026-0210-f8s1d7kj", ClientID: "cl-aurora-002", Amount: 54000, Currency: "INR", Status: paymentsdomain.TransactionPending, Method: "Net Banking", ReceivedAt: time.Date(2026, 2, 26, 14, 55, 0, 0, time.UTC)},
		{ID: "txn-88441", InvoiceNumber: "ADS-2026-0214-h3j9p5mw", ClientID: "cl-aurora-001", Amount: 132000, Currency: "INR", Status: paymentsdomain.TransactionSucceeded, Method: "NEFT/RTGS Transfer", ReceivedAt: time.Date(2026, 3, 3, 12, 10, 0, 0, time.UTC)},
	}
	return insert(ctx, tx, &transactions)
}

// EnsureLedger seeds the in-memory workflow ledger with the opening
// book of posted invoices. Skipped when the ledger already has rows.
func EnsureLedger(store *workflowstore.Store, clk clock.Clock) {
	if len(store.List()) > 0 {
		return
	}

	now := clk.Now()
	store.Seed([]workflowdomain.InvoiceRecord{
		{
			ID:             "inv-ledger-001",
			InvoiceNumber:  "ADS-2026-0214-h3j9p5mw",
			ClientID:       "cl-aurora-001",
			Engagement:     "Enterprise API Integration Suite",
			Currency:       "INR",
			Amount:         132000,
			Status:         workflowdomain.StatusPaid,
			IssueDate:      "2026-02-14",
			DueDate:        "2026-03-01",
			LastUpdated:    now.AddDate(0, 0, -5),
			CreatedBy:      catalogdomain.RoleEmployee,
			ApprovalStatus: workflowdomain.ApprovalApproved,
			LineItems: []invoicedomain.LineItem{
				{ID: "li-ledger-001", ServiceID: "svc-soft-002", Description: "Secure API integration including documentation, testing, and deployment support.", Quantity: 1, UnitPrice: 132000},
			},
		},
		{
			ID:             "inv-ledger-002",
			InvoiceNumber:  "ADS-2026-0210-f8s1d7kj",
			ClientID:       "cl-aurora-002",
			Engagement:     "Social Media Campaign Management",
			Currency:       "INR",
			Amount:         54000,
			Status:         workflowdomain.StatusPending,
			IssueDate:      "2026-02-10",
			DueDate:        "2026-02-25",
			LastUpdated:    now.AddDate(0, 0, -12),
			CreatedBy:      catalogdomain.RoleEmployee,
			ApprovalStatus: workflowdomain.ApprovalApproved,
			LineItems: []invoicedomain.LineItem{
				{ID: "li-ledger-002", ServiceID: "svc-dm-002", Description: "End-to-end campaign management across social platforms including creative production and performance tracking.", Quantity: 1, UnitPrice: 54000},
			},
		},
		{
			ID:             "inv-ledger-003",
			InvoiceNumber:  "ADS-2026-0201-x4n6b2rv",
			ClientID:       "cl-aurora-003",
			Engagement:     "Custom CRM Module Development",
			Currency:       "INR",
			Amount:         190000,
			Status:         workflowdomain.StatusPaid,
			IssueDate:      "2026-02-01",
			DueDate:        "2026-02-16",
			LastUpdated:    now.AddDate(0, 0, -9),
			CreatedBy:      catalogdomain.RoleEmployee,
			ApprovalStatus: workflowdomain.ApprovalApproved,
			LineItems: []invoicedomain.LineItem{
				{ID: "li-ledger-003", ServiceID: "svc-soft-001", Description: "Build and integrate tailored CRM module with existing enterprise systems.", Quantity: 2, UnitPrice: 95000},
			},
		},
		{
			ID:             "inv-ledger-004",
			InvoiceNumber:  "ADS-2026-0125-q7c3t9ze",
			ClientID:       "cl-aurora-002",
			Engagement:     "Corporate Website Redesign",
			Currency:       "INR",
			Amount:         185000,
			Status:         workflowdomain.StatusOverdue,
			IssueDate:      "2026-01-25",
			DueDate:        "2026-02-09",
			LastUpdated:    now.AddDate(0, 0, -17),
			CreatedBy:      catalogdomain.RoleCEO,
			ApprovalStatus: workflowdomain.ApprovalApproved,
			LineItems: []invoicedomain.LineItem{
				{ID: "li-ledger-004", ServiceID: "svc-web-001", Description: "Responsive redesign with UX strategy, CMS integration, QA, and deployment.", Quantity: 1, UnitPrice: 185000},
			},
		},
		{
			ID:             "inv-ledger-005",
			InvoiceNumber:  "ADS-2026-0118-m2k8w1qp",
			ClientID:       "cl-aurora-001",
			Engagement:     "Search Engine Optimization Retainer",
			Currency:       "INR",
			Amount:         130000,
			Status:         workflowdomain.StatusPending,
			IssueDate:      "2026-01-18",
			DueDate:        "2026-02-02",
			LastUpdated:    now.AddDate(0, 0, -21),
			CreatedBy:      catalogdomain.RoleEmployee,
			ApprovalStatus: workflowdomain.ApprovalAwaiting,
			LineItems: []invoicedomain.LineItem{
				{ID: "li-ledger-005", ServiceID: "svc-dm-001", Description: "Monthly optimization of on-page, off-page, and technical SEO assets with reporting and analytics.", Quantity: 2, UnitPrice: 65000},
			},
		},
	})
}
