package services

import (
	"fmt"
	"time"

	"casepilot/models"

	"gorm.io/gorm"
)

// SeedResult reports how many records were inserted per collection.
type SeedResult struct {
	Clients       int `json:"clients"`
	Cases         int `json:"cases"`
	Documents     int `json:"documents"`
	Tasks         int `json:"tasks"`
	Notifications int `json:"notifications"`
}

var seedAttorneys = []string{
	"Arjun Mehta", "Elena Vasquez", "Daniel Okafor", "Sofia Petrov", "Kevin Liang",
}

func daysFromNow(n int) *time.Time {
	d := time.Now().AddDate(0, 0, n)
	return &d
}

func monthsAgo(n int) *time.Time {
	d := time.Now().AddDate(0, -n, 0)
	return &d
}

// Seed wipes all collections and loads a demo data set.
func Seed(db *gorm.DB) (*SeedResult, error) {
	for _, model := range []interface{}{
		&models.Case{}, &models.Client{}, &models.Document{},
		&models.Task{}, &models.Notification{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return nil, fmt.Errorf("failed to clear collection: %w", err)
		}
	}

	clients := []models.Client{
		{FullName: "Blackwell Logistics Inc.", Email: "legal@blackwell-logistics.com", Mobile: "+1-212-555-0101", Organisation: "Blackwell Logistics Inc.", ClientType: "Corporation", City: "New York", Country: "United States", Tier: models.ClientTierVIP, Standing: models.ClientStandingActive, OpenCases: 3, ClosedCases: 5, BilledTotal: 1850000, InternalNotes: "Long-standing corporate client. Priority handling required.", OnboardedAt: monthsAgo(24)},
		{FullName: "Margaret O. Sullivan", Email: "margaret.sullivan@proton.me", Mobile: "+1-415-555-0202", ClientType: "Individual", City: "San Francisco", Country: "United States", Tier: models.ClientTierPremium, Standing: models.ClientStandingActive, OpenCases: 1, ClosedCases: 2, BilledTotal: 420000, InternalNotes: "Estate planning and family matters.", OnboardedAt: monthsAgo(18)},
		{FullName: "TechNova LLC", Email: "counsel@technova.io", Mobile: "+1-650-555-0303", Organisation: "TechNova LLC", ClientType: "Corporation", City: "Palo Alto", Country: "United States", Tier: models.ClientTierVIP, Standing: models.ClientStandingActive, OpenCases: 2, ClosedCases: 1, BilledTotal: 2200000, InternalNotes: "Major IP client. Multiple ongoing patent disputes.", OnboardedAt: monthsAgo(12)},
		{FullName: "Carlos Ramos", Email: "carlos.ramos@email.com", Mobile: "+1-305-555-0404", ClientType: "Individual", City: "Miami", Country: "United States", Tier: models.ClientTierStandard, Standing: models.ClientStandingActive, OpenCases: 1, BilledTotal: 75000, InternalNotes: "Criminal defense case. Pro-bono consideration pending.", OnboardedAt: monthsAgo(6)},
		{FullName: "Frontier Capital Partners", Email: "legal@frontiercapital.com", Mobile: "+1-312-555-0505", Organisation: "Frontier Capital Partners", ClientType: "Corporation", City: "Chicago", Country: "United States", Tier: models.ClientTierPremium, Standing: models.ClientStandingActive, OpenCases: 2, ClosedCases: 3, BilledTotal: 980000, InternalNotes: "Investment fund. Complex securities matters.", OnboardedAt: monthsAgo(20)},
		{FullName: "Greenleaf Housing Authority", Email: "procurement@greenleafha.gov", Mobile: "+1-202-555-0606", Organisation: "Greenleaf Housing Authority", ClientType: "Government", City: "Washington D.C.", Country: "United States", Tier: models.ClientTierPremium, Standing: models.ClientStandingActive, OpenCases: 2, ClosedCases: 4, BilledTotal: 560000, InternalNotes: "Government contracts. Strict compliance deadlines.", OnboardedAt: monthsAgo(30)},
		{FullName: "Pinnacle Real Estate Group", Email: "legal@pinnaclereg.com", Mobile: "+1-310-555-0909", Organisation: "Pinnacle Real Estate Group", ClientType: "Corporation", City: "Los Angeles", Country: "United States", Tier: models.ClientTierPremium, Standing: models.ClientStandingActive, OpenCases: 2, ClosedCases: 2, BilledTotal: 1450000, InternalNotes: "Commercial real estate portfolio.", OnboardedAt: monthsAgo(22)},
		{FullName: "David & Rachel Goodwin", Email: "goodwins@familymail.com", Mobile: "+1-404-555-1010", ClientType: "Individual", City: "Atlanta", Country: "United States", Tier: models.ClientTierStandard, Standing: models.ClientStandingInactive, ClosedCases: 2, BilledTotal: 95000, InternalNotes: "Family matter concluded. May re-engage for estate planning.", OnboardedAt: monthsAgo(16)},
	}
	if err := db.Create(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to seed clients: %w", err)
	}

	year := time.Now().Year()
	ref := func(seq int) string { return fmt.Sprintf("CP-%d-%04d", year, seq) }

	cases := []models.Case{
		{Ref: ref(1), Title: "Hendricks Corp v. Blackwell Logistics — Breach of Contract", Category: "Corporate", Status: models.CaseStatusActive, Urgency: models.UrgencyHigh, ClientID: &clients[0].ID, LeadAttorney: "Arjun Mehta", SupportingCounsel: "Elena Vasquez", Court: "U.S. District Court, Southern District of NY", HearingDate: daysFromNow(12), FiledOn: monthsAgo(3), PortfolioValue: 750000, Overview: "Breach of contract claim involving shipping logistics agreement.", Labels: []string{"high-profile", "breach"}},
		{Ref: ref(2), Title: "In re: Estate of Margaret O. Sullivan", Category: "Family", Status: models.CaseStatusPending, Urgency: models.UrgencyStandard, ClientID: &clients[1].ID, LeadAttorney: "Sofia Petrov", Court: "San Francisco Probate Court", HearingDate: daysFromNow(25), FiledOn: monthsAgo(2), PortfolioValue: 1200000, Overview: "Probate proceedings for estate distribution.", Labels: []string{"estate", "probate"}},
		{Ref: ref(3), Title: "TechNova LLC Patent Dispute — Claim 14 Infringement", Category: "Intellectual Property", Status: models.CaseStatusActive, Urgency: models.UrgencyCritical, ClientID: &clients[2].ID, LeadAttorney: "Elena Vasquez", SupportingCounsel: "Kevin Liang", Court: "U.S. Patent Trial and Appeal Board", HearingDate: daysFromNow(5), FiledOn: monthsAgo(5), PortfolioValue: 4500000, Overview: "Patent infringement claim against ClearView Systems.", Labels: []string{"patent", "ip", "high-profile"}},
		{Ref: ref(4), Title: "State v. Ramos — Second Degree Felony", Category: "Criminal", Status: models.CaseStatusActive, Urgency: models.UrgencyCritical, ClientID: &clients[3].ID, LeadAttorney: "Daniel Okafor", SupportingCounsel: "Arjun Mehta", Court: "Miami-Dade Circuit Court, Criminal Division", HearingDate: daysFromNow(3), FiledOn: monthsAgo(4), PortfolioValue: 75000, Overview: "Defense strategy centers on challenging evidence chain of custody.", Labels: []string{"criminal", "pro-bono"}},
		{Ref: ref(5), Title: "Frontier Capital v. SEC — Securities Compliance Review", Category: "Corporate", Status: models.CaseStatusOnHold, Urgency: models.UrgencyHigh, ClientID: &clients[4].ID, LeadAttorney: "Arjun Mehta", SupportingCounsel: "Sofia Petrov", Court: "U.S. Securities and Exchange Commission", HearingDate: daysFromNow(45), FiledOn: monthsAgo(6), PortfolioValue: 3200000, Overview: "SEC investigation into potential insider trading activities.", Labels: []string{"sec", "securities", "compliance"}},
		{Ref: ref(6), Title: "Greenleaf HA v. Morrison Developers — Zoning Violation", Category: "Real Estate", Status: models.CaseStatusActive, Urgency: models.UrgencyStandard, ClientID: &clients[5].ID, LeadAttorney: "Kevin Liang", SupportingCounsel: "Elena Vasquez", Court: "D.C. Superior Court, Civil Division", HearingDate: daysFromNow(18), FiledOn: monthsAgo(2), PortfolioValue: 890000, Overview: "Housing authority challenging private developer zoning permit.", Labels: []string{"zoning", "government"}},
		{Ref: ref(7), Title: "Hernandez-Park Immigration Appeal — H-1B Denial", Category: "Immigration", Status: models.CaseStatusAppeal, Urgency: models.UrgencyHigh, ClientID: &clients[1].ID, LeadAttorney: "Sofia Petrov", SupportingCounsel: "Daniel Okafor", Court: "Board of Immigration Appeals", HearingDate: daysFromNow(30), FiledOn: monthsAgo(3), PortfolioValue: 35000, Overview: "Appeal of H-1B visa denial.", Labels: []string{"immigration", "visa", "appeal"}},
		{Ref: ref(8), Title: "Goodwin Family Trust — Custody Modification", Category: "Family", Status: models.CaseStatusClosed, Urgency: models.UrgencyLow, ClientID: &clients[7].ID, LeadAttorney: "Sofia Petrov", Court: "Fulton County Family Court", HearingDate: monthsAgo(1), FiledOn: monthsAgo(8), PortfolioValue: 45000, Overview: "Modification of custody arrangement. Settled by mediation agreement.", Labels: []string{"family", "custody", "settled"}},
		{Ref: ref(9), Title: "Frontier Capital — Limited Partnership Dissolution", Category: "Corporate", Status: models.CaseStatusClosed, Urgency: models.UrgencyLow, ClientID: &clients[4].ID, LeadAttorney: "Kevin Liang", SupportingCounsel: "Arjun Mehta", Court: "Cook County Circuit Court", HearingDate: monthsAgo(2), FiledOn: monthsAgo(10), PortfolioValue: 620000, Overview: "Dissolution of limited partnership fund. Final accounting filed.", Labels: []string{"dissolution", "partnership", "won"}},
		{Ref: ref(10), Title: "Pinnacle REG v. City of Los Angeles — Eminent Domain", Category: "Real Estate", Status: models.CaseStatusActive, Urgency: models.UrgencyHigh, ClientID: &clients[6].ID, LeadAttorney: "Elena Vasquez", SupportingCounsel: "Kevin Liang", Court: "California Superior Court, Los Angeles", HearingDate: daysFromNow(8), FiledOn: monthsAgo(4), PortfolioValue: 5600000, Overview: "Challenging municipal eminent domain action.", Labels: []string{"eminent-domain", "real-estate"}},
		{Ref: ref(11), Title: "In re: Sullivan Family Trust Amendment", Category: "Family", Status: models.CaseStatusClosed, Urgency: models.UrgencyLow, ClientID: &clients[1].ID, LeadAttorney: "Sofia Petrov", Court: "San Francisco Probate Court", HearingDate: monthsAgo(3), FiledOn: monthsAgo(7), PortfolioValue: 800000, Overview: "Amendment to irrevocable family trust. Filed and accepted.", Labels: []string{"trust", "family"}},
		{Ref: ref(12), Title: "State v. Thompson — White Collar Fraud Investigation", Category: "Criminal", Status: models.CaseStatusAppeal, Urgency: models.UrgencyCritical, ClientID: &clients[4].ID, LeadAttorney: "Arjun Mehta", SupportingCounsel: "Elena Vasquez", Court: "U.S. District Court, Northern District of Illinois", HearingDate: daysFromNow(20), FiledOn: monthsAgo(5), PortfolioValue: 2100000, Overview: "Appeal of wire fraud conviction.", Labels: []string{"criminal", "fraud", "appeal"}},
	}
	if err := db.Create(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to seed cases: %w", err)
	}

	documents := []models.Document{
		{Name: "Logistics Services Agreement (Executed)", CaseID: &cases[0].ID, DocType: "Contract", ReviewStatus: models.DocStatusFiled, PreparedBy: "Arjun Mehta", Revision: 3, DueBy: monthsAgo(2), Labels: []string{"executed"}},
		{Name: "Motion to Dismiss — Force Majeure", CaseID: &cases[0].ID, DocType: "Motion", ReviewStatus: models.DocStatusUnderReview, PreparedBy: "Elena Vasquez", Revision: 2, DueBy: daysFromNow(4), Remarks: "Awaiting partner review before filing."},
		{Name: "Amended Will (2024) — Certified Copy", CaseID: &cases[1].ID, DocType: "Evidence", ReviewStatus: models.DocStatusApproved, PreparedBy: "Sofia Petrov", DueBy: daysFromNow(10)},
		{Name: "Patent US-10,234,567 Claim Chart", CaseID: &cases[2].ID, DocType: "Legal Brief", ReviewStatus: models.DocStatusDraft, PreparedBy: "Kevin Liang", DueBy: daysFromNow(2), Labels: []string{"patent"}},
		{Name: "Chain of Custody Affidavit", CaseID: &cases[3].ID, DocType: "Affidavit", ReviewStatus: models.DocStatusSubmitted, PreparedBy: "Daniel Okafor", DueBy: daysFromNow(1)},
		{Name: "SEC Voluntary Disclosure Package", CaseID: &cases[4].ID, DocType: "Legal Brief", ReviewStatus: models.DocStatusUnderReview, PreparedBy: "Arjun Mehta", Revision: 4, DueBy: daysFromNow(14)},
		{Name: "Zoning Permit Challenge — Exhibit Bundle", CaseID: &cases[5].ID, DocType: "Evidence", ReviewStatus: models.DocStatusDraft, PreparedBy: "Kevin Liang", DueBy: daysFromNow(9)},
		{Name: "H-1B Specialty Occupation Brief", CaseID: &cases[6].ID, DocType: "Legal Brief", ReviewStatus: models.DocStatusRejected, PreparedBy: "Sofia Petrov", Revision: 2, DueBy: monthsAgo(1), Remarks: "Rejected for insufficient citations. Revision in progress."},
		{Name: "Mediation Settlement Agreement", CaseID: &cases[7].ID, DocType: "Settlement", ReviewStatus: models.DocStatusFiled, PreparedBy: "Sofia Petrov", DueBy: monthsAgo(2)},
		{Name: "Partnership Final Accounting", CaseID: &cases[8].ID, DocType: "Court Order", ReviewStatus: models.DocStatusFiled, PreparedBy: "Kevin Liang", DueBy: monthsAgo(3)},
	}
	if err := db.Create(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to seed documents: %w", err)
	}

	tasks := []models.Task{
		{Title: "Draft opposition to force majeure defense", CaseID: &cases[0].ID, Owner: "Arjun Mehta", CreatedBy: "Elena Vasquez", Urgency: models.UrgencyHigh, Stage: models.TaskStageInProgress, Deadline: daysFromNow(5), PlannedHours: 12, LoggedHours: 7.5, Progress: 60, Checklist: []models.ChecklistItem{{Item: "Review shipping contracts", Done: true}, {Item: "Outline argument", Done: true}, {Item: "Draft brief", Done: false}}},
		{Title: "Depose logistics operations manager", CaseID: &cases[0].ID, Owner: "Elena Vasquez", CreatedBy: "Arjun Mehta", Urgency: models.UrgencyStandard, Stage: models.TaskStageTodo, Deadline: daysFromNow(12), PlannedHours: 6},
		{Title: "File probate inventory", CaseID: &cases[1].ID, Owner: "Sofia Petrov", CreatedBy: "Sofia Petrov", Urgency: models.UrgencyStandard, Stage: models.TaskStageDone, Deadline: daysFromNow(-3), ResolvedAt: daysFromNow(-5), PlannedHours: 4, LoggedHours: 3.5, Progress: 100},
		{Title: "Prepare claim construction brief", CaseID: &cases[2].ID, Owner: "Kevin Liang", CreatedBy: "Elena Vasquez", Urgency: models.UrgencyCritical, Stage: models.TaskStageReview, Deadline: daysFromNow(2), PlannedHours: 20, LoggedHours: 18, Progress: 90},
		{Title: "Subpoena evidence room logs", CaseID: &cases[3].ID, Owner: "Daniel Okafor", CreatedBy: "Daniel Okafor", Urgency: models.UrgencyCritical, Stage: models.TaskStageInProgress, Deadline: daysFromNow(1), PlannedHours: 3, LoggedHours: 2, Progress: 70},
		{Title: "Compile trading records for SEC response", CaseID: &cases[4].ID, Owner: "Arjun Mehta", CreatedBy: "Sofia Petrov", Urgency: models.UrgencyHigh, Stage: models.TaskStageBacklog, Deadline: daysFromNow(30), PlannedHours: 16},
		{Title: "Site visit — disputed development parcel", CaseID: &cases[5].ID, Owner: "Kevin Liang", CreatedBy: "Kevin Liang", Urgency: models.UrgencyLow, Stage: models.TaskStageDone, Deadline: daysFromNow(-10), ResolvedAt: daysFromNow(-8), PlannedHours: 5, LoggedHours: 6, Progress: 100},
		{Title: "Rewrite specialty occupation argument", CaseID: &cases[6].ID, Owner: "Sofia Petrov", CreatedBy: "Daniel Okafor", Urgency: models.UrgencyHigh, Stage: models.TaskStageInProgress, Deadline: daysFromNow(7), PlannedHours: 10, LoggedHours: 4, Progress: 40},
		{Title: "Close out custody file", CaseID: &cases[7].ID, Owner: "Sofia Petrov", CreatedBy: "Sofia Petrov", Urgency: models.UrgencyLow, Stage: models.TaskStageDone, Deadline: monthsAgo(1), ResolvedAt: monthsAgo(1), PlannedHours: 2, LoggedHours: 1.5, Progress: 100},
		{Title: "Archive partnership dissolution records", CaseID: &cases[8].ID, Owner: "Kevin Liang", CreatedBy: "Arjun Mehta", Urgency: models.UrgencyLow, Stage: models.TaskStageDropped, Deadline: monthsAgo(2), PlannedHours: 1},
		{Title: "Draft appraisal rebuttal", CaseID: &cases[9].ID, Owner: "Elena Vasquez", CreatedBy: "Elena Vasquez", Urgency: models.UrgencyHigh, Stage: models.TaskStageTodo, Deadline: daysFromNow(6), PlannedHours: 8},
		{Title: "Prepare appellate argument outline", CaseID: &cases[11].ID, Owner: "Arjun Mehta", CreatedBy: "Elena Vasquez", Urgency: models.UrgencyCritical, Stage: models.TaskStageInProgress, Deadline: daysFromNow(15), PlannedHours: 14, LoggedHours: 5, Progress: 35},
	}
	if err := db.Create(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to seed tasks: %w", err)
	}

	notifications := []models.Notification{
		{Level: models.NotificationLevelSuccess, Heading: "Case created", Body: fmt.Sprintf("Case %q was created by Arjun Mehta.", cases[0].Title), Entity: "Case", Action: models.NotificationActionCreated, EntityID: cases[0].ID, TriggeredBy: "Arjun Mehta"},
		{Level: models.NotificationLevelInfo, Heading: "Document updated", Body: "Document \"SEC Voluntary Disclosure Package\" was updated by Arjun Mehta.", Entity: "Document", Action: models.NotificationActionUpdated, EntityID: documents[5].ID, TriggeredBy: "Arjun Mehta"},
		{Level: models.NotificationLevelWarning, Heading: "Hearing approaching", Body: fmt.Sprintf("Hearing for %s is in 3 days.", cases[3].Ref), Entity: "Case", EntityID: cases[3].ID},
		{Level: models.NotificationLevelSuccess, Heading: "Task created", Body: "Task \"Draft appraisal rebuttal\" was created by Elena Vasquez.", Entity: "Task", Action: models.NotificationActionCreated, EntityID: tasks[10].ID, TriggeredBy: "Elena Vasquez"},
	}
	if err := db.Create(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to seed notifications: %w", err)
	}

	return &SeedResult{
		Clients:       len(clients),
		Cases:         len(cases),
		Documents:     len(documents),
		Tasks:         len(tasks),
		Notifications: len(notifications),
	}, nil
}
