package chat

import (
	"fmt"
	"strings"
)

// Product describes one entry of the EliseAI product catalog.
type Product struct {
	Name        string
	Tagline     string
	Description string
	KeyFeatures []string
	IdealFor    string
}

// products is the catalog in presentation order. The order is part of the
// persona prompt and the quick-reply menu, so keep it stable.
var products = []Product{
	{
		Name:        "LeasingAI",
		Tagline:     "24/7 AI Leasing Assistant",
		Description: "An AI assistant that handles prospect inquiries 24/7, schedules tours, answers questions about pricing and amenities, and helps boost lead-to-lease rates.",
		KeyFeatures: []string{
			"24/7 prospect inquiry handling",
			"Automated tour scheduling",
			"Pricing and amenity information",
			"Lead qualification",
			"Increased lead-to-lease conversion",
		},
		IdealFor: "Property management companies looking to improve leasing efficiency and capture more leads",
	},
	{
		Name:        "MaintenanceAI",
		Tagline:     "AI-Powered Maintenance Workflow",
		Description: "Streamlines the maintenance workflow through AI-powered technician assignment, work order management, and integration with property management systems.",
		KeyFeatures: []string{
			"Automated technician assignment",
			"Smart work order management",
			"Property management system integration",
			"Workflow optimization",
			"Reduced response times",
		},
		IdealFor: "Operations teams managing high volumes of maintenance requests",
	},
	{
		Name:        "DelinquencyAI",
		Tagline:     "Automated Payment Management",
		Description: "Automatically sends payment reminders, follows up on outstanding payments, and helps reduce delinquency rates.",
		KeyFeatures: []string{
			"Automated payment reminders",
			"Intelligent follow-up sequences",
			"Delinquency rate reduction",
			"Personalized communication",
			"Payment plan management",
		},
		IdealFor: "Property managers focused on improving collections and cash flow",
	},
	{
		Name:        "LeaseAudits",
		Tagline:     "Automated Lease Compliance",
		Description: "Helps ensure lease compliance and accuracy through automated review processes.",
		KeyFeatures: []string{
			"Automated lease review",
			"Compliance checking",
			"Error detection",
			"Risk mitigation",
			"Audit trail documentation",
		},
		IdealFor: "Legal and compliance teams managing large portfolios",
	},
	{
		Name:        "EliseCRM",
		Tagline:     "AI-First Real Estate CRM",
		Description: "A comprehensive CRM platform that serves as a hub for prospect and resident information, reporting, and operational workflows.",
		KeyFeatures: []string{
			"Centralized prospect and resident data",
			"Advanced reporting and analytics",
			"Operational workflow management",
			"Integration with all EliseAI products",
			"Customizable dashboards",
		},
		IdealFor: "Property management companies looking for a centralized operations hub",
	},
}

// ProductNames returns the catalog product names in order.
func ProductNames() []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

// productOverview renders the catalog section embedded in the persona prompt.
func productOverview() string {
	var b strings.Builder
	b.WriteString("## EliseAI Products\n\n")

	for _, p := range products {
		fmt.Fprintf(&b, "### %s: %s\n", p.Name, p.Tagline)
		b.WriteString(p.Description + "\n\n")
		b.WriteString("Key Features:\n")
		for _, feature := range p.KeyFeatures {
			b.WriteString("- " + feature + "\n")
		}
		fmt.Fprintf(&b, "\nIdeal for: %s\n\n", p.IdealFor)
	}

	return b.String()
}

// ProductMenu returns the quick-reply buttons for product selection: one per
// product plus a free-form option.
func ProductMenu() []QuickReply {
	return []QuickReply{
		{Label: "🏢 LeasingAI", Value: "Tell me about LeasingAI"},
		{Label: "🔧 MaintenanceAI", Value: "Tell me about MaintenanceAI"},
		{Label: "💰 DelinquencyAI", Value: "Tell me about DelinquencyAI"},
		{Label: "📋 LeaseAudits", Value: "Tell me about LeaseAudits"},
		{Label: "📊 EliseCRM", Value: "Tell me about EliseCRM"},
		{Label: "💬 Discuss my needs", Value: "I'd like to discuss my specific challenges"},
	}
}
