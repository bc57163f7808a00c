// Package content carries the built-in quick-prompt catalog shown on an
// empty conversation screen.
package content

import "math/rand"

// QuickPrompt is one suggested starting question.
type QuickPrompt struct {
	Title       string
	Description string
	Prompt      string
}

// PromptSet groups four quick prompts under a themed heading.
type PromptSet struct {
	Title       string
	Description string
	Prompts     []QuickPrompt
}

// Catalog holds every built-in prompt set. Sets rotate; prompts within a
// set keep their order.
var Catalog = []PromptSet{
	{
		Title:       "DOMA AI",
		Description: "Get instant insights on drilling, production, safety protocols, and equipment maintenance.",
		Prompts: []QuickPrompt{
			{
				Title:       "Drilling Operations",
				Description: "Optimize drilling parameters and monitor wellbore conditions",
				Prompt:      "How can I optimize drilling parameters for better penetration rates?",
			},
			{
				Title:       "Production Analysis",
				Description: "Analyze production data and identify optimization opportunities",
				Prompt:      "What are the best practices for production data analysis in oil fields?",
			},
			{
				Title:       "Safety Protocols",
				Description: "Access HSE guidelines and safety procedures",
				Prompt:      "What safety protocols should be followed during offshore operations?",
			},
			{
				Title:       "Equipment Maintenance",
				Description: "Get maintenance schedules and troubleshooting guides",
				Prompt:      "What is the recommended maintenance schedule for rotating equipment?",
			},
		},
	},
	{
		Title:       "DOMA AI",
		Description: "Access expert knowledge on reservoir engineering, well completion, and production optimization.",
		Prompts: []QuickPrompt{
			{
				Title:       "Reservoir Engineering",
				Description: "Optimize reservoir modeling and enhance recovery techniques",
				Prompt:      "What are the latest enhanced oil recovery techniques for mature fields?",
			},
			{
				Title:       "Well Completion",
				Description: "Design efficient completion strategies and perforation programs",
				Prompt:      "How do I design an optimal completion strategy for horizontal wells?",
			},
			{
				Title:       "Flow Assurance",
				Description: "Prevent flow assurance issues and optimize production rates",
				Prompt:      "What are the best practices for preventing hydrate formation in deepwater?",
			},
			{
				Title:       "Facility Design",
				Description: "Design and optimize surface facilities and processing equipment",
				Prompt:      "How can I optimize separator design for maximum oil recovery?",
			},
		},
	},
	{
		Title:       "DOMA AI",
		Description: "Get insights on refining processes, petrochemicals, and plant optimization.",
		Prompts: []QuickPrompt{
			{
				Title:       "Refining Processes",
				Description: "Optimize crude oil processing and product yields",
				Prompt:      "How can I improve the efficiency of my distillation unit?",
			},
			{
				Title:       "Catalyst Management",
				Description: "Maximize catalyst life and performance in refining units",
				Prompt:      "What are the best practices for catalyst regeneration in FCC units?",
			},
			{
				Title:       "Energy Integration",
				Description: "Reduce energy consumption through heat integration",
				Prompt:      "How can I implement heat integration to reduce energy costs?",
			},
			{
				Title:       "Process Control",
				Description: "Implement advanced process control strategies",
				Prompt:      "What advanced control strategies work best for crude units?",
			},
		},
	},
}

// RandomSet picks one prompt set for the welcome screen.
func RandomSet() PromptSet {
	return Catalog[rand.Intn(len(Catalog))]
}
