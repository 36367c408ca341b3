package deck

import "github.com/techflow-ai/pitchdeck/internal/chart"

func newPage(id ID, title string, blocks ...Block) Page {
	return Page{
		Section: id,
		Slug:    id.Slug(),
		Label:   id.Label(),
		Title:   title,
		Blocks:  blocks,
	}
}

type homeSection struct{}

func (homeSection) ID() ID { return Home }

func (homeSection) Render() (Page, error) {
	return newPage(Home, "TechFlow AI",
		Card(ToneHero, "TechFlow AI",
			Text("Voice Commerce for 2 Billion WhatsApp Users"),
			Text("Breaking language barriers in e-commerce. Shop in ANY language using voice messages."),
		),
		Columns(nil,
			Stat("🌍", "Global Reach", "2B+", "WhatsApp Users"),
			Stat("🗣️", "Languages", "60+", "Supported"),
			Stat("⚡", "Speed", "1.2s", "Response Time"),
			Stat("💰", "Market", "$2.8T", "Opportunity"),
		),
	), nil
}

type problemSection struct{}

func (problemSection) ID() ID { return Problem }

func (problemSection) Render() (Page, error) {
	preference, err := chart.BuildDonut(
		[]string{"Voice Preferred", "Text Preferred", "Mixed"},
		[]float64{65, 20, 15},
		[]string{"#FF4444", "#FFA500", "#FFD700"},
		"Communication Preference",
		chart.WithHeight(300),
	)
	if err != nil {
		return Page{}, err
	}

	return newPage(Problem, "📊 The $500 Billion Problem",
		Columns([]int{2, 1},
			Card(ToneProblem, "🚨 The Digital Divide Crisis",
				List(
					"780 million people can't type efficiently",
					"65% of emerging markets prefer voice over text",
					"87% of small businesses lose sales due to language barriers",
					"$500 billion in lost e-commerce opportunity annually",
				),
			),
			ChartBlock(preference),
		),
		Card(ToneSolution, "Real People, Real Problems",
			Columns(nil,
				Quote("🇵🇰", "Fatima, Karachi",
					"I want to shop online but typing in English is hard. Voice in Urdu would be perfect."),
				Quote("🇧🇩", "Rahman, Dhaka",
					"My mother can't type. Voice shopping would change her life."),
			),
		),
	), nil
}

type solutionSection struct{}

func (solutionSection) ID() ID { return Solution }

func (solutionSection) Render() (Page, error) {
	return newPage(Solution, "💡 Our Solution",
		Heading(3, "How It Works - 3 Simple Steps"),
		Columns(nil,
			Stat("🎤", "1. Voice Message", "", "Send voice note in ANY language on WhatsApp"),
			Stat("🤖", "2. AI Processing", "", "GPT-5 understands and processes instantly"),
			Stat("✅", "3. Order Complete", "", "Confirmation in customer's language"),
		),
	), nil
}

type demoSection struct{}

func (demoSection) ID() ID { return Demo }

func (demoSection) Render() (Page, error) {
	return newPage(Demo, "🚀 Live Demo",
		Columns([]int{1, 1},
			Card(ToneDemo, "Try It Now!",
				Heading(3, "WhatsApp: +1 415 523 8886"),
				Text(`Send: "join quite-putting" to start`),
				Heading(3, "Test Scenarios:"),
				List(
					`🇵🇰 "Mujhe laptop chahiye" (Urdu)`,
					`🇬🇧 "Show phones under $500" (English)`,
					`🇧🇩 "আমি ফোন কিনতে চাই" (Bengali)`,
				),
			),
			Card(TonePhone, "📱 WhatsApp Demo",
				Text("Screenshots will appear here"),
				Image("https://via.placeholder.com/360x640/25D366/FFFFFF?text=WhatsApp+Demo+1", "Voice message sent"),
				Image("https://via.placeholder.com/360x640/25D366/FFFFFF?text=WhatsApp+Demo+2", "AI response"),
			),
		),
	), nil
}

type techStackSection struct{}

func (techStackSection) ID() ID { return TechStack }

const architectureDiagram = `Customer (WhatsApp)
      ↓
Voice Message (Any Language)
      ↓
Twilio API Gateway
      ↓
Flask Webhook Server
      ↓
┌─────────────────────────┐
│   TechFlow AI Engine    │
│  ┌──────────────────┐   │
│  │ Whisper API      │   │
│  │ (Transcription)  │   │
│  └──────────────────┘   │
│           ↓             │
│  ┌──────────────────┐   │
│  │    GPT-5 API     │   │
│  │  (Understanding) │   │
│  └──────────────────┘   │
└─────────────────────────┘
      ↓
PostgreSQL Database
      ↓
Response Generation
      ↓
Customer (WhatsApp Reply)`

func (techStackSection) Render() (Page, error) {
	tech := func(title, product, role string) Block {
		return Card(ToneTech, title, Text(product), Text(role))
	}
	return newPage(TechStack, "🛠️ Technical Architecture",
		Heading(3, "Our Tech Stack"),
		Columns(nil,
			tech("🎯 Frontend", "Streamlit", "Dashboard & Analytics"),
			tech("⚡ Backend", "FastAPI + Flask", "Webhook & Processing"),
			tech("🧠 AI Engine", "GPT-5 + Whisper", "Language & Voice"),
			tech("💾 Database", "PostgreSQL", "Neon Cloud"),
		),
		Heading(3, "System Architecture"),
		Card(ToneSolution, "", Pre(architectureDiagram)),
	), nil
}

type marketSection struct{}

func (marketSection) ID() ID { return Market }

func (marketSection) Render() (Page, error) {
	growth, err := chart.BuildLine(
		[]float64{2024, 2025, 2026, 2027, 2028},
		[]float64{0.5, 2.4, 8.7, 24.3, 52.8},
		"Revenue (Billions USD)",
		"#0066CC",
		"5-Year Revenue Projection",
		"Billions USD",
		chart.WithHeight(400),
	)
	if err != nil {
		return Page{}, err
	}

	return newPage(Market, "📈 Market Opportunity",
		Columns(nil,
			Stat("", "TAM", "$2.8T", "Global Mobile Commerce"),
			Stat("", "SAM", "$480B", "WhatsApp Commerce"),
			Stat("", "SOM", "$12B", "Year 1 Target"),
		),
		ChartBlock(growth),
	), nil
}

type impactSection struct{}

func (impactSection) ID() ID { return Impact }

func (impactSection) Render() (Page, error) {
	return newPage(Impact, "🎯 Global Impact",
		Columns(nil,
			Card(ToneSolution, "🌍 Social Impact",
				List(
					"780M people gain e-commerce access",
					"60+ languages preserved",
					"45% women entrepreneurs empowered",
					"Rural communities connected",
				),
			),
			Card(ToneProblem, "💰 Economic Impact",
				List(
					"$500B new market unlocked",
					"2.5M jobs created",
					"150K businesses digitized",
					"30% rural income increase",
				),
			),
		),
	), nil
}

type futureSection struct{}

func (futureSection) ID() ID { return Future }

func (futureSection) Render() (Page, error) {
	return newPage(Future, "🔮 The Future",
		Timeline(
			Milestone{When: "Q1 2025", Phase: "🚀 Launch", Description: "10 languages, 3 countries"},
			Milestone{When: "Q2 2025", Phase: "🌍 Expand", Description: "30 languages, 10 countries"},
			Milestone{When: "Q3 2025", Phase: "🤝 Partner", Description: "Shopify & WooCommerce"},
			Milestone{When: "Q4 2025", Phase: "📱 Scale", Description: "1M+ merchants"},
			Milestone{When: "2026", Phase: "🎯 Lead", Description: "Market leader position"},
		),
		Divider(),
		Card(ToneHero, "Ready to Join the Revolution?",
			Text("Be part of the future where commerce speaks every language"),
			Links(
				Link{Text: "🚀 Get Early Access", Href: "#"},
				Link{Text: "🤝 Partner With Us", Href: "#"},
			),
		),
	), nil
}
