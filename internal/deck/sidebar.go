package deck

// Metric is a label/value pair shown in the sidebar.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Sidebar is the static chrome shown beside navigation.
type Sidebar struct {
	Brand      string   `json:"brand"`
	QuickStats []Metric `json:"quick_stats"`
	Contact    []string `json:"contact"`
}

// DefaultSidebar returns the TechFlow AI sidebar.
func DefaultSidebar() Sidebar {
	return Sidebar{
		Brand: "🎯 TechFlow AI",
		QuickStats: []Metric{
			{Label: "Active Demo", Value: "Live Now 🟢"},
			{Label: "Languages", Value: "60+"},
			{Label: "Response Time", Value: "1.2s"},
		},
		Contact: []string{
			"📧 team@techflow.ai",
			"📱 +1 415 523 8886",
		},
	}
}
