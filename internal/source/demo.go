package source

import "context"

const demoSourceName = "demo"

// demoHeadlines is the fixed set served when feeds are unavailable or
// demo mode is enabled.
var demoHeadlines = []Headline{
	{
		Text:      "Scientists Discover New Method to Convert CO2 into Renewable Fuel",
		Link:      "https://example.com/climate-breakthrough",
		Source:    "Science Daily",
		Published: "Today",
	},
	{
		Text:      "Major Tech Company Announces Revolutionary AI Chip with 10x Performance",
		Link:      "https://example.com/ai-chip",
		Source:    "Tech News",
		Published: "Today",
	},
	{
		Text:      "Global Leaders Reach Historic Agreement on Climate Change at Summit",
		Link:      "https://example.com/climate-summit",
		Source:    "World News",
		Published: "Today",
	},
	{
		Text:      "Breakthrough in Quantum Computing Brings Practical Applications Closer",
		Link:      "https://example.com/quantum",
		Source:    "Technology",
		Published: "Today",
	},
	{
		Text:      "New Study Shows Promising Results for Cancer Treatment Using CRISPR",
		Link:      "https://example.com/crispr-cancer",
		Source:    "Medical News",
		Published: "Today",
	},
	{
		Text:      "SpaceX Successfully Launches Mission to Establish Lunar Base",
		Link:      "https://example.com/moon-base",
		Source:    "Space News",
		Published: "Today",
	},
	{
		Text:      "Researchers Develop Battery Technology with 5x Longer Life",
		Link:      "https://example.com/battery-tech",
		Source:    "Innovation Daily",
		Published: "Today",
	},
	{
		Text:      "Major Cybersecurity Vulnerability Discovered in Popular Software",
		Link:      "https://example.com/security-alert",
		Source:    "Security News",
		Published: "Today",
	},
}

// DemoSource serves a fixed headline set without touching the network.
type DemoSource struct{}

// NewDemo creates a demo source.
func NewDemo() *DemoSource {
	return &DemoSource{}
}

func (ds *DemoSource) Name() string {
	return demoSourceName
}

// Fetch returns a copy of the demo headlines so callers may reorder freely.
func (ds *DemoSource) Fetch(_ context.Context) ([]Headline, error) {
	out := make([]Headline, len(demoHeadlines))
	copy(out, demoHeadlines)
	return out, nil
}
