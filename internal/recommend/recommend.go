package recommend

import "slices"

const (
	Frontend  = "frontend"
	Fullstack = "fullstack"
	Premium   = "premium"
)

type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type Package struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
	Timeline string   `json:"timeline"`
}

var questions = []Question{
	{
		ID:       "start",
		Question: "Hi! I'm here to help you choose the perfect website package. What type of website are you looking to build?",
		Options:  []string{"Landing Page", "Business Website", "E-commerce Store", "Blog"},
	},
	{
		ID:       "features",
		Question: "What features do you need for your website?",
		Options: []string{
			"Contact Forms",
			"Blog/News Section",
			"Admin Panel",
			"User Authentication",
			"Payment Integration",
			"SEO Optimization",
		},
	},
	{
		ID:       "timeline",
		Question: "What's your preferred timeline for completion?",
		Options:  []string{"1-2 weeks", "3-4 weeks", "1-2 months", "Flexible"},
	},
}

var packages = map[string]Package{
	Frontend: {
		Name:     "Frontend Development Pack",
		Price:    "$499 - $1,999",
		Features: []string{"Responsive Design", "Modern UI/UX", "Contact Forms", "Basic SEO", "Mobile Optimized"},
		Timeline: "1-2 weeks",
	},
	Fullstack: {
		Name:  "Full Stack Website Pack",
		Price: "$1,999 - $4,999",
		Features: []string{
			"Frontend + Backend",
			"Database Integration",
			"User Authentication",
			"Admin Panel",
			"API Development",
			"Advanced SEO",
		},
		Timeline: "3-4 weeks",
	},
	Premium: {
		Name:  "Premium Enterprise Pack",
		Price: "$4,999 - $9,999",
		Features: []string{
			"Everything in Full Stack",
			"E-commerce Features",
			"Payment Integration",
			"Advanced Analytics",
			"Hosting & Maintenance",
			"24/7 Support",
		},
		Timeline: "1-2 months",
	},
}

// answers that require a backend with accounts or payments
var premiumFeatures = []string{"Admin Panel", "User Authentication", "Payment Integration"}

// Questions returns a copy of the survey script.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}

// Packages returns a copy of the package catalogue keyed by id.
func Packages() map[string]Package {
	out := make(map[string]Package, len(packages))
	for id, p := range packages {
		p.Features = slices.Clone(p.Features)
		out[id] = p
	}
	return out
}

// Recommend picks a package for the given answers. Matching is exact and
// order-independent; the first rule that applies wins.
func Recommend(answers []string) (string, Package) {
	id := Fullstack

	switch {
	case slices.Contains(answers, "E-commerce Store") || slices.ContainsFunc(answers, isPremiumFeature):
		id = Premium
	case slices.Contains(answers, "Landing Page"):
		id = Frontend
	}

	return id, Packages()[id]
}

func isPremiumFeature(answer string) bool {
	return slices.Contains(premiumFeatures, answer)
}
