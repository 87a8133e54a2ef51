package quiz

import "strings"

// Category is a PMO competency area. Its value is the display label, which
// is also the key used in prompts and in the recommendation JSON.
type Category string

const (
	Governance           Category = "Governance & Standards"
	ResourceManagement   Category = "Resource Management"
	PerformanceReporting Category = "Performance & Reporting"
	StrategicAlignment   Category = "Strategic Alignment"
	RiskManagement       Category = "Risk & Issue Management"
)

var categories = []Category{
	Governance,
	ResourceManagement,
	PerformanceReporting,
	StrategicAlignment,
	RiskManagement,
}

// Categories returns all categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

// Short returns the first word of the label, used for chart axes.
func (c Category) Short() string {
	s := string(c)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func (c Category) String() string { return string(c) }
