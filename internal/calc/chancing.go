package calc

import (
	"math"
	"sort"
)

type Tier string

const (
	Likely Tier = "Likely"
	Target Tier = "Target"
	Reach  Tier = "Reach"
)

// Campuses in their fixed presentation order.
var Campuses = []string{
	"UC Berkeley", "UCLA", "UC San Diego", "UC Irvine",
	"UC Davis", "UC Santa Barbara", "UC Santa Cruz", "UC Riverside", "UC Merced",
}

// campusShortNames maps the bare city names some clients send.
var campusShortNames = map[string]string{
	"Berkeley":      "UC Berkeley",
	"Los Angeles":   "UCLA",
	"San Diego":     "UC San Diego",
	"Irvine":        "UC Irvine",
	"Davis":         "UC Davis",
	"Santa Barbara": "UC Santa Barbara",
	"Santa Cruz":    "UC Santa Cruz",
	"Riverside":     "UC Riverside",
	"Merced":        "UC Merced",
}

// CampusName resolves a full campus name or its short city name.
func CampusName(s string) (string, bool) {
	if full, ok := campusShortNames[s]; ok {
		return full, true
	}
	for _, c := range Campuses {
		if c == s {
			return c, true
		}
	}
	return "", false
}

var campusAdjustment = map[string]int{
	"UC Berkeley":  -15,
	"UCLA":         -15,
	"UC Riverside": 15,
	"UC Merced":    15,
}

type ChancingInput struct {
	GPA        float64
	Activities int
	Essays     int
	SATScore   *int // optional
	// SelectedCampuses limits the results; empty means every campus.
	// Full names and short city names are both accepted.
	SelectedCampuses []string
	// SortByChance orders results by descending chance instead of campus order.
	SortByChance bool
}

type CampusChance struct {
	Campus string `json:"campus"`
	Chance int    `json:"chance"`
	Tier   Tier   `json:"tier"`
}

type ChancingResult struct {
	Results           []CampusChance `json:"results"`
	OverallAssessment string         `json:"overallAssessment"`
}

func (in ChancingInput) Validate() error {
	var v ValidationError
	if math.IsNaN(in.GPA) || in.GPA < 2.0 || in.GPA > 5.0 {
		v.Add("gpa", "must be between 2.0 and 5.0")
	}
	if in.Activities < 1 || in.Activities > 5 {
		v.Add("activities", "must be between 1 and 5")
	}
	if in.Essays < 1 || in.Essays > 5 {
		v.Add("essays", "must be between 1 and 5")
	}
	if in.SATScore != nil && (*in.SATScore < minSAT || *in.SATScore > maxSAT) {
		v.Add("satScore", "SAT score must be between 400 and 1600")
	}
	for _, c := range in.SelectedCampuses {
		if _, ok := CampusName(c); !ok {
			v.Add("selectedCampuses", "Unknown campus: "+c)
		}
	}
	return v.Err()
}

// UCChances scores each campus with an additive point model. It is a
// deterministic heuristic, not a calibrated probability.
func UCChances(in ChancingInput) (ChancingResult, error) {
	if err := in.Validate(); err != nil {
		return ChancingResult{}, err
	}
	base := gpaPoints(in.GPA) + min(20, in.Activities*4) + min(15, in.Essays*3)
	if in.SATScore != nil {
		base += satPoints(*in.SATScore)
	}

	selected := map[string]bool{}
	for _, c := range in.SelectedCampuses {
		full, _ := CampusName(c)
		selected[full] = true
	}

	results := make([]CampusChance, 0, len(Campuses))
	for _, campus := range Campuses {
		if len(selected) > 0 && !selected[campus] {
			continue
		}
		chance := min(99, max(1, base+campusAdjustment[campus]))
		results = append(results, CampusChance{Campus: campus, Chance: chance, Tier: tierFor(chance)})
	}
	if in.SortByChance {
		sort.SliceStable(results, func(i, j int) bool { return results[i].Chance > results[j].Chance })
	}
	return ChancingResult{Results: results, OverallAssessment: overallAssessment(in.GPA)}, nil
}

func gpaPoints(gpa float64) int {
	switch {
	case gpa >= 4.0:
		return 50
	case gpa >= 3.8:
		return 40
	case gpa >= 3.5:
		return 30
	case gpa >= 3.0:
		return 20
	default:
		return 10
	}
}

func satPoints(sat int) int {
	switch {
	case sat >= 1500:
		return 15
	case sat >= 1400:
		return 12
	case sat >= 1300:
		return 8
	case sat >= 1200:
		return 5
	default:
		return 2
	}
}

func tierFor(chance int) Tier {
	switch {
	case chance >= 70:
		return Likely
	case chance >= 40:
		return Target
	default:
		return Reach
	}
}

func overallAssessment(gpa float64) string {
	switch {
	case gpa >= 3.8:
		return "Strong candidate for most UC campuses"
	case gpa >= 3.5:
		return "Competitive for many UC campuses"
	default:
		return "Consider focusing on less competitive UC campuses"
	}
}
