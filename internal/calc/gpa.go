package calc

import "fmt"

// AcademicSystem selects the honors-course ceiling.
type AcademicSystem string

const (
	Semester  AcademicSystem = "semester"
	Trimester AcademicSystem = "trimester"
)

const (
	maxHonorsSemester  = 8
	maxHonorsTrimester = 12

	// MaxCourseCount bounds each count so totals cannot overflow.
	MaxCourseCount = 10000
)

// gradePoints is the flat UC scale; honors bonus is added separately.
var gradePoints = [5]float64{4, 3, 2, 1, 0} // A..F

type UCGPAInput struct {
	GradeA         int            `json:"gradeA"`
	GradeB         int            `json:"gradeB"`
	GradeC         int            `json:"gradeC"`
	GradeD         int            `json:"gradeD"`
	GradeF         int            `json:"gradeF"`
	HonorsCount    int            `json:"honorsCount"`
	AcademicSystem AcademicSystem `json:"academicSystem"`
}

// UCGPAResult holds full-precision values. WeightedPoints is the capped
// honors count (one grade point per capped honors course).
type UCGPAResult struct {
	UnweightedGPA  float64
	WeightedGPA    float64
	WeightedPoints float64
	HonorsCount    int
	TotalCourses   int
}

func (in UCGPAInput) Validate() error {
	var v ValidationError
	counts := []struct {
		field string
		n     int
		label string
	}{
		{"gradeA", in.GradeA, "A's"},
		{"gradeB", in.GradeB, "B's"},
		{"gradeC", in.GradeC, "C's"},
		{"gradeD", in.GradeD, "D's"},
		{"gradeF", in.GradeF, "F's"},
		{"honorsCount", in.HonorsCount, "honors/AP/IB courses"},
	}
	for _, c := range counts {
		switch {
		case c.n < 0:
			v.Add(c.field, "Number of "+c.label+" must be non-negative")
		case c.n > MaxCourseCount:
			v.Add(c.field, fmt.Sprintf("Number of %s must be at most %d", c.label, MaxCourseCount))
		}
	}
	switch in.AcademicSystem {
	case Semester, Trimester:
	default:
		v.Add("academicSystem", "must be one of: semester, trimester")
	}
	return v.Err()
}

func (in UCGPAInput) counts() [5]int {
	return [5]int{in.GradeA, in.GradeB, in.GradeC, in.GradeD, in.GradeF}
}

// UCGPA computes the unweighted and UC-weighted GPA.
//
// The honors count is trusted as given: it is only capped at the semester or
// trimester ceiling, never checked against the number of courses.
func UCGPA(in UCGPAInput) (UCGPAResult, error) {
	if err := in.Validate(); err != nil {
		return UCGPAResult{}, err
	}

	total := 0
	points := 0.0
	for i, n := range in.counts() {
		total += n
		points += float64(n) * gradePoints[i]
	}
	if total == 0 {
		return UCGPAResult{HonorsCount: in.HonorsCount}, nil
	}

	unweighted := points / float64(total)

	maxHonors := maxHonorsTrimester
	if in.AcademicSystem == Semester {
		maxHonors = maxHonorsSemester
	}
	capped := min(in.HonorsCount, maxHonors)
	weightedPoints := float64(capped)

	return UCGPAResult{
		UnweightedGPA:  unweighted,
		WeightedGPA:    unweighted + weightedPoints/float64(total),
		WeightedPoints: weightedPoints,
		HonorsCount:    capped,
		TotalCourses:   total,
	}, nil
}

// PointsPerCourse is the honors bonus spread over all courses, as reported
// in the weightedPoints field of the API response.
func (r UCGPAResult) PointsPerCourse() float64 {
	if r.TotalCourses == 0 {
		return 0
	}
	return r.WeightedPoints / float64(r.TotalCourses)
}
