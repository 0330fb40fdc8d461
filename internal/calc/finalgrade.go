package calc

import "math"

const (
	msgEasy       = "This grade is easily achievable with minimal preparation."
	msgGood       = "This grade is achievable with good preparation."
	msgHard       = "This grade is challenging but possible with thorough preparation."
	msgImpossible = "This grade is not mathematically possible. Consider adjusting your desired grade."
)

type FinalGradeInput struct {
	CurrentGrade  float64 `json:"currentGrade"`
	CurrentWeight float64 `json:"currentWeight"`
	FinalWeight   float64 `json:"finalWeight"`
	DesiredGrade  float64 `json:"desiredGrade"`
}

type FinalGradeResult struct {
	NeededGrade        float64
	LetterGrade        string
	FeasibilityMessage string
	IsPossible         bool
}

func (in FinalGradeInput) Validate() error {
	var v ValidationError
	percent := func(field string, x float64) bool {
		if math.IsNaN(x) || x < 0 || x > 100 {
			v.Add(field, "must be between 0 and 100")
			return false
		}
		return true
	}
	ok := percent("currentGrade", in.CurrentGrade)
	ok = percent("currentWeight", in.CurrentWeight) && ok
	ok = percent("finalWeight", in.FinalWeight) && ok
	ok = percent("desiredGrade", in.DesiredGrade) && ok
	if !ok {
		return v.Err()
	}
	if in.CurrentWeight+in.FinalWeight != 100 {
		v.AddCause("finalWeight", ErrWeightSum)
	} else if in.FinalWeight == 0 {
		v.Add("finalWeight", "final exam weight cannot be zero")
	}
	return v.Err()
}

// FinalGrade computes the score needed on the final exam. The needed grade is
// never clamped: above 100 is infeasible, below 0 means already guaranteed.
func FinalGrade(in FinalGradeInput) (FinalGradeResult, error) {
	if err := in.Validate(); err != nil {
		return FinalGradeResult{}, err
	}
	needed := (in.DesiredGrade - in.CurrentGrade*(in.CurrentWeight/100)) / (in.FinalWeight / 100)

	res := FinalGradeResult{
		NeededGrade: needed,
		LetterGrade: LetterGrade(needed),
		IsPossible:  needed <= 100,
	}
	switch {
	case needed > 100:
		res.FeasibilityMessage = msgImpossible
	case needed <= 70:
		res.FeasibilityMessage = msgEasy
	case needed <= 90:
		res.FeasibilityMessage = msgGood
	default:
		res.FeasibilityMessage = msgHard
	}
	return res, nil
}

// LetterGrade buckets a percentage with inclusive lower bounds. Values above
// 100 still map to "A".
func LetterGrade(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}
