package http

import (
	"errors"
	"net/http"

	"github.com/mind-engage/uc-planner/internal/calc"
	"github.com/mind-engage/uc-planner/internal/validation"
)

const (
	msgWeightSum      = "Current grade weight and final exam weight must sum to 100%"
	msgUnconvertible  = "Unable to convert score. Invalid score range."
	msgMissingChances = "Missing required fields"
)

type ucGPARequest struct {
	GradeA         *int    `json:"gradeA"`
	GradeB         *int    `json:"gradeB"`
	GradeC         *int    `json:"gradeC"`
	GradeD         *int    `json:"gradeD"`
	GradeF         *int    `json:"gradeF"`
	HonorsCount    *int    `json:"honorsCount"`
	AcademicSystem *string `json:"academicSystem"`
}

type ucGPAResponse struct {
	UnweightedGPA  float64 `json:"unweightedGPA"`
	WeightedGPA    float64 `json:"weightedGPA"`
	WeightedPoints float64 `json:"weightedPoints"`
	HonorsCount    int     `json:"honorsCount"`
	TotalCourses   int     `json:"totalCourses"`
}

// POST /calculate/uc-gpa
func UCGPAHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ucGPARequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var v validation.Error
		required(&v,
			field("gradeA", req.GradeA), field("gradeB", req.GradeB), field("gradeC", req.GradeC),
			field("gradeD", req.GradeD), field("gradeF", req.GradeF),
			field("honorsCount", req.HonorsCount), field("academicSystem", req.AcademicSystem))
		if err := v.Err(); err != nil {
			writeInvalid(w, err, "")
			return
		}
		res, err := calc.UCGPA(calc.UCGPAInput{
			GradeA:         *req.GradeA,
			GradeB:         *req.GradeB,
			GradeC:         *req.GradeC,
			GradeD:         *req.GradeD,
			GradeF:         *req.GradeF,
			HonorsCount:    *req.HonorsCount,
			AcademicSystem: calc.AcademicSystem(*req.AcademicSystem),
		})
		if err != nil {
			writeCalcErr(w, r, err, "Failed to calculate UC GPA")
			return
		}
		writeJSON(w, http.StatusOK, ucGPAResponse{
			UnweightedGPA:  calc.Round2(res.UnweightedGPA),
			WeightedGPA:    calc.Round2(res.WeightedGPA),
			WeightedPoints: calc.Round2(res.PointsPerCourse()),
			HonorsCount:    res.HonorsCount,
			TotalCourses:   res.TotalCourses,
		})
	}
}

type finalGradeRequest struct {
	CurrentGrade  *float64 `json:"currentGrade"`
	CurrentWeight *float64 `json:"currentWeight"`
	FinalWeight   *float64 `json:"finalWeight"`
	DesiredGrade  *float64 `json:"desiredGrade"`
}

type finalGradeResponse struct {
	NeededGrade        float64 `json:"neededGrade"`
	LetterGrade        string  `json:"letterGrade"`
	FeasibilityMessage string  `json:"feasibilityMessage"`
	IsPossible         bool    `json:"isPossible"`
}

// POST /calculate/final-grade
func FinalGradeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req finalGradeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var v validation.Error
		required(&v,
			field("currentGrade", req.CurrentGrade), field("currentWeight", req.CurrentWeight),
			field("finalWeight", req.FinalWeight), field("desiredGrade", req.DesiredGrade))
		if err := v.Err(); err != nil {
			writeInvalid(w, err, "")
			return
		}
		res, err := calc.FinalGrade(calc.FinalGradeInput{
			CurrentGrade:  *req.CurrentGrade,
			CurrentWeight: *req.CurrentWeight,
			FinalWeight:   *req.FinalWeight,
			DesiredGrade:  *req.DesiredGrade,
		})
		if err != nil {
			writeCalcErr(w, r, err, "Failed to calculate final grade")
			return
		}
		writeJSON(w, http.StatusOK, finalGradeResponse{
			NeededGrade:        calc.Round2(res.NeededGrade),
			LetterGrade:        res.LetterGrade,
			FeasibilityMessage: res.FeasibilityMessage,
			IsPossible:         res.IsPossible,
		})
	}
}

type satACTRequest struct {
	TestType *string `json:"testType"`
	Score    *int    `json:"score"`
}

// POST /calculate/sat-act
func SATACTHandler(c *calc.Concordance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req satACTRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var v validation.Error
		required(&v, field("testType", req.TestType), field("score", req.Score))
		if err := v.Err(); err != nil {
			writeInvalid(w, err, "")
			return
		}
		res, err := c.Convert(calc.SATACTInput{TestType: calc.TestType(*req.TestType), Score: *req.Score})
		if err != nil {
			writeCalcErr(w, r, err, "Failed to convert score")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type chancingRequest struct {
	GPA              *float64 `json:"gpa"`
	Activities       *int     `json:"activities"`
	Essays           *int     `json:"essays"`
	SATScore         *int     `json:"satScore"`
	SelectedCampuses []string `json:"selectedCampuses"`
	SortByChance     bool     `json:"sortByChance"`
}

// POST /calculate/uc-chance
func UCChanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chancingRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var v validation.Error
		required(&v, field("gpa", req.GPA), field("activities", req.Activities), field("essays", req.Essays))
		if err := v.Err(); err != nil {
			writeInvalid(w, err, msgMissingChances)
			return
		}
		sat := req.SATScore
		if sat != nil && *sat == 0 {
			sat = nil // 0 means "not taken"
		}
		res, err := calc.UCChances(calc.ChancingInput{
			GPA:              *req.GPA,
			Activities:       *req.Activities,
			Essays:           *req.Essays,
			SATScore:         sat,
			SelectedCampuses: req.SelectedCampuses,
			SortByChance:     req.SortByChance,
		})
		if err != nil {
			writeCalcErr(w, r, err, "Failed to calculate UC chances")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeCalcErr(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	switch {
	case errors.Is(err, calc.ErrWeightSum):
		writeInvalid(w, err, msgWeightSum)
	case errors.Is(err, calc.ErrUnconvertible):
		writeErr(w, http.StatusBadRequest, msgUnconvertible, codeUnconvertible)
	default:
		var ve *validation.Error
		if errors.As(err, &ve) {
			writeInvalid(w, err, "")
			return
		}
		writeFailure(w, r, err, failMsg)
	}
}
