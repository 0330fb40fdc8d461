package calc

import (
	"fmt"
	"math"
	"sort"
)

type TestType string

const (
	SAT TestType = "SAT"
	ACT TestType = "ACT"
)

const (
	minSAT, maxSAT = 400, 1600
	minACT, maxACT = 1, 36
)

type SATACTInput struct {
	TestType TestType `json:"testType"`
	Score    int      `json:"score"`
}

type SATACTResult struct {
	OriginalTestType  TestType `json:"originalTestType"`
	OriginalScore     int      `json:"originalScore"`
	ConvertedTestType TestType `json:"convertedTestType"`
	ConvertedScore    int      `json:"convertedScore"`
}

func (in SATACTInput) Validate() error {
	var v ValidationError
	switch in.TestType {
	case SAT:
		if in.Score < minSAT || in.Score > maxSAT {
			v.Add("score", fmt.Sprintf("SAT score must be between %d and %d", minSAT, maxSAT))
		}
	case ACT:
		if in.Score < minACT || in.Score > maxACT {
			v.Add("score", fmt.Sprintf("ACT score must be between %d and %d", minACT, maxACT))
		}
	default:
		v.Add("testType", "must be one of: SAT, ACT")
	}
	return v.Err()
}

// Concordance is a fixed SAT<->ACT table. Conversions never interpolate:
// SAT scores snap to the nearest table key, ACT scores must be keys.
type Concordance struct {
	name     string
	satKeys  []int // ascending; scan order for nearest match
	satToACT map[int]int
	actToSAT map[int]int
}

func NewConcordance(name string, satToACT, actToSAT map[int]int) *Concordance {
	keys := make([]int, 0, len(satToACT))
	for k := range satToACT {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return &Concordance{name: name, satKeys: keys, satToACT: satToACT, actToSAT: actToSAT}
}

func (c *Concordance) Name() string { return c.name }

// Convert maps a score onto the other test. An ACT score that is in range but
// absent from the table yields ErrUnconvertible.
func (c *Concordance) Convert(in SATACTInput) (SATACTResult, error) {
	if err := in.Validate(); err != nil {
		return SATACTResult{}, err
	}
	res := SATACTResult{OriginalTestType: in.TestType, OriginalScore: in.Score}
	if in.TestType == SAT {
		res.ConvertedTestType = ACT
		res.ConvertedScore = c.satToACT[c.nearestSAT(in.Score)]
		return res, nil
	}
	sat, ok := c.actToSAT[in.Score]
	if !ok {
		return SATACTResult{}, fmt.Errorf("%w: ACT %d", ErrUnconvertible, in.Score)
	}
	res.ConvertedTestType = SAT
	res.ConvertedScore = sat
	return res, nil
}

// nearestSAT returns the table key closest to score. On a tie the key seen
// first in ascending order wins.
func (c *Concordance) nearestSAT(score int) int {
	best := c.satKeys[0]
	for _, k := range c.satKeys[1:] {
		if math.Abs(float64(k-score)) < math.Abs(float64(best-score)) {
			best = k
		}
	}
	return best
}

/* ---------------------------- registry ---------------------------- */

// DefaultConcordanceName is the canonical table.
const DefaultConcordanceName = "server"

var concordances = map[string]*Concordance{}

// RegisterConcordance binds a table to its name. Call it from init only;
// lookups are not synchronized against registration.
func RegisterConcordance(c *Concordance) { concordances[c.name] = c }

func LookupConcordance(name string) (*Concordance, bool) {
	c, ok := concordances[name]
	return c, ok
}

// DefaultConcordance returns the canonical table.
func DefaultConcordance() *Concordance { return concordances[DefaultConcordanceName] }

func init() {
	RegisterConcordance(NewConcordance(DefaultConcordanceName, serverSATToACT, serverACTToSAT))
	RegisterConcordance(NewConcordance("wordpress", wordpressSATToACT, wordpressACTToSAT))
}
