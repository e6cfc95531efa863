package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// ProfitFactor is gross profit divided by the absolute gross loss.
//
// A statement with profits and no losses has no finite ratio. JSON has no
// infinity literal, so that case marshals as the string "inf"; a statement
// with neither profits nor losses reports 0.
type ProfitFactor float64

// IsInf reports whether the factor is the infinite sentinel.
func (p ProfitFactor) IsInf() bool {
	return math.IsInf(float64(p), 1)
}

func (p ProfitFactor) String() string {
	if p.IsInf() {
		return "inf"
	}
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}

func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if p.IsInf() {
		return []byte(`"inf"`), nil
	}
	return json.Marshal(float64(p))
}

func (p *ProfitFactor) UnmarshalJSON(b []byte) error {
	if string(b) == `"inf"` {
		*p = ProfitFactor(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = ProfitFactor(f)
	return nil
}
