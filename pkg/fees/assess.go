package fees

// DefaultTargetMargin is the target margin rate (percent) most sellers aim for.
const DefaultTargetMargin = 20.0

// Grade buckets a margin rate.
type Grade string

// Margin grades.
const (
	GradeExcellent Grade = "excellent" // >= 30 %
	GradeGood      Grade = "good"      // >= 20 %
	GradeCaution   Grade = "caution"   // >= 10 %
	GradeDanger    Grade = "danger"
)

// Advice is the suggested next step for a seller.
type Advice string

// Advice values.
const (
	AdviceProceed   Advice = "proceed"
	AdviceLowerCost Advice = "lower-cost"
	AdviceAvoid     Advice = "avoid"
)

var gradeText = map[Grade]string{
	GradeExcellent: "대박! 초고수익 상품",
	GradeGood:      "좋아요! 괜찮은 마진",
	GradeCaution:   "조심! 마진이 낮아요",
	GradeDanger:    "위험! 이익이 거의 없어요",
}

var adviceText = map[Advice]string{
	AdviceProceed:   "이 가격으로 사입하면 성공!",
	AdviceLowerCost: "사입가를 더 낮춰보세요",
	AdviceAvoid:     "이 상품은 손해예요!",
}

// Text returns the Korean headline for g.
func (g Grade) Text() string { return gradeText[g] }

// Text returns the Korean headline for a.
func (a Advice) Text() string { return adviceText[a] }

// Assessment grades a calculation against the seller's target margin.
type Assessment struct {
	Grade        Grade   `json:"grade"`
	Advice       Advice  `json:"advice"`
	TargetMargin float64 `json:"target_margin"`
	TargetMet    bool    `json:"target_met"`
	TargetGap    float64 `json:"target_gap"`
}

// Assess grades marginRate (percent) and netProfit against targetPct.
func Assess(marginRate, netProfit, targetPct float64) Assessment {
	a := Assessment{
		Grade:        gradeFor(marginRate),
		Advice:       adviceFor(marginRate, netProfit),
		TargetMargin: targetPct,
		TargetMet:    marginRate >= targetPct,
	}
	if !a.TargetMet {
		a.TargetGap = targetPct - marginRate
	}
	return a
}

func gradeFor(marginRate float64) Grade {
	switch {
	case marginRate >= 30:
		return GradeExcellent
	case marginRate >= 20:
		return GradeGood
	case marginRate >= 10:
		return GradeCaution
	default:
		return GradeDanger
	}
}

func adviceFor(marginRate, netProfit float64) Advice {
	switch {
	case marginRate >= 20 && netProfit > 0:
		return AdviceProceed
	case marginRate >= 10 && netProfit > 0:
		return AdviceLowerCost
	default:
		return AdviceAvoid
	}
}
