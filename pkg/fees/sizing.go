package fees

import (
	"math"
	"strings"
)

// DefaultCostRatio is the share of the sale price assumed as purchase cost
// when the seller has not entered one.
const DefaultCostRatio = 0.6

type sizeHint struct {
	keyword string
	size    SizeTier
}

// sizeHints maps category keywords to a typical package size. Order is
// lookup priority.
var sizeHints = []sizeHint{
	{"화장품", SizeSmall},
	{"뷰티", SizeSmall},
	{"향수", SizeSmall},
	{"액세서리", SizeSmall},
	{"귀걸이", SizeExtraSmall},
	{"반지", SizeExtraSmall},
	{"목걸이", SizeSmall},
	{"팔찌", SizeSmall},
	{"시계", SizeSmall},
	{"안경", SizeSmall},
	{"선글라스", SizeSmall},

	{"의류", SizeMedium},
	{"패션잡화", SizeMedium},
	{"신발", SizeMedium},
	{"가방", SizeMedium},
	{"완구", SizeMedium},
	{"주방용품", SizeMedium},
	{"생활용품", SizeMedium},
	{"문구", SizeMedium},
	{"도서", SizeMedium},

	{"가전제품", SizeLarge1},
	{"스포츠", SizeLarge1},
	{"캠핑", SizeExtraLarge},
	{"가구", SizeExtraLarge},
	{"침구", SizeLarge1},
	{"인테리어", SizeLarge1},
}

// RecommendSize guesses a package size from a category path. Unlike rate
// resolution it walks the path from the top-level category down. Medium is
// returned when nothing matches.
func RecommendSize(path []string) SizeTier {
	for _, category := range path {
		for _, h := range sizeHints {
			if strings.Contains(category, h.keyword) {
				return h.size
			}
		}
	}
	return SizeMedium
}

// EstimateCost returns a default purchase cost for price.
func EstimateCost(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Round(price * DefaultCostRatio)
}
