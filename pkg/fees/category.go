package fees

import "strings"

// DefaultRate is the commission rate used when no keyword matches.
const DefaultRate = 0.10

// UnmatchedName is returned by MatchedKeyword for an empty category path.
const UnmatchedName = "기타"

// KeywordRate maps a category keyword to its commission rate (0-1).
type KeywordRate struct {
	Keyword string  `json:"keyword" yaml:"keyword"`
	Rate    float64 `json:"rate"    yaml:"rate"`
}

// DefaultKeywords returns the commission keyword table. Lookup walks it in
// this order, so an earlier keyword beats a later one within the same
// category string.
func DefaultKeywords() []KeywordRate {
	return []KeywordRate{
		// 가전/디지털
		{"에어컨", 0.058},
		{"카메라", 0.058},
		{"렌즈", 0.06},
		{"태블릿", 0.05},
		{"컴퓨터", 0.05},
		{"노트북", 0.05},
		{"PC", 0.05},
		{"모니터", 0.045},
		{"게임", 0.068},
		{"게이밍", 0.068},
		{"가전", 0.078},
		{"디지털", 0.078},
		{"전자", 0.078},

		// 가구/홈인테리어
		{"가구", 0.108},
		{"홈인테리어", 0.108},
		{"인테리어", 0.108},
		{"침대", 0.108},
		{"소파", 0.108},

		// 도서/음반/문구
		{"도서", 0.108},
		{"책", 0.108},
		{"음반", 0.108},
		{"문구", 0.108},
		{"사무", 0.108},

		// 유아동/출산
		{"기저귀", 0.064},
		{"분유", 0.064},
		{"물티슈", 0.082},
		{"이유식", 0.078},
		{"유아", 0.10},
		{"출산", 0.10},
		{"아기", 0.10},

		// 스포츠/레저
		{"골프", 0.076},
		{"자전거", 0.076},
		{"스포츠의류", 0.105},
		{"운동화", 0.105},
		{"스포츠", 0.108},
		{"레저", 0.108},
		{"캠핑", 0.108},

		// 뷰티/미용
		{"뷰티", 0.096},
		{"화장품", 0.096},
		{"미용", 0.096},
		{"코스메틱", 0.096},
		{"성인용품", 0.096},

		// 생활/건강
		{"생활", 0.078},
		{"건강", 0.078},
		{"주방", 0.078},
		{"욕실", 0.078},

		// 식품
		{"식품", 0.106},
		{"음식", 0.106},
		{"먹거리", 0.106},
		{"간식", 0.106},
		{"음료", 0.106},

		// 완구/취미
		{"완구", 0.108},
		{"장난감", 0.108},
		{"취미", 0.108},
		{"드론", 0.078},

		// 자동차/공구
		{"자동차", 0.10},
		{"차량", 0.10},
		{"카", 0.10},
		{"오토바이", 0.076},
		{"모터사이클", 0.076},
		{"공구", 0.10},

		// 패션
		{"패션", 0.105},
		{"의류", 0.105},
		{"옷", 0.105},
		{"남성패션", 0.105},
		{"여성패션", 0.105},
		{"신발", 0.105},
		{"슈즈", 0.105},
		{"가방", 0.105},
		{"액세서리", 0.105},
		{"시계", 0.105},
		{"주얼리", 0.04},
		{"보석", 0.04},

		// 반려동물
		{"반려동물", 0.108},
		{"펫", 0.108},
		{"애완", 0.108},
	}
}

// Match scans path from its most specific (last) element backwards and
// returns the first keyword contained in an element.
func (s *Schedule) Match(path []string) (KeywordRate, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		for _, kw := range s.Keywords {
			if strings.Contains(path[i], kw.Keyword) {
				return kw, true
			}
		}
	}
	return KeywordRate{}, false
}

// ResolveRate returns the commission rate for a category path such as a
// breadcrumb. The rightmost element with any keyword hit decides; within
// that element the first keyword in table order wins.
func (s *Schedule) ResolveRate(path []string) float64 {
	if kw, ok := s.Match(path); ok {
		return kw.Rate
	}
	return s.DefaultRate
}

// MatchedKeyword returns the keyword ResolveRate would match, for display.
// With no match it falls back to the last path element, and to
// UnmatchedName for an empty path.
func (s *Schedule) MatchedKeyword(path []string) string {
	if len(path) == 0 {
		return UnmatchedName
	}
	if kw, ok := s.Match(path); ok {
		return kw.Keyword
	}
	if last := path[len(path)-1]; last != "" {
		return last
	}
	return UnmatchedName
}
