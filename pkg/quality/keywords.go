package quality

import "strings"

// Keyword sets backing the scorers. English and Korean forms live side by
// side because decks mix both.
var (
	actionVerbs = []string{
		"increase", "reduce", "expand", "launch", "invest", "accelerate",
		"improve", "approve", "decide", "capture", "defend", "scale",
		"확대", "축소", "투자", "출시", "개선", "승인", "결정", "강화",
	}

	implicationWords = []string{
		"therefore", "so", "should", "must", "means", "implies", "requires",
		"unlock", "opportunity", "risk",
		"따라서", "필요", "의미", "기회", "리스크", "해야",
	}

	comparisonWords = []string{
		"yoy", "vs", "versus", "compared", "than", "benchmark", "industry",
		"average", "gap", "up", "down",
		"대비", "비교", "증가", "감소", "평균",
	}

	strategyWords = []string{
		"strategy", "strategic", "position", "market", "growth", "advantage",
		"differentiat", "portfolio",
		"전략", "시장", "성장", "경쟁", "포지",
	}

	businessTerms = []string{
		"revenue", "margin", "market", "customer", "cost", "profit", "share",
		"pipeline", "churn", "roi", "kpi",
		"매출", "이익", "시장", "고객", "비용", "점유",
	}

	actionableWords = []string{
		"recommend", "should", "next step", "action", "decide", "launch",
		"by q", "by friday", "plan", "roadmap",
		"권고", "제안", "실행", "다음 단계", "추진",
	}

	priorityMarkers = []string{
		"first", "priority", "phase", "step 1", "immediately", "then",
		"우선", "단계", "1순위", "즉시",
	}
)

func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func containsDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
