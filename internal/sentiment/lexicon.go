package sentiment

// Financial-domain term lists used for the per-article sentiment adjustment
// and for indicator mining. Matched as whole words, case-insensitively.
var positiveTerms = []string{
	"surge", "surges", "surged", "soar", "soars", "soared",
	"beat", "beats", "exceed", "exceeds", "exceeded",
	"rally", "rallies", "rallied", "gain", "gains", "gained",
	"upgrade", "upgraded", "outperform", "bullish", "breakout",
	"record", "strong", "growth", "profit", "profitable",
	"momentum", "optimistic", "dividend", "buyback",
}

var negativeTerms = []string{
	"plunge", "plunges", "plunged", "crash", "crashes", "crashed",
	"miss", "misses", "missed", "fall", "falls", "fell",
	"slump", "slumps", "slumped", "drop", "drops", "dropped",
	"downgrade", "downgraded", "underperform", "bearish",
	"bankruptcy", "lawsuit", "layoffs", "recall", "probe",
	"weak", "loss", "losses", "decline", "warning", "pessimistic",
}

// valences is a small general-purpose polarity lexicon in the AFINN style:
// each word carries an integer valence in [-5, 5]. It feeds the base score
// that the financial adjustment is layered on top of.
var valences = map[string]int{
	"good": 3, "great": 3, "excellent": 4, "best": 3, "better": 2,
	"positive": 2, "success": 2, "successful": 3, "win": 4, "wins": 4,
	"strong": 2, "growth": 2, "improve": 2, "improved": 2, "improving": 2,
	"boost": 2, "boosted": 2, "higher": 1, "rise": 1, "rises": 1,
	"rose": 1, "jump": 2, "jumped": 2, "confident": 2, "optimistic": 2,
	"bad": -3, "worse": -3, "worst": -3, "terrible": -3, "awful": -3,
	"negative": -2, "fail": -2, "failed": -2, "failure": -2,
	"weak": -2, "lower": -1, "drop": -2, "dropped": -2, "fall": -2,
	"fell": -2, "concern": -2, "concerns": -2, "worried": -3, "fears": -2,
	"risk": -2, "risks": -2, "trouble": -2, "crisis": -3, "warning": -3,
	"cut": -1, "cuts": -1, "doubt": -1, "doubts": -1, "pessimistic": -2,
}
