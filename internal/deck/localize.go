// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import "strings"

// labels is the structural string set for one language branch. Exactly two
// branches exist: "ja"-prefixed language tags and everything else.
type labels struct {
	TOCTitle    string
	Sections    [5]string
	KeyFindings string
	Conclusion  string
}

var japaneseLabels = labels{
	TOCTitle: "目次",
	Sections: [5]string{
		"エグゼクティブサマリー",
		"調査結果",
		"詳細分析",
		"結論・提言",
		"参考文献",
	},
	KeyFindings: "主要な発見:",
	Conclusion:  "結論: 調査に基づく推奨事項をここに記載してください。",
}

var englishLabels = labels{
	TOCTitle: "Table of Contents",
	Sections: [5]string{
		"Executive Summary",
		"Research Findings",
		"Detailed Analysis",
		"Conclusions & Recommendations",
		"References",
	},
	KeyFindings: "Key findings:",
	Conclusion:  "Conclusion: Add actionable recommendations based on the research.",
}

// labelsFor selects the label set for a language tag.
func labelsFor(lang string) labels {
	if strings.HasPrefix(lang, "ja") {
		return japaneseLabels
	}
	return englishLabels
}
