// README: Keyword analysis tests.
package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordAnalysis(t *testing.T) {
	tests := []struct {
		name   string
		speech string
		want   RequirementDraft
	}{
		{
			name:   "tokyo family",
			speech: "我想去东京玩5天，预算1万元，3人，带孩子，喜欢美食和购物",
			want: RequirementDraft{
				Destination:         "日本东京",
				Budget:              10000,
				Travelers:           3,
				Preferences:         []string{"美食", "购物"},
				SpecialRequirements: "带孩子出行，需要亲子活动",
			},
		},
		{
			name:   "beijing elderly",
			speech: "北京，8千元，2人，想看历史，要舒适一点，有老人",
			want: RequirementDraft{
				Destination:         "北京",
				Budget:              8000,
				Travelers:           2,
				Preferences:         []string{"历史文化"},
				TravelStyle:         "舒适体验",
				SpecialRequirements: "有老人同行，需要舒适安排",
			},
		},
		{
			name:   "phuket budget",
			speech: "普吉岛看自然风光，便宜点，5000元",
			want: RequirementDraft{
				Destination: "泰国普吉岛",
				Budget:      5000,
				Preferences: []string{"自然风光"},
				TravelStyle: "经济实惠",
			},
		},
		{
			name:   "nothing recognised",
			speech: "随便",
			want:   RequirementDraft{Preferences: []string{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KeywordAnalysis(tc.speech))
		})
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	p := BuildAnalysisPrompt("去北京")
	assert.Contains(t, p, "用户语音输入：\"去北京\"")
	assert.Contains(t, p, "\"travelers\"")
}
