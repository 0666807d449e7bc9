// README: Requirement analysis; prompt for turning free speech into a request draft plus the offline keyword fallback.
package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RequirementDraft is a partially filled travel request recovered from free text.
// Zero values mean "not mentioned".
type RequirementDraft struct {
	Destination         string   `json:"destination"`
	TravelDate          string   `json:"travelDate"`
	Budget              float64  `json:"budget"`
	Travelers           int      `json:"travelers"`
	Preferences         []string `json:"preferences"`
	TravelStyle         string   `json:"travelStyle"`
	SpecialRequirements string   `json:"specialRequirements"`
}

// BuildAnalysisPrompt asks the model to pull request fields out of speech.
func BuildAnalysisPrompt(speech string) string {
	var b strings.Builder
	b.WriteString("请分析以下旅行需求语音输入，提取关键信息并以JSON格式返回：\n\n")
	fmt.Fprintf(&b, "用户语音输入：\"%s\"\n\n", speech)
	b.WriteString("请返回以下JSON格式：\n")
	b.WriteString(`{
  "destination": "目的地",
  "travelDate": "出行日期（YYYY-MM-DD，未提及则为空）",
  "budget": 预算（数字，单位元，未提及则为0）,
  "travelers": 人数（整数，未提及则为0）,
  "preferences": ["偏好1", "偏好2"],
  "travelStyle": "旅行风格",
  "specialRequirements": "特殊需求"
}`)
	b.WriteString("\n\n只返回JSON，不要包含任何其他文字。")
	return b.String()
}

type keywordRule struct {
	keywords []string
	value    string
}

var (
	destinationRules = []keywordRule{
		{[]string{"日本", "东京"}, "日本东京"},
		{[]string{"泰国", "普吉岛"}, "泰国普吉岛"},
		{[]string{"北京"}, "北京"},
	}
	preferenceRules = []keywordRule{
		{[]string{"美食", "吃"}, "美食"},
		{[]string{"购物", "买"}, "购物"},
		{[]string{"自然", "风光"}, "自然风光"},
		{[]string{"文化", "历史"}, "历史文化"},
	}
	styleRules = []keywordRule{
		{[]string{"经济", "便宜"}, "经济实惠"},
		{[]string{"舒适"}, "舒适体验"},
	}
	specialRules = []keywordRule{
		{[]string{"孩子", "小孩"}, "带孩子出行，需要亲子活动"},
		{[]string{"老人"}, "有老人同行，需要舒适安排"},
	}

	budgetPattern    = regexp.MustCompile(`(\d+)([千万]?)元`)
	travelersPattern = regexp.MustCompile(`(\d+)人`)
)

// KeywordAnalysis is the offline fallback for requirement analysis. It only does
// substring and pattern matching; anything it does not recognise stays zero.
func KeywordAnalysis(speech string) RequirementDraft {
	d := RequirementDraft{Preferences: []string{}}
	d.Destination = firstMatch(speech, destinationRules)
	d.TravelStyle = firstMatch(speech, styleRules)
	d.SpecialRequirements = firstMatch(speech, specialRules)
	for _, r := range preferenceRules {
		if r.matches(speech) {
			d.Preferences = append(d.Preferences, r.value)
		}
	}

	if m := budgetPattern.FindStringSubmatch(speech); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			switch m[2] {
			case "万":
				n *= 10000
			case "千":
				n *= 1000
			}
			d.Budget = n
		}
	}
	if m := travelersPattern.FindStringSubmatch(speech); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			d.Travelers = n
		}
	}
	return d
}

func (r keywordRule) matches(s string) bool {
	for _, k := range r.keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func firstMatch(s string, rules []keywordRule) string {
	for _, r := range rules {
		if r.matches(s) {
			return r.value
		}
	}
	return ""
}
