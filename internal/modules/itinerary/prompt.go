// README: Prompt builder; renders a TravelRequest into the model instruction with the output schema contract.
package itinerary

import (
	"fmt"
	"strconv"
	"strings"
)

// outputSchema is the JSON contract shown to the model. Every key here must be
// checked by Validate and listed in schemaFields.
const outputSchema = `{
  "destination": "目的地名称",
  "duration": 天数（整数）,
  "budget": 预算（数字）,
  "travelers": 人数（整数）,
  "summary": "行程概要描述",
  "dayPlans": [
    {
      "day": 天数（整数，从1开始）,
      "date": "日期（格式：YYYY-MM-DD）",
      "activities": [
        {
          "time": "时间（如：09:00-12:00）",
          "type": "活动类型（%s）",
          "title": "活动标题",
          "description": "活动详细描述",
          "location": "地点（可选）",
          "cost": 费用（数字，可选）,
          "duration": "时长（如：2小时，可选）"
        }
      ]
    }
  ],
  "recommendations": [
    {
      "category": "推荐类别",
      "items": ["推荐项目1", "推荐项目2"]
    }
  ]
}`

// BuildPrompt renders req into the model-facing instruction. It is pure: the same
// request always yields a byte-identical prompt.
func BuildPrompt(req TravelRequest) string {
	typeList := activityTypeList("/")
	days := req.DayCount()

	var b strings.Builder
	b.WriteString("请为以下旅行需求生成详细的行程规划，请严格按照指定的JSON格式返回：\n\n")
	b.WriteString("旅行需求：\n")
	fmt.Fprintf(&b, "- 目的地：%s\n", req.Destination)
	fmt.Fprintf(&b, "- 旅行时间：%s 至 %s（共%d天）\n", req.StartDate, req.EndDate, days)
	fmt.Fprintf(&b, "- 预算：%s元\n", formatAmount(req.Budget))
	fmt.Fprintf(&b, "- 同行人数：%d人\n", req.Travelers)
	fmt.Fprintf(&b, "- 旅行偏好：%s\n", strings.Join(req.Preferences, ", "))
	fmt.Fprintf(&b, "- 旅行风格：%s\n", req.TravelStyle)
	fmt.Fprintf(&b, "- 特殊需求：%s\n\n", req.SpecialRequirements)

	b.WriteString("请严格按照以下JSON格式返回行程规划数据：\n")
	fmt.Fprintf(&b, outputSchema, typeList)
	b.WriteString("\n\n重要要求：\n")
	b.WriteString("1. 必须返回有效的JSON格式，不包含任何额外的文本，不包含头尾的```json标注。\n")
	fmt.Fprintf(&b, "2. \"dayPlans\"数组必须包含%d天，\"day\"从1开始连续编号，不得重复或跳过。\n", days)
	b.WriteString("3. 每天安排3-5个活动，每个活动必须有time、type、title、description字段。\n")
	fmt.Fprintf(&b, "4. 活动类型只能是：%s\n", activityTypeList("、"))
	b.WriteString("5. 数字字段（duration、budget、travelers、day、cost）必须是JSON数字，不能是字符串。\n")
	b.WriteString("6. 推荐信息要基于用户偏好和旅行风格。\n")
	b.WriteString("7. 预算分配要合理，考虑用户指定的预算限制。\n\n")
	b.WriteString("请基于以上要求生成专业、实用的旅行计划。")
	return b.String()
}

func activityTypeList(sep string) string {
	names := make([]string, len(ActivityTypes))
	for i, t := range ActivityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, sep)
}

// formatAmount prints 5000 as "5000" and 99.5 as "99.5".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
