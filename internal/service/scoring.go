package service

import (
	"emotest_backend/internal/model"
	"encoding/json"
	"strconv"
)

// Score 计算一次作答的得分。纯函数，不访问存储。
//
// value 是 JSON 解码后的作答（string、float64、[]any），也接受 []string 和整数。
// 没有计分表的题目一律 0 分；scale 题直接取作答数值，不按 min/max 截断。
func Score(q *model.Question, value any) float64 {
	if q == nil || len(q.Scores) == 0 {
		return 0
	}

	switch q.Type {
	case model.QuestionScale:
		return scoreScale(value)
	case model.QuestionMultiSelect:
		return scoreMultiSelect(q.Scores, value)
	case model.QuestionButtons, model.QuestionRadio, model.QuestionDropdown:
		return weightOf(q.Scores, labelOf(value))
	case model.QuestionText:
		return 0
	default:
		return 0
	}
}

// ScoreRaw 解码原始 JSON 作答后计分，无法解码时 0 分
func ScoreRaw(q *model.Question, raw json.RawMessage) float64 {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	return Score(q, value)
}

func scoreScale(value any) float64 {
	if f, ok := toFloat(value); ok {
		return f
	}
	// 数字字符串也按数值处理
	if s, ok := value.(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

func scoreMultiSelect(scores map[string]interface{}, value any) float64 {
	var total float64
	switch vs := value.(type) {
	case []string:
		for _, v := range vs {
			total += weightOf(scores, v)
		}
	case []any:
		for _, v := range vs {
			total += weightOf(scores, labelOf(v))
		}
	}
	return total
}

// labelOf 把单选作答转成计分表的键，数字按最短形式格式化
func labelOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		// 与已有题库的标签写法一致：True / False
		if v {
			return "True"
		}
		return "False"
	case nil:
		return ""
	}
	if f, ok := toFloat(value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(b)
}

func weightOf(scores map[string]interface{}, label string) float64 {
	w, ok := scores[label]
	if !ok {
		return 0
	}
	if f, ok := toFloat(w); ok {
		return f
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
