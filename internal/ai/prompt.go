package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func buildInsightsPrompt(req InsightsRequest) (string, error) {
	payload, err := json.Marshal(req.MonthlyExpenses)
	if err != nil {
		return "", fmt.Errorf("marshal expenses: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are an assistant that gives personalized insights into a user's spending habits, ")
	b.WriteString("helping them understand where their money goes and identify potential savings.\n\n")
	b.WriteString("Monthly expenses (JSON):\n")
	b.Write(payload)
	b.WriteString("\n\n")
	b.WriteString("Summarize the key spending patterns, point out unusual or high expenses and suggest ")
	b.WriteString("where the user could save money. Be concise, act like a financial advisor, and do not ")
	b.WriteString("mention JSON or that you are an AI. Return only the insights as plain readable text.")
	return b.String(), nil
}

func buildSuggestPrompt(req SuggestRequest) (string, error) {
	var b strings.Builder
	b.WriteString("You are a financial assistant that picks the most appropriate spending category ")
	b.WriteString("for an expense based on its description.\n\n")
	fmt.Fprintf(&b, "Expense description:\n%q\n\n", req.Notes)
	b.WriteString("Available categories:\n")
	for _, c := range req.Categories {
		fmt.Fprintf(&b, "- %s (id: %s)\n", c.Name, c.ID)
	}
	b.WriteString("\nRespond with ONLY a JSON object of the form {\"categoryId\": \"...\"} where the value ")
	b.WriteString("is one of the ids above. If no category fits confidently, use an empty string. ")
	b.WriteString("Do not guess and do not add any other text.")
	return b.String(), nil
}

// extractJSON pulls the first JSON object out of a model reply,
// tolerating markdown code fences and surrounding prose.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
