package slack

import (
	"context"
	"fmt"
)

// AnalysisNotification carries the fields of a completed policy analysis
// that are worth surfacing in the notification channel.
type AnalysisNotification struct {
	URL          string
	BrandName    string
	OverallScore float64
	Grade        string
	RiskLevel    string
	ScraperUsed  string
}

// NotifyAnalysis posts a completed-analysis summary to the webhook
func (c *Client) NotifyAnalysis(ctx context.Context, n AnalysisNotification) error {
	title := n.BrandName
	if title == "" {
		title = n.URL
	}

	msg := Message{
		Text: fmt.Sprintf("%s: %s scored %.2f (%s, %s)", c.serviceName, title, n.OverallScore, n.Grade, n.RiskLevel),
		Blocks: []Block{
			{
				Type: "header",
				Text: &TextObject{Type: "plain_text", Text: fmt.Sprintf("%s analysis: %s", c.serviceName, title)},
			},
			{
				Type: "section",
				Fields: []TextObject{
					{Type: "mrkdwn", Text: fmt.Sprintf("*URL:*\n%s", n.URL)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Score:*\n%.2f (%s)", n.OverallScore, n.Grade)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Risk:*\n%s", n.RiskLevel)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Fetched via:*\n%s", n.ScraperUsed)},
				},
			},
		},
	}

	return c.Send(ctx, msg)
}
