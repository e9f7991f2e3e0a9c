// Package notify posts the top of the leaderboard to a chat webhook as a
// MessageCard payload.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Afrawles/teampulse/internal/report"
)

const maxFacts = 5

// MessageCard is the legacy Office 365 connector card shape, still the
// simplest payload accepted by Teams incoming webhooks.
type MessageCard struct {
	Type       string    `json:"@type"`
	Context    string    `json:"@context"`
	ThemeColor string    `json:"themeColor"`
	Summary    string    `json:"summary"`
	Title      string    `json:"title"`
	Sections   []Section `json:"sections"`
}

type Section struct {
	ActivityTitle string `json:"activityTitle,omitempty"`
	Text          string `json:"text,omitempty"`
	Facts         []Fact `json:"facts,omitempty"`
}

type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BuildMessageCard renders the top entries of a summary into a card.
func BuildMessageCard(s report.Summary) MessageCard {
	title := fmt.Sprintf("Team Activity Leaderboard — %s/%s", s.Organization, s.Project)

	facts := make([]Fact, 0, maxFacts)
	for _, e := range s.Entries {
		if len(facts) == maxFacts {
			break
		}
		acc := e.Contributor
		name := acc.DisplayName
		if name == "" {
			name = acc.Key
		}
		facts = append(facts, Fact{
			Name:  fmt.Sprintf("#%d %s", e.Rank, name),
			Value: fmt.Sprintf("%.2f", math.Round(e.Score*100)/100),
		})
	}

	return MessageCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: "4472C4",
		Summary:    title,
		Title:      title,
		Sections: []Section{
			{
				ActivityTitle: fmt.Sprintf("%s to %s", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02")),
				Facts:         facts,
			},
			{
				Text: "Scoring: " + s.Formula,
			},
		},
	}
}

type WebhookClient struct {
	url        string
	httpClient *http.Client
}

func NewWebhookClient(url string) *WebhookClient {
	return &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts the summary's leaderboard card to the webhook.
func (c *WebhookClient) Send(ctx context.Context, s report.Summary) error {
	payload, err := json.Marshal(BuildMessageCard(s))
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook rejected payload (status %d)", resp.StatusCode)
	}
	return nil
}
