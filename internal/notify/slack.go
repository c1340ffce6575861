package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SlackNotifier posts a run summary to a Slack webhook. The full report
// body travels by email; Slack only gets the verdict tallies.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

// SlackMessage represents a Slack message payload
type SlackMessage struct {
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment represents a Slack message attachment
type SlackAttachment struct {
	Color  string `json:"color"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Footer string `json:"footer,omitempty"`
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ToJSON converts the message to JSON
func (m *SlackMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Summary condenses the verdict tallies into one line.
func Summary(r Report) string {
	return fmt.Sprintf("%d passed, %d failed, %d errors, %d warnings",
		r.Passed, r.Failed, r.Errors, r.Warnings)
}

// Send posts the run summary to Slack. An empty webhook disables the sink.
func (s *SlackNotifier) Send(r Report) error {
	if s.webhookURL == "" {
		return nil // Disabled
	}

	color := "good"
	if !r.Healthy() {
		color = "danger"
	}

	msg := SlackMessage{
		Text: r.Subject,
		Attachments: []SlackAttachment{
			{
				Color:  color,
				Text:   Summary(r),
				Footer: "repowatch",
			},
		},
	}

	payload, err := msg.ToJSON()
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}

	return nil
}
