package slack

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// maxSectionTextBytes is the Slack limit for the text of a section block
const maxSectionTextBytes = 3000

// Notifier posts one alert per critically at-risk student to a fixed channel
type Notifier struct {
	svc       Service
	channelID string
}

var _ interfaces.Notifier = &Notifier{}

// NewNotifier creates a Notifier posting to channelID
func NewNotifier(svc Service, channelID string) (*Notifier, error) {
	if svc == nil {
		return nil, goerr.New("Slack service is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel is required")
	}
	return &Notifier{svc: svc, channelID: channelID}, nil
}

// NotifyCriticalRisk posts an alert carrying the student's name, ID and final score
func (n *Notifier) NotifyCriticalRisk(ctx context.Context, s *model.Student) error {
	ts, err := n.svc.PostMessage(ctx, n.channelID, buildAlertBlocks(s), alertText(s))
	if err != nil {
		return goerr.Wrap(err, "failed to post critical risk alert",
			goerr.V("student_id", s.ID),
			goerr.V("channel_id", n.channelID),
		)
	}

	logging.From(ctx).Info("critical risk alert posted",
		"student_id", s.ID,
		"channel_id", n.channelID,
		"ts", ts,
	)
	return nil
}

func alertText(s *model.Student) string {
	return fmt.Sprintf("Critical risk alert: %s (%s) has a final risk score of %.2f", s.Name, s.ID, s.FinalRiskScore)
}

func buildAlertBlocks(s *model.Student) []slack.Block {
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Student:*\n%s", s.Name), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*ID:*\n%s", s.ID), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Final Risk Score:*\n%.2f", s.FinalRiskScore), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Category:*\n%s", s.Category), false, false),
	}
	if s.MentorName != "" {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Mentor:*\n%s", s.MentorName), false, false))
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Critical risk alert", false, false)),
		slack.NewSectionBlock(nil, fields, nil),
	}

	if s.CounsellingSuggestion != "" {
		text := truncateToMaxBytes("*Counselling suggestion:*\n"+s.CounsellingSuggestion, maxSectionTextBytes)
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil))
	}
	return blocks
}

// truncateToMaxBytes cuts s to at most max bytes without splitting a UTF-8 sequence
func truncateToMaxBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
