// Package slack announces recorded results to an officials channel.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/matchpoint-labs/wtadb/internal/notifier"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

// SendMatchRecorded implements the Notifier interface.
func (s *Notifier) SendMatchRecorded(a notifier.MatchAnnouncement, dryRun bool) error {
	msg := formatMatchRecorded(a)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// formatMatchRecorded creates the Slack message for a recorded result using Block Kit.
func formatMatchRecorded(a notifier.MatchAnnouncement) slack.Message {
	blocks := make([]slack.Block, 0)

	header := "🎾 Match result recorded"
	if a.IsFinal {
		header = "🏆 Final recorded!"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	details := fmt.Sprintf("Tournament #%d\nScore: %s\nDuration: %d min", a.TournamentID, a.Score, a.DurationMins)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	var contextElements []slack.MixedElement
	contextElements = append(contextElements, slack.NewTextBlockObject("plain_text",
		fmt.Sprintf("Winner: player #%d · Loser: player #%d", a.WinnerID, a.LoserID), true, false))
	if a.IsFinal {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("Tournament history updated for %d", a.Year), true, false))
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}
