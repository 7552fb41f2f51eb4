package slackbot

import (
	"context"
	"errors"

	"github.com/slack-go/slack"
)

// Client posts run notifications to team channels.
type Client struct {
	api *slack.Client
}

func New(botToken string) (*Client, error) {
	if botToken == "" {
		return nil, errors.New("slack bot token is required")
	}
	return &Client{api: slack.New(botToken)}, nil
}

// Notify posts text to the channel. Errors are returned unchanged; retry
// policy, if any, is the caller's concern.
func (c *Client) Notify(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return err
}
