package dispatch

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord delivers messages to a single channel through a bot account.
// It owns a discordgo session, so it also implements io.Closer.
type Discord struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscord builds a Discord channel from a bot token and target channel
// ID. Construction does not touch the network; sends go over the REST API.
func NewDiscord(token, channelID string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discordgo session: %w", err)
	}
	return &Discord{session: session, channelID: channelID}, nil
}

func (d *Discord) Name() string { return "Discord" }

func (d *Discord) Notify(ctx context.Context, message string) error {
	_, err := d.session.ChannelMessageSend(d.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send to discord: %w", err)
	}
	return nil
}

// Close releases the underlying session.
func (d *Discord) Close() error {
	return d.session.Close()
}
