package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/fester-api/internal/models"
)

// Notifier is told about things organizers care about. Delivery is best
// effort: callers log a failure and carry on.
type Notifier interface {
	NotifyEventCreated(event models.Event) error
	NotifyCheckIn(event models.Event, guest models.Guest) error
}

// Nop is used when no Discord bot is configured.
type Nop struct{}

func (Nop) NotifyEventCreated(models.Event) error { return nil }
func (Nop) NotifyCheckIn(models.Event, models.Guest) error { return nil }

type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   messageSender
	channelID string
}

func NewDiscordNotifier(botToken, channelID string) (*DiscordNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

func (n *DiscordNotifier) NotifyEventCreated(event models.Event) error {
	message := fmt.Sprintf("📅 **New Event**\n**Name:** %s\n**Place:** %s\n**Date:** %s\n**State:** %s",
		event.Name,
		event.Place,
		event.StartsAt.Format("2006-01-02 15:04"),
		event.State,
	)
	return n.send(message)
}

func (n *DiscordNotifier) NotifyCheckIn(event models.Event, guest models.Guest) error {
	message := fmt.Sprintf("✅ **Check-in**\n**Event:** %s\n**Guest:** %s %s",
		event.Name,
		guest.FirstName,
		guest.LastName,
	)
	if guest.Note != "" {
		message += fmt.Sprintf("\n**Note:** %s", guest.Note)
	}
	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}
