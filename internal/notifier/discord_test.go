package notifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/fester-api/internal/models"
)

type fakeSender struct {
	channelID string
	content   string
	err       error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.content = content
	return &discordgo.Message{Content: content}, f.err
}

func TestNotifyCheckIn(t *testing.T) {
	sender := &fakeSender{}
	n := &DiscordNotifier{session: sender, channelID: "chan-1"}

	event := models.Event{Name: "Gala"}
	guest := models.Guest{FirstName: "Anna", LastName: "Rossi", Note: "VIP"}
	if err := n.NotifyCheckIn(event, guest); err != nil {
		t.Fatalf("NotifyCheckIn returned error: %v", err)
	}

	if sender.channelID != "chan-1" {
		t.Errorf("expected chan-1, got %s", sender.channelID)
	}
	for _, want := range []string{"Gala", "Anna Rossi", "VIP"} {
		if !strings.Contains(sender.content, want) {
			t.Errorf("expected message to contain %q, got %q", want, sender.content)
		}
	}
}

func TestNotifyEventCreated(t *testing.T) {
	sender := &fakeSender{}
	n := &DiscordNotifier{session: sender, channelID: "chan-1"}

	event := models.Event{Name: "Gala", Place: "Roma", StartsAt: time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC), State: models.EventStateDraft}
	if err := n.NotifyEventCreated(event); err != nil {
		t.Fatalf("NotifyEventCreated returned error: %v", err)
	}
	if !strings.Contains(sender.content, "2026-05-01 20:00") {
		t.Errorf("expected formatted date, got %q", sender.content)
	}
}

func TestSendError(t *testing.T) {
	n := &DiscordNotifier{session: &fakeSender{err: errors.New("rate limited")}, channelID: "chan-1"}
	if err := n.NotifyEventCreated(models.Event{Name: "Gala"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewDiscordNotifier_Validation(t *testing.T) {
	if _, err := NewDiscordNotifier("", "chan"); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := NewDiscordNotifier("token", ""); err == nil {
		t.Error("expected error for empty channel")
	}
}
