package interactions

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestRegistry_DispatchesByCommandName(t *testing.T) {
	registry := NewRegistry(testLogger())

	handled := make(chan string, 1)
	registry.RegisterHandler("reactionrole", func(_ context.Context, i *discordgo.InteractionCreate) {
		handled <- i.ApplicationCommandData().Name
	})

	registry.HandleInteraction(nil, commandInteraction("reactionrole"))

	select {
	case name := <-handled:
		assert.Equal(t, "reactionrole", name)
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}
}

func TestRegistry_UnknownCommandIsDropped(t *testing.T) {
	registry := NewRegistry(testLogger())

	invoked := make(chan struct{}, 1)
	registry.RegisterHandler("reactionrole", func(_ context.Context, _ *discordgo.InteractionCreate) {
		invoked <- struct{}{}
	})

	registry.HandleInteraction(nil, commandInteraction("somethingelse"))

	select {
	case <-invoked:
		t.Fatal("handler must not run for an unrelated command")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistry_IgnoresNonCommandInteractions(t *testing.T) {
	registry := NewRegistry(testLogger())

	invoked := make(chan struct{}, 1)
	registry.RegisterHandler("reactionrole", func(_ context.Context, _ *discordgo.InteractionCreate) {
		invoked <- struct{}{}
	})

	registry.HandleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
	}})

	select {
	case <-invoked:
		t.Fatal("component interactions are not command invocations")
	case <-time.After(50 * time.Millisecond):
	}
}
