package interactions

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Registry routes slash command invocations to their handlers by command name.
type Registry struct {
	logger   *slog.Logger
	handlers map[string]func(ctx context.Context, i *discordgo.InteractionCreate)
}

// NewRegistry creates a new Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger,
		handlers: make(map[string]func(ctx context.Context, i *discordgo.InteractionCreate)),
	}
}

// RegisterHandler registers a handler for a command name.
func (r *Registry) RegisterHandler(name string, handler func(ctx context.Context, i *discordgo.InteractionCreate)) {
	r.handlers[name] = handler
}

// HandleInteraction dispatches an incoming interaction to its registered
// handler. Unknown interactions are dropped with a debug log.
func (r *Registry) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name

	handler, ok := r.handlers[name]
	if !ok {
		r.logger.Debug("No handler registered for command", slog.String("command", name))
		return
	}

	// Each invocation runs on its own goroutine so a slow handler never
	// blocks the gateway dispatch loop.
	go handler(context.Background(), i)
}
