package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Registrar overwrites the slash commands of a guild.
type Registrar interface {
	BulkOverwriteGuildCommands(appID discord.AppID, guildID discord.GuildID, cmds []api.CreateCommandData) ([]discord.Command, error)
}

// CommandManagerParams holds dependencies for NewCommandManager.
type CommandManagerParams struct {
	fx.In

	ApplicationID discord.AppID
	Logger        *zap.Logger
	Commands      []Command `group:"commands"`
}

// CommandManager holds the loaded commands and syncs them with Discord.
type CommandManager struct {
	applicationID discord.AppID
	logger        *zap.Logger
	commands      map[string]Command
}

// NewCommandManager indexes the commands by name. The first command wins
// on duplicate names.
func NewCommandManager(params CommandManagerParams) *CommandManager {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CommandManager{
		applicationID: params.ApplicationID,
		logger:        logger.Named("commands"),
		commands:      make(map[string]Command, len(params.Commands)),
	}

	for _, cmd := range params.Commands {
		if cmd == nil {
			continue
		}
		name := cmd.Name()
		if _, exists := cm.commands[name]; exists {
			cm.logger.Warn("Duplicate command name, keeping the first", zap.String("command", name))

			continue
		}
		cm.commands[name] = cmd
	}

	cm.logger.Info("Loaded commands", zap.Int("count", len(cm.commands)))

	return cm
}

// GetCommand retrieves a loaded command by its name.
func (cm *CommandManager) GetCommand(name string) (Command, bool) {
	cmd, ok := cm.commands[name]

	return cmd, ok
}

// Definitions returns the registration payload, sorted by name.
func (cm *CommandManager) Definitions() []api.CreateCommandData {
	defs := make([]api.CreateCommandData, 0, len(cm.commands))
	for _, cmd := range cm.commands {
		defs = append(defs, api.CreateCommandData{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Options:     cmd.Options(),
		})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	return defs
}

// RegisterCommands overwrites the commands of every guild in guildIDs.
// Failures are collected so one bad guild does not block the rest.
func (cm *CommandManager) RegisterCommands(r Registrar, guildIDs []discord.GuildID) error {
	defs := cm.Definitions()
	if len(defs) == 0 {
		cm.logger.Info("No commands to register")

		return nil
	}

	return cm.overwrite(r, guildIDs, defs)
}

// UnregisterAllCommands clears the commands of every guild in guildIDs.
func (cm *CommandManager) UnregisterAllCommands(r Registrar, guildIDs []discord.GuildID) error {
	return cm.overwrite(r, guildIDs, []api.CreateCommandData{})
}

func (cm *CommandManager) overwrite(r Registrar, guildIDs []discord.GuildID, defs []api.CreateCommandData) error {
	var errs []error
	for _, guildID := range guildIDs {
		registered, err := r.BulkOverwriteGuildCommands(cm.applicationID, guildID, defs)
		if err != nil {
			cm.logger.Error("Failed to overwrite guild commands",
				zap.Error(err),
				zap.Stringer("applicationID", cm.applicationID),
				zap.Stringer("guildID", guildID),
			)
			errs = append(errs, fmt.Errorf("guild %s: %w", guildID, err))

			continue
		}
		cm.logger.Info("Overwrote guild commands",
			zap.Int("count", len(registered)),
			zap.Stringer("guildID", guildID),
		)
	}

	return errors.Join(errs...)
}
