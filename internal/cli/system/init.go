package system

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/config"
	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/keyring"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing event store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	storage := ctx.Config.Storage
	token := ""
	storeToken := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Description("Where events are persisted.").
				Options(
					huh.NewOption("JSON file (default)", "json"),
					huh.NewOption("SQLite database", "sqlite"),
				).
				Value(&storage),
			huh.NewInput().
				Title("Mapbox access token").
				Description("Used for destination search and driving routes. Leave empty to configure later.").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("initialization cancelled: %w", err)
	}

	if token != "" && !keyring.IsAvailable() {
		storeToken = false
		confirm := huh.NewConfirm().
			Title("OS keyring unavailable").
			Description(fmt.Sprintf("The token cannot be stored securely. Use the %s environment variable instead?", constants.TokenEnvVar)).
			Value(&storeToken)
		if err := confirm.Run(); err != nil {
			return err
		}
	}

	if c.Force {
		storePath := ctx.Store.GetStorePath()
		if _, err := os.Stat(storePath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing event store at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	ctx.Config.Storage = storage
	if err := config.Save(ctx.ConfigDir, ctx.Config); err != nil {
		return err
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized event store at: %s\n", ctx.Store.GetStorePath())

	if token != "" && storeToken {
		if err := keyring.SetToken(token); err != nil {
			return fmt.Errorf("failed to store Mapbox token: %w", err)
		}
		fmt.Println("✓ Mapbox token stored in OS keyring")
	}

	return nil
}
