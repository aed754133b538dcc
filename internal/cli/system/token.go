package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/keyring"
)

type TokenSetCmd struct {
	Token string `arg:"" optional:"" help:"Mapbox access token. Prompted for when omitted."`
}

func (c *TokenSetCmd) Run(ctx *cli.Context) error {
	token := c.Token
	if token == "" {
		prompt := huh.NewInput().
			Title("Mapbox access token").
			EchoMode(huh.EchoModePassword).
			Value(&token)
		if err := prompt.Run(); err != nil {
			return err
		}
	}

	if err := keyring.SetToken(token); err != nil {
		return err
	}
	fmt.Println("✓ Mapbox token stored in OS keyring")
	return nil
}

type TokenClearCmd struct{}

func (c *TokenClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No token stored.")
			return nil
		}
		return err
	}
	fmt.Println("✓ Mapbox token removed from OS keyring")
	return nil
}
