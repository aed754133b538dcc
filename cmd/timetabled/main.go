package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/cli/backups"
	"github.com/timetabled/timetabled/internal/cli/events"
	"github.com/timetabled/timetabled/internal/cli/system"
	"github.com/timetabled/timetabled/internal/config"
	"github.com/timetabled/timetabled/internal/constants"
	errs "github.com/timetabled/timetabled/internal/errors"
	"github.com/timetabled/timetabled/internal/geo"
	"github.com/timetabled/timetabled/internal/keyring"
	"github.com/timetabled/timetabled/internal/locate"
	"github.com/timetabled/timetabled/internal/logger"
	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Configuration directory." type:"path" default:"~/.config/timetabled"`
	Debug     bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize the event store and Mapbox token."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Event  struct {
		Add    events.AddCmd    `cmd:"" help:"Add a new event."`
		Edit   events.EditCmd   `cmd:"" help:"Edit an existing event."`
		Delete events.DeleteCmd `cmd:"" help:"Delete an event."`
		List   events.ListCmd   `cmd:"" help:"List events." default:"1"`
	} `cmd:"" help:"Manage events."`
	Search cli.SearchCmd `cmd:"" help:"Search for a place."`
	Route  cli.RouteCmd  `cmd:"" help:"Show the driving route to an event's destination."`
	Export cli.ExportCmd `cmd:"" help:"Export events as an iCalendar file."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage event store backups."`
	Token struct {
		Set   system.TokenSetCmd   `cmd:"" help:"Store the Mapbox access token in the OS keyring."`
		Clear system.TokenClearCmd `cmd:"" help:"Remove the Mapbox access token from the OS keyring."`
	} `cmd:"" help:"Manage the Mapbox access token."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Calendar and route planner for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir}); err != nil {
		errs.Fatalf("failed to initialize logging: %v", err)
	}

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		errs.Fatal(err)
	}

	var store storage.Provider
	switch cfg.Storage {
	case "sqlite":
		store = storage.NewSQLiteStore(filepath.Join(CLI.ConfigDir, constants.SQLiteStoreFile))
	default:
		store = storage.NewJSONStore(filepath.Join(CLI.ConfigDir, constants.JSONStoreFile))
	}

	// A missing token is not fatal: search fails softly and routing reports
	// the rejection when it is actually used.
	token, err := keyring.GetToken()
	if err != nil {
		logger.Debug("No Mapbox token available", "error", err)
	}
	geocli := geo.NewClient(token)
	geocli.BaseURL = cfg.GeoBaseURL

	var locator locate.Locator
	if cfg.HomeLocation != nil {
		locator = locate.Static{Coord: models.Coordinate{
			Latitude:  cfg.HomeLocation.Latitude,
			Longitude: cfg.HomeLocation.Longitude,
		}}
	} else {
		locator = locate.NewIPLocator(cfg.LocationEndpoint)
	}

	appCtx := &cli.Context{
		Store:     store,
		Config:    cfg,
		ConfigDir: CLI.ConfigDir,
		Geo:       geocli,
		Locator:   locator,
	}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errs.Fatal(err)
	}
}
