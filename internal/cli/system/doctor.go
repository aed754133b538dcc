package system

import (
	"fmt"
	"time"

	"github.com/timetabled/timetabled/internal/backup"
	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/keyring"
	"github.com/timetabled/timetabled/internal/lock"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: store data valid (only if reachable)
	if storeReachable {
		if err := checkStoreIntegrity(ctx); err != nil {
			fmt.Printf("❌ Store integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Store integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Store integrity: SKIPPED (store not reachable)\n")
	}

	// Check 3: lockfile sanity (warning only)
	if pid, alive, exists := lock.Holder(ctx.ConfigDir); exists {
		if alive {
			fmt.Printf("⚠ Store lock: held by running process (pid %d)\n", pid)
		} else {
			fmt.Printf("⚠ Store lock: stale lockfile from dead process (pid %d), will be reclaimed\n", pid)
		}
	} else {
		fmt.Printf("✓ Store lock: free\n")
	}

	// Check 4: Mapbox token present (warning only)
	if _, err := keyring.GetToken(); err != nil {
		fmt.Printf("⚠ Mapbox token: WARNING\n")
		fmt.Printf("   %v - destination search and routing will be unavailable\n", err)
		fmt.Printf("   Set one with 'timetabled token set' or the %s environment variable\n", constants.TokenEnvVar)
	} else {
		fmt.Printf("✓ Mapbox token: OK\n")
	}

	// Check 5: backups present (warning only)
	mgr := backup.NewManager(ctx.Store.GetStorePath())
	if backups, err := mgr.ListBackups(); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   failed to list backups: %v\n", err)
	} else if len(backups) == 0 {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   no backups found - consider creating one with 'timetabled backup create'\n")
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 6: clock/timezone sanity
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: system time appears incorrect: %s\n", now.Format(time.RFC3339))
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreIntegrity(ctx *cli.Context) error {
	all, err := ctx.Store.AllEvents()
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	seen := make(map[string]string)
	for date, bucket := range all {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return fmt.Errorf("malformed date key %q", date)
		}
		if len(bucket) == 0 {
			return fmt.Errorf("empty bucket for date %s (should have been removed)", date)
		}
		for _, ev := range bucket {
			if prev, dup := seen[ev.ID]; dup {
				return fmt.Errorf("duplicate event ID %s on %s and %s", ev.ID, prev, date)
			}
			seen[ev.ID] = date
			if _, err := time.Parse(constants.TimeFormat, ev.Time); err != nil {
				return fmt.Errorf("event %s on %s has malformed time %q", ev.ID, date, ev.Time)
			}
		}
	}
	return nil
}
