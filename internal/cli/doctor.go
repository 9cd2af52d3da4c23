package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"habitkit/internal/backup"
	"habitkit/internal/constants"
	"habitkit/internal/storage"
	"habitkit/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("habitkit doctor")
	fmt.Println()

	failures := 0
	report := func(ok bool, name, detail string) {
		mark := "ok"
		if !ok {
			mark = "FAIL"
			failures++
		}
		fmt.Printf("  [%-4s] %-24s %s\n", mark, name, detail)
	}
	warn := func(name, detail string) {
		fmt.Printf("  [warn] %-24s %s\n", name, detail)
	}

	// Store reachability.
	if err := ctx.Store.Load(); err != nil {
		report(false, "store", err.Error())
		fmt.Printf("\n%d problem(s) found.\n", failures)
		return fmt.Errorf("doctor found problems")
	}
	report(true, "store", ctx.Store.GetConfigPath())

	// Schema version.
	if s, ok := ctx.Store.(*storage.SQLiteStore); ok {
		var version int
		if err := s.GetDB().QueryRow("PRAGMA user_version").Scan(&version); err != nil {
			report(false, "schema version", err.Error())
		} else {
			report(version == storage.SchemaVersion, "schema version",
				fmt.Sprintf("%d (want %d)", version, storage.SchemaVersion))
		}
	}

	// Data validation.
	habits, err := ctx.Store.GetAllHabits(ctx.Owner, true)
	if err != nil {
		report(false, "habits", err.Error())
	} else {
		result := validation.ValidateHabits(habits)
		if result.HasErrors() {
			report(false, "data validation", fmt.Sprintf("%d conflict(s), run 'habitkit validate'", len(result.Conflicts)))
		} else {
			detail := fmt.Sprintf("%d habits", len(habits))
			if len(result.Conflicts) > 0 {
				detail += fmt.Sprintf(", %d warning(s)", len(result.Conflicts))
			}
			report(true, "data validation", detail)
		}
	}

	// Backups.
	path := ctx.Store.GetConfigPath()
	if _, remote := ctx.Store.(*storage.PostgresStore); remote {
		warn("backups", "remote store, backups are managed server-side")
	} else {
		backups, err := backup.NewManager(path).ListBackups()
		switch {
		case err != nil:
			warn("backups", err.Error())
		case len(backups) == 0:
			warn("backups", "none found, run 'habitkit backup create'")
		default:
			age := time.Since(backups[0].Timestamp).Round(time.Minute)
			report(true, "backups", fmt.Sprintf("%d, newest %s ago", len(backups), age))
		}
	}

	// Concurrent writers. Another running habitkit could interleave
	// read-modify-write cycles on the same store file.
	if procs, err := ps.Processes(); err == nil {
		others := 0
		for _, p := range procs {
			if p.Pid() == os.Getpid() {
				continue
			}
			if strings.HasPrefix(p.Executable(), constants.AppName) {
				others++
			}
		}
		if others > 0 {
			warn("concurrent processes", fmt.Sprintf("%d other %s process(es) running", others, constants.AppName))
		} else {
			report(true, "concurrent processes", "none")
		}
	}

	// Clock sanity. A clock far in the past makes every recorded
	// outcome land on the wrong day.
	if t := time.Now(); t.Year() < 2020 {
		report(false, "system clock", t.Format(time.RFC3339))
	} else {
		report(true, "system clock", t.Format(time.RFC3339))
	}

	fmt.Println()
	if failures > 0 {
		fmt.Printf("%d problem(s) found.\n", failures)
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
