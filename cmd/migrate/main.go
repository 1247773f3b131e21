package main

import (
	"fmt"
	"os"
	"strconv"

	"giftlist-api/internal/migration"
)

const usage = `Schema migration tool for the gift list database.

Usage:
  migrate <command> [arguments]

Commands:
  up              Apply all pending migrations
  down            Roll back the last migration
  version         Show current schema version
  steps <n>       Run n migrations (negative rolls back)
  force <version> Overwrite the recorded version (dirty state recovery)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	mg, err := migration.OpenFromEnv()
	if err != nil {
		fatal(err)
	}
	defer mg.Close()

	if err := run(mg, os.Args[1], os.Args[2:]); err != nil {
		fatal(err)
	}
}

func run(mg *migration.Migrator, command string, args []string) error {
	switch command {
	case "up":
		if err := mg.Up(); err != nil {
			return err
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := mg.Down(); err != nil {
			return err
		}
		fmt.Println("Rolled back one migration")
	case "version":
		v, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		if dirty {
			fmt.Printf("Version %d (dirty; use 'force' to recover)\n", v)
		} else {
			fmt.Printf("Version %d\n", v)
		}
	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		if err := mg.Steps(n); err != nil {
			return err
		}
		fmt.Printf("Ran %d migration steps\n", n)
	case "force":
		v, err := intArg(args, "force")
		if err != nil {
			return err
		}
		if err := mg.Force(v); err != nil {
			return err
		}
		fmt.Printf("Forced version to %d (no migrations were run)\n", v)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}

func intArg(args []string, command string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("'%s' requires a numeric argument", command)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid argument %q: %w", args[0], err)
	}
	return n, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
