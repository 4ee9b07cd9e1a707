// Package main is the glassdeskctl command, a maintenance tool for
// glassdesk state files: inspect, validate, migrate, and manage backups.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyrup-ai/glassdesk/internal/state"
	"github.com/cyrup-ai/glassdesk/internal/state/codec"
	"github.com/cyrup-ai/glassdesk/internal/state/migrate"
	"github.com/cyrup-ai/glassdesk/internal/storage"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const usage = `Usage: glassdeskctl [flags] <command> [args]

Commands:
  init               Write a default state file
  validate <file>    Check a state document for validity
  migrate <file>     Upgrade a state document to the current schema
  stats              Show storage usage statistics
  backups            List backup entries, newest first
  restore <name>     Replace the primary file with a backup entry
  cleanup            Prune backups beyond the retention count

Flags:
`

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dir         string
		policyPath  string
		showVersion bool
	)

	flag.StringVar(&dir, "dir", defaultStateDir(), "State base directory")
	flag.StringVar(&policyPath, "config", "", "Path to a storage policy file (TOML or YAML)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("glassdeskctl %s (%s)\n", version, commit)
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	policy, err := loadPolicy(policyPath, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	store, err := storage.New(policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := dispatch(store, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadPolicy(path, dir string) (storage.Policy, error) {
	if path != "" {
		return storage.LoadPolicy(path)
	}
	policy := storage.DefaultPolicy(dir)
	policy.ApplyEnv()
	return policy, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".glassdesk/state"
	}
	return filepath.Join(home, ".glassdesk", "state")
}

func dispatch(store *storage.Store, command string, args []string) error {
	switch command {
	case "init":
		return cmdInit(store)
	case "validate":
		return cmdValidate(args)
	case "migrate":
		return cmdMigrate(args)
	case "stats":
		return cmdStats(store)
	case "backups":
		return cmdBackups(store)
	case "restore":
		return cmdRestore(store, args)
	case "cleanup":
		return cmdCleanup(store)
	}
	return fmt.Errorf("unknown command %q", command)
}

func cmdInit(store *storage.Store) error {
	if store.Exists() {
		return fmt.Errorf("state file already exists at %s", store.PrimaryPath())
	}
	if err := store.Save(state.New()); err != nil {
		return err
	}
	fmt.Printf("Wrote default state to %s\n", store.PrimaryPath())
	return nil
}

func cmdValidate(args []string) error {
	if len(args) != 1 {
		return errors.New("validate requires exactly one file argument")
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ser := codec.New()
	if err := ser.ValidateDocument(data); err != nil {
		return fmt.Errorf("document check failed: %w", err)
	}
	st, err := ser.Decode(data)
	if err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}

	fmt.Printf("%s: valid (schema %s)\n", path, st.SchemaVersion)
	return nil
}

func cmdMigrate(args []string) error {
	if len(args) != 1 {
		return errors.New("migrate requires exactly one file argument")
	}
	path := args[0]

	exec := storage.NewExecutor(codec.New(codec.WithPrettyPrint(true)), migrate.NewMigrator())
	results := exec.Execute(context.Background(), []storage.Op{storage.NewMigrateOp(path)})
	if err := results[0].Err; err != nil {
		return err
	}
	fmt.Printf("%s: migrated to schema %s\n", path, state.SchemaVersion)
	return nil
}

func cmdStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Base directory:  %s\n", stats.BaseDirectory)
	if stats.PrimaryExists {
		fmt.Printf("Primary file:    %s (modified %s)\n",
			stats.PrimarySizeHuman(), stats.PrimaryModified.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Primary file:    not present")
	}
	fmt.Printf("Backups:         %d (%s)\n", stats.BackupCount, stats.TotalBackupSizeHuman())
	fmt.Printf("Total size:      %s\n", stats.TotalSizeHuman())
	return nil
}

func cmdBackups(store *storage.Store) error {
	backups, err := store.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.Name, b.Size)
	}
	return nil
}

func cmdRestore(store *storage.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("restore requires exactly one backup name argument")
	}
	if err := store.RestoreFromBackup(args[0]); err != nil {
		return err
	}
	fmt.Printf("Restored %s to %s\n", args[0], store.PrimaryPath())
	return nil
}

func cmdCleanup(store *storage.Store) error {
	removed, err := store.CleanupOldBackups()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d old backup(s)\n", removed)
	return nil
}
