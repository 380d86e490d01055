package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentverse/lettr/internal/api"
	"github.com/rentverse/lettr/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check your lettr setup",
	Long: `Check that lettr can find its configuration, write drafts, and reach
the Rentverse API with your credentials.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", name, err)
			return
		}
		fmt.Printf("✓ %s\n", name)
	}

	cfg, err := config.Load()
	check("configuration", err)
	if err != nil {
		return fmt.Errorf("%d check(s) failed", failed)
	}

	if config.Exists() {
		fmt.Printf("  using %s\n", configInUse())
	} else {
		fmt.Println("  no config file found, using defaults (run 'lettr setup' to create one)")
	}

	check("data directory writable", checkDataDir(cfg.DataDir))
	check("auth token", checkToken(cfg.TokenFile))
	check("Rentverse API reachable", checkAPI(cfg))

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Println("\nAll good. Run 'lettr new' to start a listing.")
	return nil
}

func configInUse() string {
	if _, err := os.Stat(config.ProjectPath()); err == nil {
		return config.ProjectPath()
	}
	return config.GlobalPath()
}

func checkDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe := dir + "/.doctor-probe"
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}

func checkToken(path string) error {
	auth := &api.FileAuth{Path: path}
	if _, err := auth.Token(); err != nil {
		return fmt.Errorf("%w (log in on rentverse.com and save your token to %s)", err, path)
	}
	return nil
}

func checkAPI(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := api.New(cfg.APIBaseURL, &api.FileAuth{Path: cfg.TokenFile})
	types, err := client.PropertyTypes(ctx)
	if err != nil {
		return err
	}
	if len(types) == 0 {
		return fmt.Errorf("API responded but returned no property types")
	}
	return nil
}
