package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/rentverse/lettr/internal/api"
	"github.com/rentverse/lettr/internal/config"
	"github.com/rentverse/lettr/internal/draft"
	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/logger"
	"github.com/rentverse/lettr/internal/nats"
	"github.com/rentverse/lettr/internal/registry"
	"github.com/rentverse/lettr/internal/state"
	"github.com/rentverse/lettr/internal/tui/listingwizard"
)

var newFlags struct {
	name  string
	reset bool
}

var newCmd = &cobra.Command{
	Use:   "new [draft-name]",
	Short: "Start or resume a property listing",
	Long: `Start the listing wizard, or resume a saved draft.

Every edit is persisted as it happens. Quit anytime; running 'lettr new'
with the same draft name picks up exactly where you left off.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newFlags.name, "name", "n", "", "Draft name (default: 'listing', or the positional argument)")
	newCmd.Flags().BoolVar(&newFlags.reset, "reset", false, "Discard the saved draft and start fresh")
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	draftName := draftNameFrom(args, cfg)

	// Embedded NATS holds the draft event log
	ns, err := nats.StartEmbedded(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("starting draft storage: %w", err)
	}
	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return fmt.Errorf("connecting to draft storage: %w", err)
	}
	defer func() {
		if err := nats.Shutdown(nc, ns); err != nil {
			logger.Warn("Draft storage shutdown: %v", err)
		}
	}()

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		return fmt.Errorf("initializing JetStream: %w", err)
	}
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		return fmt.Errorf("setting up draft stream: %w", err)
	}
	store := draft.NewStore(js, stream)

	if newFlags.reset {
		if err := store.Purge(ctx, draftName); err != nil {
			return fmt.Errorf("resetting draft: %w", err)
		}
	}

	wiz, resumed, err := loadWizard(ctx, store, draftName)
	if err != nil {
		return err
	}
	if resumed {
		fmt.Printf("Resuming draft %q at step %d.\n", draftName, wiz.CurrentStepIndex()+1)
	}

	auth := &api.FileAuth{Path: cfg.TokenFile}
	client := api.New(cfg.APIBaseURL, auth)
	submitter := listing.NewSubmitter(wiz, auth, client, cfg.Currency)

	ui := state.Load(cfg.DataDir)
	ui.LastDraft = draftName
	if err := state.Save(cfg.DataDir, ui); err != nil {
		logger.Warn("Failed to save UI state: %v", err)
	}

	record, err := listingwizard.Run(listingwizard.Options{
		Wizard:    wiz,
		Submitter: submitter,
		Prices:    client,
		Recorder:  store,
		DraftName: draftName,
		UI:        ui,
		DataDir:   cfg.DataDir,
		Currency:  cfg.Currency,
	})
	if err != nil {
		return err
	}

	if record != nil {
		fmt.Printf("Published %q (code %s). Your listing is pending review.\n", record.Title, record.Code)
	} else {
		fmt.Printf("Draft %q saved. Resume with 'lettr new %s'.\n", draftName, draftName)
	}
	return nil
}

// draftNameFrom picks the draft name: positional arg, then --name, then the
// configured default. Names are slugified for the event subject space.
func draftNameFrom(args []string, cfg *config.Config) string {
	name := newFlags.name
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = cfg.Draft
	}
	if name == "" {
		name = "listing"
	}
	if s := slug.Make(name); s != "" {
		return s
	}
	return "listing"
}

// loadWizard restores a resumable draft, or starts a fresh wizard.
func loadWizard(ctx context.Context, store *draft.Store, draftName string) (*listing.Wizard, bool, error) {
	reg := registry.Default()

	snap, resumable, err := store.LoadSnapshot(ctx, draftName)
	if err != nil {
		return nil, false, fmt.Errorf("loading draft %q: %w", draftName, err)
	}
	if !resumable {
		return listing.New(reg), false, nil
	}

	wiz, err := listing.Restore(reg, snap)
	if err != nil {
		logger.Warn("Draft %q is corrupt, starting fresh: %v", draftName, err)
		fmt.Fprintf(os.Stderr, "Saved draft could not be restored, starting fresh.\n")
		return listing.New(reg), false, nil
	}
	return wiz, true, nil
}
