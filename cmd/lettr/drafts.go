package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentverse/lettr/internal/config"
	"github.com/rentverse/lettr/internal/draft"
	"github.com/rentverse/lettr/internal/logger"
	"github.com/rentverse/lettr/internal/nats"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List saved listing drafts",
	RunE:  runDrafts,
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear <draft-name>",
	Short: "Delete a saved draft and all its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsClear,
}

func init() {
	draftsCmd.AddCommand(draftsClearCmd)
}

// withDraftStore runs fn against the draft store, handling NATS lifecycle.
func withDraftStore(fn func(ctx context.Context, store *draft.Store) error) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

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

	return fn(ctx, draft.NewStore(js, stream))
}

func runDrafts(cmd *cobra.Command, args []string) error {
	return withDraftStore(func(ctx context.Context, store *draft.Store) error {
		infos, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("listing drafts: %w", err)
		}

		if len(infos) == 0 {
			fmt.Println("No drafts yet. Run 'lettr new' to start one.")
			return nil
		}

		for _, info := range infos {
			status := "in progress"
			switch {
			case info.Submitted:
				status = "published"
			case !info.Dirty:
				status = "empty"
			}
			fmt.Printf("%-24s %-12s %4d events  last edit %s\n",
				info.Name, status, info.Events, info.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	})
}

func runDraftsClear(cmd *cobra.Command, args []string) error {
	name := args[0]
	return withDraftStore(func(ctx context.Context, store *draft.Store) error {
		if err := store.Purge(ctx, name); err != nil {
			return fmt.Errorf("clearing draft %q: %w", name, err)
		}
		fmt.Printf("Draft %q cleared.\n", name)
		return nil
	})
}
