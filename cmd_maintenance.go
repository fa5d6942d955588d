package main

import (
	"encoding/json"
	"fmt"

	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var dryRun bool

var setupIndexesCmd = &cobra.Command{
	Use:   "setup-indexes",
	Short: "Create the MongoDB indexes the server relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := database.Connect(cmd.Context(), cfg.MongoURL, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(cmd.Context())

		if err := database.EnsureIndexes(cmd.Context(), client.Database(cfg.DBName), logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "indexes are in place")
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup-duplicates",
	Short: "Remove duplicate artist accounts, keeping the oldest",
	Long: `Finds artists sharing an email or artistid and deletes every copy except
the oldest one. Unique indexes cannot be created while duplicates exist.

Use --dry-run to print the plan without deleting anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := database.Connect(cmd.Context(), cfg.MongoURL, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(cmd.Context())

		artists := database.NewArtistStore(client.Database(cfg.DBName))
		groups, err := artists.FindDuplicateArtists(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(groups); err != nil {
			return err
		}

		ids := duplicateIDs(groups)
		if dryRun || len(ids) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d duplicate documents found, nothing deleted\n", len(ids))
			return nil
		}

		removed, err := artists.RemoveByObjectIDs(cmd.Context(), ids)
		if err != nil {
			return err
		}
		logger.Info("[cleanup] duplicates removed", zap.Int64("removed", removed))
		fmt.Fprintf(cmd.OutOrStdout(), "%d duplicate documents deleted\n", removed)
		return nil
	},
}

// duplicateIDs flattens the groups into the ids to delete. A document can be
// a duplicate by both email and artistid, so ids are de-duplicated, and an id
// kept by one group is never removed because of another.
func duplicateIDs(groups []database.DuplicateGroup) []primitive.ObjectID {
	keep := make(map[primitive.ObjectID]bool)
	for _, g := range groups {
		keep[g.Keep] = true
	}
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, g := range groups {
		for _, id := range g.Remove {
			if keep[id] || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
