package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	kpg "github.com/autoserve/autoserve/pkg/domain/autoserve/db/postgres"
	schemapg "github.com/autoserve/autoserve/pkg/domain/schema/db/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	var database string
	var schemaRepo string

	cmd := &cobra.Command{
		Use:           "schema_upgrader",
		Short:         "apply database schema migrations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(
		&database, "database", os.Getenv("AUTOSERVE_DATABASE"),
		"postgres://... URL of the database",
	)
	cmd.PersistentFlags().StringVar(
		&schemaRepo, "schema", os.Getenv("AUTOSERVE_SCHEMA"),
		"path to the schema repository directory",
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "upgrade",
		Short: "apply migrations the database has not seen yet",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			db, err := kpg.New(ctx, database, kpg.WithSchemaRepository(schemaRepo))
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := db.Schema().Upgrade(ctx)
			if err != nil {
				return err
			}

			for _, m := range applied {
				fmt.Fprintf(c.OutOrStdout(), "applied: %03d_%s\n", m.Version, m.Name)
			}
			version, err := db.Schema().Version(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "schema version: %d\n", version)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new NAME",
		Short: "create an empty migration file in the schema repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path, err := schemapg.CreateTemplate(schemaRepo, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), path)
			return nil
		},
	})

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
