package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/db/bunx"
	"github.com/folioworks/folio/internal/directory"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory users",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.DirectoryDSN == "" {
			return fmt.Errorf("user management requires a database-backed directory (DIRECTORY_DSN must be set)")
		}

		db, err := bunx.NewDB(cfg.DirectoryDSN)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		ctx := context.Background()
		dir := directory.NewDBDirectory(db)
		if err := dir.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize directory schema: %w", err)
		}

		identities, err := dir.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(identities) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		for _, id := range identities {
			if len(id.Groups) > 0 {
				fmt.Printf("%s\t[%s]\n", id.Username, strings.Join(id.Groups, ", "))
			} else {
				fmt.Println(id.Username)
			}
		}
		return nil
	},
}
