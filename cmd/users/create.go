package users

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/db/bunx"
	"github.com/folioworks/folio/internal/directory"
)

var (
	usernameFlag string
	passwordFlag string
	groupsFlag   []string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new directory user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if usernameFlag == "" {
			return fmt.Errorf("--username flag is required")
		}

		password := passwordFlag
		if stdinFlag {
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}

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

		if err := dir.CreateUser(ctx, usernameFlag, password, groupsFlag); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Println("User created successfully!")
		fmt.Println("----------------------------------------")
		fmt.Printf("Username: %s\n", usernameFlag)
		if len(groupsFlag) > 0 {
			fmt.Printf("Groups: %s\n", strings.Join(groupsFlag, ", "))
		}
		fmt.Println("----------------------------------------")

		return nil
	},
}
