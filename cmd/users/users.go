// Package users holds the user management subcommands for the
// database-backed directory.
package users

import "github.com/spf13/cobra"

// UsersCmd is the parent command for user management operations
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage directory users",
	Long:  `Commands for managing users in the database-backed directory.`,
}

func init() {
	createCmd.Flags().StringVar(&usernameFlag, "username", "", "Username of the user")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password for the user (use --stdin to avoid shell history)")
	createCmd.Flags().StringSliceVar(&groupsFlag, "group", []string{}, "Group(s) the user belongs to")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")

	UsersCmd.AddCommand(createCmd)
	UsersCmd.AddCommand(listCmd)
}
