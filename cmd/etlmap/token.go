package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"etlmap/internal/auth"
	"etlmap/internal/storage"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new API token",
	Long: `Create a new API token for the HTTP server. The token is printed
once and only a bcrypt hash is stored, so copy it now.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenCreate,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API tokens",
	RunE:  runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <token-id>",
	Short: "Revoke an API token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
}

func openTokenStore() (*auth.TokenStore, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)

	db, err := storage.Open(configRoot, logger)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewTokenStore(db), func() { _ = db.Close() }, nil
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	tokens, closeDB, err := openTokenStore()
	if err != nil {
		return err
	}
	defer closeDB()

	tok, raw, err := tokens.Create(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Created token %q (id %s)\n\n", tok.Name, tok.ID)
	fmt.Printf("  %s\n\n", raw)
	fmt.Println("Store this token now; it cannot be shown again.")
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	tokens, closeDB, err := openTokenStore()
	if err != nil {
		return err
	}
	defer closeDB()

	list, err := tokens.List()
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No tokens.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPREFIX\tCREATED\tSTATUS")
	for _, tok := range list {
		status := "active"
		if tok.Revoked {
			status = "revoked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tok.ID,
			tok.Name,
			tok.Prefix,
			tok.CreatedAt.Format("2006-01-02 15:04"),
			status)
	}
	return w.Flush()
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	tokens, closeDB, err := openTokenStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := tokens.Revoke(args[0]); err != nil {
		return err
	}

	fmt.Printf("Revoked token %s\n", args[0])
	return nil
}
