package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/scarydoors/jokerforge/internal/core/auth"
	"github.com/scarydoors/jokerforge/internal/core/config"
	"github.com/scarydoors/jokerforge/internal/core/db"
	"github.com/scarydoors/jokerforge/internal/types"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage compiler API keys",
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a new API key and print it once",
	Args:  cobra.NoArgs,
	RunE:  runAPIKeyCreate,
}

var apikeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued API keys",
	Args:  cobra.NoArgs,
	RunE:  runAPIKeyList,
}

var apikeyRevokeCmd = &cobra.Command{
	Use:   "revoke <api-key-id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runAPIKeyRevoke,
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeyCreateCmd, apikeyListCmd, apikeyRevokeCmd)
	apikeyCreateCmd.Flags().String("name", "", "label for the key (required)")
	apikeyCreateCmd.Flags().String("secret-id", "", "HMAC secret to bind the key to (required when several are configured)")
	_ = apikeyCreateCmd.MarkFlagRequired("name")
}

func openKeyStore() (*db.APIKeyStore, func() error, error) {
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := requireMigrated(database); err != nil {
		database.Close()
		return nil, nil, err
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return db.NewAPIKeyStore(queries), database.Close, nil
}

// pickSecret selects the HMAC secret new keys are bound to.
func pickSecret(secrets map[string][]byte, want string) (string, []byte, error) {
	if want != "" {
		secret, ok := secrets[want]
		if !ok {
			return "", nil, fmt.Errorf("secret_id %s is not configured", want)
		}
		return want, secret, nil
	}
	switch len(secrets) {
	case 0:
		return "", nil, fmt.Errorf("no HMAC secrets configured (set JF_HMAC_SECRET environment variable)")
	case 1:
		for id, secret := range secrets {
			return id, secret, nil
		}
	}
	ids := make([]string, 0, len(secrets))
	for id := range secrets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return "", nil, fmt.Errorf("several secrets configured, choose one with --secret-id (%s)", strings.Join(ids, ", "))
}

func runAPIKeyCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	wantID, _ := cmd.Flags().GetString("secret-id")

	secrets, err := config.HMACSecrets()
	if err != nil {
		return fmt.Errorf("failed to load HMAC secrets: %w", err)
	}
	secretID, secret, err := pickSecret(secrets, wantID)
	if err != nil {
		return err
	}

	store, closeDB, err := openKeyStore()
	if err != nil {
		return err
	}
	defer closeDB()

	key, hash, err := auth.GenerateAPIKey(secretID, secret)
	if err != nil {
		return err
	}
	rec, err := store.Create(cmd.Context(), name, secretID, hash)
	if err != nil {
		return err
	}

	logger.Info("api key created", "api_key_id", rec.APIKeyID, "name", name, "secret_id", secretID)
	fmt.Fprintln(cmd.OutOrStdout(), key)
	return nil
}

func runAPIKeyList(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openKeyStore()
	if err != nil {
		return err
	}
	defer closeDB()

	keys, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tLAST USED\tSTATUS")
	for _, k := range keys {
		lastUsed, state := "never", "active"
		if k.LastUsedAt != nil {
			lastUsed = k.LastUsedAt.Format(time.RFC3339)
		}
		if k.RevokedAt != nil {
			state = "revoked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k.APIKeyID, k.Name, k.CreatedAt.Format(time.RFC3339), lastUsed, state)
	}
	return w.Flush()
}

func runAPIKeyRevoke(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openKeyStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Revoke(cmd.Context(), types.APIKeyID(args[0])); err != nil {
		return err
	}
	logger.Info("api key revoked", "api_key_id", args[0])
	return nil
}
