package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scarydoors/jokerforge/internal/gamevar"
)

var gamevarsCmd = &cobra.Command{
	Use:   "gamevars",
	Short: "List the game variables rules may reference",
	Long: `Lists every game variable id with the configuration name it is stored
under and the Lua expression it reads. Reference one from a rule parameter as
GAMEVAR:<id>|<multiplier>|<starts_from>.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tCONFIG NAME\tLUA")
		for _, v := range gamevar.Default().Variables() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, v.Category, gamevar.Slug(v.Label), v.Code)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(gamevarsCmd)
}
