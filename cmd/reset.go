package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/ledger"
	"github.com/abhisek/tango/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget which cards are learned so every card is studied again",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("Clear learned progress for all cards? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := openStore(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := ledgerFor(st).Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear learned cards: %w", err)
		}
		fmt.Println("Learned progress cleared.")
		return nil
	},
}

func ledgerFor(st *store.Store) *ledger.Ledger {
	return ledger.New(st.KV())
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
