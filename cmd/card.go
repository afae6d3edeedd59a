package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/cards"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add, list and draft vocabulary cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <term> [meaning]",
	Short: "Add a card to the collection",
	Long: "Add a card to the collection. When the meaning is omitted and an LLM " +
		"provider is configured, a meaning and example note are suggested.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		note, _ := cmd.Flags().GetString("note")

		st, err := openStore(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		term := args[0]
		var meaning string
		if len(args) == 2 {
			meaning = args[1]
		} else {
			sg, err := newSuggester(ctx, appConfig, st.EventRepo())
			if err != nil {
				return fmt.Errorf("configure LLM provider: %w", err)
			}
			if sg == nil {
				return errors.New("meaning is required when no LLM provider is configured")
			}
			s, err := sg.Suggest(ctx, term)
			if err != nil {
				return err
			}
			meaning = s.Meaning
			if note == "" {
				note = s.Note
			}
		}

		term, meaning, note = cards.Normalize(term, meaning, note)
		if err := cards.Validate(term, meaning, note); err != nil {
			return err
		}

		store, err := cardStore(appConfig, st)
		if err != nil {
			return err
		}
		c, err := store.Create(ctx, term, meaning, note)
		if err != nil {
			return fmt.Errorf("save card: %w", err)
		}
		fmt.Printf("Added %s (%s)  id=%s\n", c.Term, c.Meaning, c.ID)
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		store, err := cardStore(appConfig, st)
		if err != nil {
			return err
		}
		pool, err := store.FetchAll(ctx)
		if err != nil {
			return fmt.Errorf("fetch cards: %w", err)
		}
		if len(pool) == 0 {
			fmt.Println("No cards yet. Add one with `tango card add`.")
			return nil
		}

		learned, err := ledgerFor(st).GetAll(ctx)
		if err != nil {
			return fmt.Errorf("read learned cards: %w", err)
		}

		sorted := cards.NewestFirst(pool)
		if limit > 0 && limit < len(sorted) {
			sorted = sorted[:limit]
		}

		fmt.Printf("%-3s  %-24s  %-32s  %s\n", "", "Term", "Meaning", "Note")
		fmt.Println(strings.Repeat("─", 80))
		for _, c := range sorted {
			mark := ""
			if learned[c.ID] {
				mark = "✓"
			}
			fmt.Printf("%-3s  %-24s  %-32s  %s\n",
				mark, truncate(c.Term, 24), truncate(c.Meaning, 32), truncate(c.Note, 40))
		}
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%d cards, %d shown\n", len(pool), len(sorted))
		return nil
	},
}

var cardSuggestCmd = &cobra.Command{
	Use:   "suggest <term>",
	Short: "Ask the LLM provider for a meaning and example note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		sg, err := newSuggester(ctx, appConfig, st.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		if sg == nil {
			return errors.New("no LLM provider configured; set TANGO_LLM_PROVIDER or a provider API key")
		}

		s, err := sg.Suggest(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Term:     %s\n", strings.TrimSpace(args[0]))
		fmt.Printf("Meaning:  %s\n", s.Meaning)
		if s.Note != "" {
			fmt.Printf("Note:     %s\n", s.Note)
		}
		return nil
	},
}

func init() {
	cardAddCmd.Flags().StringP("note", "N", "", "Example sentence or note")
	cardListCmd.Flags().IntP("limit", "n", 0, "Number of cards to show (0 = all)")

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardSuggestCmd)
}
