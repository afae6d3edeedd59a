package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection and quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		recent, _ := cmd.Flags().GetInt("recent")

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
		learned, err := ledgerFor(st).GetAll(ctx)
		if err != nil {
			return fmt.Errorf("read learned cards: %w", err)
		}
		var mastered int
		for _, c := range pool {
			if learned[c.ID] {
				mastered++
			}
		}

		fmt.Println("Collection")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-16s  %d\n", "Cards", len(pool))
		fmt.Printf("%-16s  %d\n", "Learned", mastered)
		fmt.Printf("%-16s  %d\n", "To study", len(pool)-mastered)

		repo := st.EventRepo()
		qs, err := repo.QuizStats(ctx)
		if err != nil {
			return fmt.Errorf("query quiz stats: %w", err)
		}

		fmt.Println()
		fmt.Println("Quizzes")
		fmt.Println(strings.Repeat("─", 48))
		if qs.Quizzes == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}
		fmt.Printf("%-16s  %d\n", "Taken", qs.Quizzes)
		fmt.Printf("%-16s  %d / %d\n", "Correct", qs.Correct, qs.Answered)
		fmt.Printf("%-16s  %.0f%%\n", "Accuracy", qs.Accuracy()*100)
		fmt.Printf("%-16s  %d / %d\n", "Best", qs.BestScore, qs.BestOf)
		fmt.Printf("%-16s  %d\n", "Timed out", qs.TimedOut)
		fmt.Printf("%-16s  %s\n", "Time spent", qs.TotalElapsed)
		fmt.Printf("%-16s  %s\n", "Last quiz", qs.LastTakenAt.Local().Format("2006-01-02 15:04"))

		if recent <= 0 {
			return nil
		}
		events, err := repo.RecentQuizEvents(ctx, recent)
		if err != nil {
			return fmt.Errorf("query quiz events: %w", err)
		}

		fmt.Println()
		fmt.Printf("%-16s  %-9s  %-8s  %-7s  %s\n", "Date", "Score", "Answered", "Time", "")
		fmt.Println(strings.Repeat("─", 60))
		for _, e := range events {
			flag := ""
			if e.TimedOut {
				flag = "timed out"
			}
			fmt.Printf("%-16s  %-9s  %-8d  %-7s  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d/%d", e.Score, e.QuestionCount),
				e.Answered,
				(time.Duration(e.ElapsedSecs) * time.Second).String(),
				flag,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 10, "Number of recent quizzes to list (0 = none)")
}
