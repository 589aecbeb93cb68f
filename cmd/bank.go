package cmd

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stinglish/stinglish/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the built-in question bank",
}

var bankTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List exercise topics",
	Run: func(cmd *cobra.Command, args []string) {
		bank := questionbank.Default()
		for i, topic := range bank.Topics() {
			fmt.Printf("%2d. %-28s %s\n", i+1, topic,
				color.HiBlackString("%d questions", len(bank.ExerciseQuestions(topic))))
		}
	},
}

var bankCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the question bank content",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank := questionbank.Default()
		problems := bank.Validate()
		for _, p := range problems {
			color.Red("✗ %s", p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problem(s) found", len(problems))
		}
		color.Green("✓ %d diagnostic questions, %d topics", len(bank.Pool()), len(bank.Topics()))
		return nil
	},
}

var bankSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw a diagnostic sample the way the placement test does",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetUint64("seed")
		if n < 1 {
			return fmt.Errorf("count must be at least 1")
		}

		var rng *rand.Rand
		if seed != 0 {
			rng = rand.New(rand.NewPCG(seed, seed))
		}

		bold := color.New(color.Bold)
		for i, q := range questionbank.Default().SampleN(rng, n) {
			bold.Printf("%d. [%s] ", i+1, q.Kind())
			fmt.Println(q.Text())
			switch q := q.(type) {
			case *questionbank.MultipleChoice:
				fmt.Printf("   options: %s\n", strings.Join(q.Options, " | "))
			case *questionbank.OrderSentence:
				fmt.Printf("   words:   %s\n", strings.Join(q.Words, " "))
			}
			fmt.Printf("   answer:  %s\n", color.GreenString(q.CorrectAnswer()))
		}
		return nil
	},
}

func init() {
	bankSampleCmd.Flags().IntP("count", "n", questionbank.SampleSize, "Number of questions to draw")
	bankSampleCmd.Flags().Uint64("seed", 0, "Seed for a reproducible draw (0 = random)")

	bankCmd.AddCommand(bankTopicsCmd)
	bankCmd.AddCommand(bankCheckCmd)
	bankCmd.AddCommand(bankSampleCmd)
}
