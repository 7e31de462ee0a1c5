package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/safe-or-dead/internal/games/safeordead"
	"github.com/vovakirdan/safe-or-dead/internal/round"
)

var flagBet int

const howToPlay = `How to Play

Choose SAFE tiles to progress and win coins!
Avoid DEAD tiles or lose everything.

Each level has a different number of DEAD tiles and its own multiplier.
The higher you go, the more you can win!

You can cash out at any time to secure your winnings.
Reach level 8 to hit the JACKPOT!`

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table and odds",
	Long: `Print how to play and the level table in use: DEAD tiles per level,
the payout multiplier once a level is cleared, the chance of surviving
each level and of reaching it from the start, and what a bet pays.

Examples:
  safeordead levels
  safeordead levels --bet 250
  safeordead levels --config ./hard.yaml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagBet, "bet", 0, "Bet used for the payout column (default: the configured default bet)")
}

func runLevels(_ *cobra.Command, _ []string) {
	rules := loadRules()
	table := rules.Table()

	bet := flagBet
	if bet == 0 {
		bet = rules.Bet.Default
	}
	if bet < 1 {
		fail("--bet must be greater than 0")
	}

	fmt.Println(howToPlay)
	fmt.Println()

	fmt.Printf("  %-5s  %4s  %10s  %7s  %7s  %s\n", "Level", "Dead", "Multiplier", "Survive", "Reach", "Payout for "+safeordead.FormatCoins(bet))
	fmt.Printf("  %-5s  %4s  %10s  %7s  %7s  %s\n", "-----", "----", "----------", "-------", "-----", "----------")

	for level := round.Levels; level >= 1; level-- {
		i := level - 1
		mult := table.MultiplierFor(level)
		fmt.Printf("  %-5d  %4d  %9.2fx  %6.1f%%  %6.2f%%  %s\n",
			level,
			table.Hazards(i),
			mult,
			table.SurvivalOdds(i)*100,
			table.CumulativeOdds(level)*100,
			safeordead.FormatCoins(round.Payout(bet, mult)),
		)
	}

	fmt.Println()
	fmt.Printf("Bets: %s to %s coins. Starting balance: %s coins.\n",
		safeordead.FormatCoins(1),
		safeordead.FormatCoins(rules.Bet.Max),
		safeordead.FormatCoins(rules.Balance.Starting))
}
