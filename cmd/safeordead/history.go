package main

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/safe-or-dead/internal/games/safeordead"
	"github.com/vovakirdan/safe-or-dead/internal/platform/tui"
	"github.com/vovakirdan/safe-or-dead/internal/storage"
)

var (
	flagLimit   int
	flagJSON    bool
	flagHistTUI bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds and totals",
	Long: `Display the most recent rounds from the history database, newest
first, followed by totals over the whole history.

Examples:
  safeordead history
  safeordead history --limit 50
  safeordead history --json
  safeordead history --tui`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagJSON, "json", false, "Print as JSON")
	historyCmd.Flags().BoolVar(&flagHistTUI, "tui", false, "Browse the history in a scrollable table")
}

// roundJSON is the --json form of a round.
type roundJSON struct {
	RoundID       string    `json:"round_id"`
	Outcome       string    `json:"outcome"`
	Bet           int       `json:"bet"`
	LevelsCleared int       `json:"levels_cleared"`
	Payout        int       `json:"payout"`
	Net           int       `json:"net"`
	BalanceAfter  int       `json:"balance_after"`
	Commitment    string    `json:"commitment"`
	Salt          string    `json:"salt"`
	Layouts       string    `json:"layouts"`
	CreatedAt     time.Time `json:"created_at"`
}

type statsJSON struct {
	Rounds     int `json:"rounds"`
	Wagered    int `json:"wagered"`
	PaidOut    int `json:"paid_out"`
	Net        int `json:"net"`
	Deaths     int `json:"deaths"`
	CashOuts   int `json:"cash_outs"`
	Jackpots   int `json:"jackpots"`
	BestPayout int `json:"best_payout"`
}

type historyJSON struct {
	Stats  statsJSON   `json:"stats"`
	Rounds []roundJSON `json:"rounds"`
}

func runHistory(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagHistTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	rounds, err := store.RecentRounds(flagLimit)
	if err != nil {
		fail("retrieving rounds: %v", err)
	}
	stats, err := store.Stats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	if flagJSON {
		printHistoryJSON(rounds, stats)
		return
	}

	fmt.Println("Round History")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'safeordead play' to start your history!")
		return
	}

	fmt.Printf("  %-36s  %-8s  %6s  %6s  %8s  %8s  %s\n", "Round", "Outcome", "Bet", "Levels", "Payout", "Net", "Date")
	fmt.Printf("  %-36s  %-8s  %6s  %6s  %8s  %8s  %s\n", "-----", "-------", "---", "------", "------", "---", "----")
	for _, r := range rounds {
		fmt.Printf("  %-36s  %-8s  %6s  %6s  %8s  %8s  %s\n",
			r.RoundID,
			r.Outcome,
			safeordead.FormatCoins(r.Bet),
			fmt.Sprintf("%d/8", r.LevelsCleared),
			safeordead.FormatCoins(r.Payout),
			safeordead.FormatCoins(r.Net()),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  Dead: %d  Cashed out: %d  Jackpots: %d\n",
		stats.Rounds, stats.Deaths, stats.CashOuts, stats.Jackpots)
	fmt.Printf("Wagered: %s  Paid out: %s  Net: %s  Best: %s\n",
		safeordead.FormatCoins(stats.Wagered),
		safeordead.FormatCoins(stats.PaidOut),
		safeordead.FormatCoins(stats.Net()),
		safeordead.FormatCoins(stats.BestPayout))
}

func printHistoryJSON(rounds []storage.RoundRecord, stats storage.Stats) {
	out := historyJSON{
		Stats: statsJSON{
			Rounds:     stats.Rounds,
			Wagered:    stats.Wagered,
			PaidOut:    stats.PaidOut,
			Net:        stats.Net(),
			Deaths:     stats.Deaths,
			CashOuts:   stats.CashOuts,
			Jackpots:   stats.Jackpots,
			BestPayout: stats.BestPayout,
		},
		Rounds: make([]roundJSON, 0, len(rounds)),
	}
	for _, r := range rounds {
		out.Rounds = append(out.Rounds, roundJSON{
			RoundID:       r.RoundID,
			Outcome:       string(r.Outcome),
			Bet:           r.Bet,
			LevelsCleared: r.LevelsCleared,
			Payout:        r.Payout,
			Net:           r.Net(),
			BalanceAfter:  r.BalanceAfter,
			Commitment:    r.Commitment,
			Salt:          r.Salt,
			Layouts:       r.Layouts,
			CreatedAt:     r.CreatedAt,
		})
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
	if err != nil {
		fail("encoding history: %v", err)
	}
	fmt.Println(string(data))
}
