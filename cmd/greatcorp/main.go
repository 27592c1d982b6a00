package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sora-blue/GreatCorpSimulator/pkg/config"
	"github.com/sora-blue/GreatCorpSimulator/pkg/ledger"
	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
	"github.com/sora-blue/GreatCorpSimulator/pkg/store"
	"github.com/sora-blue/GreatCorpSimulator/pkg/tui"
)

const defaultSimulateDays = 365

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var env config.Env
	if err := config.ParseEnv(&env); err != nil {
		return err
	}

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	dirFlag, args, err := takeFlagValue(args, "--dir")
	if err != nil {
		return err
	}
	seedFlag, args, err := takeFlagValue(args, "--seed")
	if err != nil {
		return err
	}
	daysFlag, args, err := takeFlagValue(args, "--days")
	if err != nil {
		return err
	}

	balance, err := env.Balance()
	if err != nil {
		return err
	}

	dataDir := store.ResolveDataDir(dirFlag, env.DataDir)
	s, err := store.NewStore(dataDir)
	if err != nil {
		return err
	}
	lg := ledger.New(s)

	seed := env.Seed
	if seedFlag != "" {
		seed, err = strconv.ParseInt(seedFlag, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid --seed %q: %w", seedFlag, err)
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if len(args) == 0 {
		return runTUI(env, balance, rng, lg, dataDir)
	}

	switch args[0] {
	case "play":
		return runTUI(env, balance, rng, lg, dataDir)
	case "leaderboard":
		return cmdLeaderboard(lg, jsonOutput)
	case "clear":
		return cmdClear(lg, jsonOutput)
	case "simulate":
		days := defaultSimulateDays
		if daysFlag != "" {
			days, err = strconv.Atoi(daysFlag)
			if err != nil || days < 1 {
				return fmt.Errorf("invalid --days %q", daysFlag)
			}
		}
		return cmdSimulate(balance, rng, seed, days, lg, jsonOutput)
	case "balance":
		return cmdBalance(balance)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: greatcorp [play|leaderboard|clear|simulate|balance] [--json] [--dir DIR] [--seed N] [--days N]", args[0])
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

// takeFlagValue extracts "flag value" from args and returns the value and the
// remaining args. A flag without a value is an error.
func takeFlagValue(args []string, flag string) (string, []string, error) {
	var value string
	var result []string
	for i := 0; i < len(args); i++ {
		if args[i] != flag {
			result = append(result, args[i])
			continue
		}
		if i+1 >= len(args) {
			return "", nil, fmt.Errorf("flag %s needs a value", flag)
		}
		value = args[i+1]
		i++
	}
	return value, result, nil
}

func runTUI(env config.Env, balance config.Balance, rng *rand.Rand, lg *ledger.Ledger, dataDir string) error {
	// Keep log output off the alternate screen
	if env.LogFile != "" {
		f, err := tea.LogToFile(env.LogFile, "greatcorp")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	session := sim.NewSession(balance, rng, sim.WithRecorder(lg))
	m := tui.NewModel(session, lg, tui.Config{
		TickEvery:      env.Tick,
		DataDir:        dataDir,
		DangerApproval: balance.DismissThreshold,
		DangerMorale:   balance.BreakdownThreshold,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Pick up runs recorded by other sessions
	cleanup, err := tui.StartWatcher(dataDir, p)
	if err != nil {
		log.Printf("file watcher failed: %v", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// CLI Commands

func cmdLeaderboard(lg *ledger.Ledger, jsonOut bool) error {
	records := lg.Records()

	if jsonOut {
		if records == nil {
			records = []ledger.RunRecord{}
		}
		return outputJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded yet. Run `greatcorp` to play.")
		return nil
	}

	fmt.Printf("%-3s %5s  %-18s %8s %6s %5s  %s\n", "#", "Days", "Outcome", "Approval", "Morale", "Tasks", "Recorded")
	for i, r := range records {
		fmt.Printf("%-3d %5d  %-18s %8d %6d %5d  %s\n",
			i+1, r.DaysSurvived, r.Title, r.Approval, r.Morale, r.TasksCompleted,
			r.RecordedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func cmdClear(lg *ledger.Ledger, jsonOut bool) error {
	n := lg.Len()
	lg.Clear()

	if jsonOut {
		return outputJSON(map[string]int{"cleared": n})
	}
	fmt.Printf("Cleared %d recorded runs.\n", n)
	return nil
}

type simulateOutput struct {
	Seed        int64         `json:"seed"`
	Ticks       int           `json:"ticks"`
	State       sim.GameState `json:"state"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
}

func cmdSimulate(balance config.Balance, rng *rand.Rand, seed int64, days int, lg *ledger.Ledger, jsonOut bool) error {
	session := sim.NewSession(balance, rng, sim.WithRecorder(lg))
	if err := session.Start(); err != nil {
		return err
	}
	ticks := sim.Autoplay(session, days)

	st := session.State()
	result := session.Result()
	if jsonOut {
		return outputJSON(simulateOutput{
			Seed:        seed,
			Ticks:       ticks,
			State:       st,
			Title:       result.Title,
			Description: result.Description,
		})
	}

	fmt.Printf("%s: %s\n", result.Title, result.Subtitle)
	fmt.Println(result.Description)
	fmt.Printf("Days: %d  Tasks: %d  Approval: %d  Morale: %d  (seed %d)\n",
		st.Day, st.TasksCompleted, st.Approval, st.Morale, seed)
	return nil
}

func cmdBalance(balance config.Balance) error {
	data, err := balance.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
