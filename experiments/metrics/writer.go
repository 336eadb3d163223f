package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig is one experiment arm: the game it is played on and the
// agent's tuning.
type AgentConfig struct {
	ID          int     `yaml:"id"`
	Pairs       int     `yaml:"pairs"`
	Guesses     int     `yaml:"guesses"`
	Prize       float64 `yaml:"prize"`
	Fluid       bool    `yaml:"fluid"`
	Seed        uint64  `yaml:"seed"`
	Exploration float64 `yaml:"exploration"`
	Budget      int     `yaml:"budget"`
}

type GameRecord struct {
	Config int // AgentConfig.ID
	GameMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp>/ for the experiment's files. It
// fails rather than reuse a directory another run already created.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	parent := filepath.Join(root, name)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	baseDir := filepath.Join(parent, timestamp)
	if err := os.Mkdir(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Pairs),
			strconv.Itoa(config.Guesses),
			formatFloat(config.Prize),
			strconv.FormatBool(config.Fluid),
			strconv.FormatUint(config.Seed, 10),
			formatFloat(config.Exploration),
			strconv.Itoa(config.Budget),
		})
	}
	header := []string{"id", "pairs", "guesses", "prize", "fluid", "seed", "exploration", "budget"}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID.String(),
			strconv.Itoa(record.Config),
			strconv.Itoa(record.Pairs),
			strconv.FormatBool(record.Success),
			strconv.Itoa(record.Rounds),
			formatFloat(record.Reward),
			formatFloat(record.RemainingPrize),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "config", "pairs", "success", "rounds", "reward", "remaining_prize", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteRoundRecords(records []RoundMetric) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Beams),
			strconv.FormatBool(record.Blackout),
			formatFloat(record.Reward),
			formatFloat(record.RemainingPrize),
			record.Duration.String(),
			strconv.Itoa(record.SearchSteps),
			strconv.FormatBool(record.Consistent),
		})
	}
	header := []string{"game", "round", "beams", "blackout", "reward", "remaining_prize", "duration", "search_steps", "consistent"}
	return w.write("round_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
