package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avasek/smesim/internal/report"
	"github.com/avasek/smesim/internal/sde"
	"github.com/avasek/smesim/internal/study"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the JSON header written next to every saved run.
type RunMetadata struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Scheme    string         `json:"scheme"`
	Dim       int            `json:"dim"`
	Steps     int            `json:"steps"`
	Horizon   float64        `json:"horizon"`
	Seed      int64          `json:"seed"`
	ElapsedMs int64          `json:"elapsed_ms"`
	Summary   report.Summary `json:"summary"`
}

// Save writes one study result: metadata.json with the batch summary and
// rates.csv with every per-trajectory estimate. Returns the run ID.
func (s *Store) Save(res *study.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Scheme, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Scheme:    res.Scheme,
		Dim:       res.Config.Dim,
		Steps:     res.Config.Steps,
		Horizon:   res.Config.Horizon,
		Seed:      res.Config.Seed,
		ElapsedMs: res.Elapsed.Milliseconds(),
		Summary:   report.Summarize(res.Scheme, res.Results),
	}
	if math.IsNaN(meta.Summary.Mean) {
		// JSON cannot carry NaN; an all-failed batch keeps counts only.
		meta.Summary = report.Summary{
			Scheme: meta.Summary.Scheme,
			Count:  meta.Summary.Count,
			Failed: meta.Summary.Failed,
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "rates.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"trajectory", "rate", "error"}); err != nil {
		return "", err
	}
	for _, r := range res.Results {
		row := []string{strconv.Itoa(r.Index), "", ""}
		if r.Err != nil {
			row[2] = r.Err.Error()
		} else {
			row[1] = strconv.FormatFloat(r.Rate, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()

	return runID, w.Error()
}

// SaveTrajectory writes one integrated trajectory as CSV, a time column
// followed by the coefficient components.
func (s *Store) SaveTrajectory(runID string, times []float64, rhos []sde.State) error {
	if len(times) != len(rhos) {
		return fmt.Errorf("%w: %d times but %d states", sde.ErrDimensionMismatch, len(times), len(rhos))
	}

	f, err := os.Create(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time"}
	if len(rhos) > 0 {
		for i := range rhos[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, rho := range rhos {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, v := range rho {
			row = append(row, strconv.FormatFloat(v, 'f', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every saved run, newest directories last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}
