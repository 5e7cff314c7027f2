package neuro_controllers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"neuro_sim"
)

const (
	strikeTableName = "strike_sessions"
	recallTableName = "recall_sessions"
)

type DatabaseController struct {
	db *sql.DB
}

func NewDatabaseController(username, password, dbHost, dbPort, dbName string) (*DatabaseController, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", username, password, dbHost, dbPort, dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Error connecting to the database: %v", err)
		return nil, err
	}

	dbController := DatabaseController{db: db}

	return &dbController, nil
}

func (dc *DatabaseController) CloseDb() error {
	return dc.db.Close()
}

// InsertStrikeSession persists one finished strike session. Persistence
// failures are logged and do not abort the simulation run.
func (dc *DatabaseController) InsertStrikeSession(scenarioName string, settings neuro_sim.ScenarioSettings, data neuro_sim.StrikeData, startTime time.Time, endTime time.Time) {

	stimuliJSON, err := json.Marshal(data.Stimuli)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to marshal stimuli: %v", err))
	}

	selectionJSON, err := json.Marshal(data.Selection)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to marshal selection: %v", err))
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = os.Getenv("HOSTNAME")
	}

	query := fmt.Sprintf("INSERT INTO %s (host, program_version, scenario, tie_policy, threshold, tau, v_rest, step_size, stimuli, selection_kind, selection, direction, has_direction, gate_output, held_steps, start_time, end_time, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", strikeTableName)
	_, err = dc.db.Exec(query,
		hostname,
		runtime.Version(),
		scenarioName,
		settings.TiePolicy,
		settings.Threshold,
		settings.Tau,
		settings.VRest,
		settings.StepSize,
		string(stimuliJSON),
		data.Selection.Kind,
		string(selectionJSON),
		data.Direction,
		data.HasDirection,
		data.GateOutput,
		data.HeldSteps,
		startTime.Format("2006-01-02 15:04:05"),
		endTime.Format("2006-01-02 15:04:05"),
		data.Status)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to insert data into MySQL: %v", err))
	}
}

// InsertRecallSession persists one finished noisy-recall session.
func (dc *DatabaseController) InsertRecallSession(batchName string, settings neuro_sim.RecallSettings, data neuro_sim.RecallData, startTime time.Time, endTime time.Time) {

	noisyJSON, err := json.Marshal(data.Noisy)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to marshal noisy pattern: %v", err))
	}

	recoveredJSON, err := json.Marshal(data.Recovered)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to marshal recovered pattern: %v", err))
	}

	flippedJSON, err := json.Marshal(data.FlippedIndices)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to marshal flipped indices: %v", err))
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = os.Getenv("HOSTNAME")
	}

	query := fmt.Sprintf("INSERT INTO %s (host, seed, program_version, batch, label, normalization_factor, recall_steps, noise_flip_count, flipped_indices, noisy_state, recovered_state, hamming_error, start_time, end_time, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", recallTableName)
	_, err = dc.db.Exec(query,
		hostname,
		data.Seed,
		runtime.Version(),
		batchName,
		data.Label,
		settings.NormalizationFactor,
		settings.RecallSteps,
		settings.NoiseFlipCount,
		string(flippedJSON),
		string(noisyJSON),
		string(recoveredJSON),
		data.HammingError,
		startTime.Format("2006-01-02 15:04:05"),
		endTime.Format("2006-01-02 15:04:05"),
		data.Status)
	if err != nil {
		fmt.Println(fmt.Errorf("failed to insert data into MySQL: %v", err))
	}
}

// QueryRecoveryStats aggregates recall outcomes per pattern label: how many
// sessions recovered exactly, and the average residual Hamming error.
func (dc *DatabaseController) QueryRecoveryStats(batchName string) ([]RecoveryCountData, error) {
	fmt.Println("Querying recovery stats from DB...")
	query := fmt.Sprintf(`
        SELECT
            label,
            COUNT(CASE WHEN status = 'RECOVERED' THEN 1 END) AS recovered_count,
            COUNT(*) AS total_count,
            AVG(hamming_error) AS avg_hamming_error
        FROM
            %s
        WHERE
            batch = ?
        GROUP BY
            label;
    `, recallTableName)

	rows, err := dc.db.Query(query, batchName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RecoveryCountData

	for rows.Next() {
		var data RecoveryCountData
		err := rows.Scan(&data.Label, &data.RecoveredCount, &data.TotalCount, &data.AvgHammingError)
		if err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

// QuerySelectionCounts aggregates strike outcomes per scenario and
// selection kind.
func (dc *DatabaseController) QuerySelectionCounts() ([]SelectionCountData, error) {
	query := fmt.Sprintf(`
        SELECT
            scenario,
            selection_kind,
            COUNT(*) AS total_count
        FROM
            %s
        GROUP BY
            scenario, selection_kind;
    `, strikeTableName)

	rows, err := dc.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SelectionCountData

	for rows.Next() {
		var data SelectionCountData
		err := rows.Scan(&data.Scenario, &data.SelectionKind, &data.TotalCount)
		if err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

// FetchFullTableAsJSON dumps a sessions table for the control server.
func (dc *DatabaseController) FetchFullTableAsJSON(tableName string) (string, error) {
	if tableName != strikeTableName && tableName != recallTableName {
		return "", fmt.Errorf("unknown table: %s", tableName)
	}
	rows, err := dc.db.Query(fmt.Sprintf("SELECT * FROM %s", tableName))
	if err != nil {
		return "", fmt.Errorf("error retrieving data: %v", err)
	}
	defer rows.Close()

	var results []map[string]interface{}

	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("error getting columns: %v", err)
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePointers := make([]interface{}, len(columns))
		for i := range values {
			valuePointers[i] = &values[i]
		}

		if err := rows.Scan(valuePointers...); err != nil {
			return "", fmt.Errorf("error scanning row: %v", err)
		}

		rowMap := make(map[string]interface{})
		for i, col := range columns {
			var v interface{}
			val := values[i]

			// Convert []byte to string for readability
			b, ok := val.([]byte)
			if ok {
				v = string(b)
			} else {
				v = val
			}

			rowMap[col] = v
		}

		results = append(results, rowMap)
	}

	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling results to JSON: %v", err)
	}

	return string(jsonData), nil
}
