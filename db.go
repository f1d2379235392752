package main

import (
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"schooltrends/cmd"
	"schooltrends/internal/agent"
)

// metricColumns maps metric IDs onto year_stats column names.
var metricColumns = map[MetricID]string{
	MetricSchools:       "schools",
	MetricStudents:      "students",
	MetricStaff:         "staff",
	MetricCatholicStaff: "catholic_staff",
	MetricLayStaff:      "lay_staff",
	MetricCatholicRate:  "catholic_rate",
}

// StatsDB exposes the compiled-in dataset through DuckDB so the CLI, the
// web API and the agent can run real SQL against it.
type StatsDB struct {
	conn *sql.DB
}

// NewStatsDB opens an in-memory DuckDB instance and loads every year record
// into a year_stats table. Absent values become SQL NULLs.
func NewStatsDB() (*StatsDB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		if logger != nil {
			logger.Error("Failed to open DuckDB database", "error", err)
		}
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	d := &StatsDB{conn: db}
	if err := d.seed(); err != nil {
		db.Close()
		if logger != nil {
			logger.Error("Database seeding failed", "error", err)
		}
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return d, nil
}

func (d *StatsDB) seed() error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		CREATE TABLE year_stats (
			year INTEGER PRIMARY KEY,
			schools INTEGER,
			students INTEGER,
			staff INTEGER,
			catholic_staff INTEGER,
			lay_staff INTEGER,
			catholic_rate DOUBLE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create year_stats table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO year_stats VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range AllRecords() {
		_, err := stmt.Exec(
			rec.Year,
			nullCount(rec, MetricSchools),
			nullCount(rec, MetricStudents),
			nullCount(rec, MetricStaff),
			nullCount(rec, MetricCatholicStaff),
			nullCount(rec, MetricLayStaff),
			nullRate(rec, MetricCatholicRate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert year %d: %w", rec.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if logger != nil {
		logger.Info("Database seeded", "years", len(AllRecords()))
	}
	return nil
}

func nullCount(rec YearRecord, id MetricID) interface{} {
	if v, ok := rec.Value(id); ok {
		return int64(v)
	}
	return nil
}

func nullRate(rec YearRecord, id MetricID) interface{} {
	if v, ok := rec.Value(id); ok {
		return v
	}
	return nil
}

func (d *StatsDB) Close() error {
	return d.conn.Close()
}

// ExecuteQuery runs an arbitrary SQL query and returns generic rows keyed
// by column name.
func (d *StatsDB) ExecuteQuery(query string) ([]map[string]interface{}, error) {
	rows, err := d.conn.Query(query)
	if err != nil {
		if logger != nil {
			logger.Error("Query failed", "error", err, "query", query)
		}
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			if logger != nil {
				logger.Error("Failed to scan row", "error", err, "query", query)
			}
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		if logger != nil {
			logger.Error("Row iteration error", "error", err, "query", query, "rows", len(results))
		}
		return nil, err
	}

	return results, nil
}

// MetricSummary aggregates one metric over a year range. Change is the
// percentage difference between the first and last present values.
type MetricSummary struct {
	Metric string  `json:"metric"`
	Name   string  `json:"name"`
	Years  int     `json:"years"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	First  float64 `json:"first"`
	Last   float64 `json:"last"`
	Change float64 `json:"change_pct"`
}

// SummarizeRange computes per-metric aggregates over the inclusive year
// range. Zero years mean the dataset bounds. Metrics with no present
// values in the range are skipped.
func (d *StatsDB) SummarizeRange(start, end int) ([]MetricSummary, error) {
	if start == 0 {
		start = MinYear
	}
	if end == 0 {
		end = MaxYear
	}

	var summaries []MetricSummary

	for _, m := range Metrics {
		col := metricColumns[m.ID]
		query := fmt.Sprintf(`
			SELECT
				count(%[1]s),
				min(%[1]s),
				max(%[1]s),
				avg(%[1]s),
				first(%[1]s ORDER BY year),
				last(%[1]s ORDER BY year)
			FROM year_stats
			WHERE year BETWEEN $1 AND $2 AND %[1]s IS NOT NULL
		`, col)

		var count int
		var min, max, mean, first, last sql.NullFloat64
		err := d.conn.QueryRow(query, start, end).Scan(&count, &min, &max, &mean, &first, &last)
		if err != nil {
			if logger != nil {
				logger.Error("Summary query failed", "error", err, "metric", string(m.ID))
			}
			return nil, fmt.Errorf("summary for %s failed: %w", m.ID, err)
		}
		if count == 0 {
			continue
		}

		s := MetricSummary{
			Metric: string(m.ID),
			Name:   m.Name,
			Years:  count,
			Min:    min.Float64,
			Max:    max.Float64,
			Mean:   mean.Float64,
			First:  first.Float64,
			Last:   last.Float64,
		}
		if s.First != 0 {
			s.Change = (s.Last - s.First) / s.First * 100
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

// storeAdapter exposes StatsDB through the cmd package's interface.
type storeAdapter struct {
	db *StatsDB
}

func (a *storeAdapter) ExecuteQuery(query string) ([]map[string]interface{}, error) {
	return a.db.ExecuteQuery(query)
}

func (a *storeAdapter) SummarizeRange(start, end int) ([]cmd.MetricSummary, error) {
	summaries, err := a.db.SummarizeRange(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]cmd.MetricSummary, len(summaries))
	for i, s := range summaries {
		out[i] = cmd.MetricSummary{
			Metric: s.Metric,
			Name:   s.Name,
			Years:  s.Years,
			Min:    s.Min,
			Max:    s.Max,
			Mean:   s.Mean,
			First:  s.First,
			Last:   s.Last,
			Change: s.Change,
		}
	}
	return out, nil
}

func (a *storeAdapter) Close() error {
	return a.db.Close()
}

// openStatsStore is wired into cmd.InitStore by main.
func openStatsStore() (cmd.StatsStore, func(), error) {
	db, err := NewStatsDB()
	if err != nil {
		return nil, nil, err
	}
	adapter := &storeAdapter{db: db}
	cleanup := func() {
		_ = db.Close()
	}
	return adapter, cleanup, nil
}

// statsSource adapts the static dataset and the DuckDB store to the agent's
// tool surface.
type statsSource struct {
	db *StatsDB
}

// newAgentSource builds the data source the ask agent's tools run against.
func newAgentSource() (agent.DataSource, func(), error) {
	db, err := NewStatsDB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return &statsSource{db: db}, cleanup, nil
}

func (s *statsSource) YearRange() (int, int) {
	return MinYear, MaxYear
}

func (s *statsSource) MetricInfo() []agent.MetricInfo {
	out := make([]agent.MetricInfo, 0, len(Metrics))
	for _, m := range Metrics {
		unit := "count"
		if m.Percent {
			unit = "percent"
		}
		out = append(out, agent.MetricInfo{
			ID:     string(m.ID),
			Name:   m.Name,
			Column: metricColumns[m.ID],
			Unit:   unit,
		})
	}
	return out
}

func (s *statsSource) Stats(start, end int) []agent.YearStat {
	records := FilterRecords(start, end)
	out := make([]agent.YearStat, 0, len(records))
	for _, rec := range records {
		values := make(map[string]float64, len(rec.Values))
		for id, v := range rec.Values {
			values[string(id)] = v
		}
		out = append(out, agent.YearStat{Year: rec.Year, Values: values})
	}
	return out
}

func (s *statsSource) Query(query string) ([]map[string]interface{}, error) {
	return s.db.ExecuteQuery(query)
}
