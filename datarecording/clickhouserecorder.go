package datarecording

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/tebeka/atexit"
)

// ClickHouseConfig describes how to reach a ClickHouse server.
type ClickHouseConfig struct {
	// Addr is the native-protocol address, host:port.
	Addr string

	Database string
	Username string
	Password string

	// BatchSize is the number of buffered entries that triggers a flush.
	// Zero picks the default.
	BatchSize int
}

// NewClickHouse creates a DataRecorder that streams entries into a
// ClickHouse server in batches. Use it instead of New when the output of
// large runs should land in a shared database rather than a local file.
func NewClickHouse(cfg ClickHouseConfig) DataRecorder {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100000
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 30 * time.Second,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect to ClickHouse: %w", err))
	}

	if err := conn.Ping(context.Background()); err != nil {
		panic(fmt.Errorf("failed to ping ClickHouse: %w", err))
	}

	r := &clickhouseWriter{
		conn:      conn,
		batchSize: cfg.BatchSize,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// clickhouseWriter is the writer that writes data into a ClickHouse
// database.
type clickhouseWriter struct {
	conn clickhouse.Conn
	mu   sync.Mutex

	tables     map[string]*table
	batchSize  int
	entryCount int
}

// columnType maps a struct field kind onto the ClickHouse column type the
// writer stores it as. Integer widths are collapsed so that one column
// type serves each kind family.
func columnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "Bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return "Int64"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return "UInt64"
	case reflect.Float32, reflect.Float64:
		return "Float64"
	case reflect.String:
		return "String"
	default:
		panic(fmt.Sprintf("field kind %s cannot be stored", kind))
	}
}

// columnValue widens a field value to match the column type chosen by
// columnType.
func columnValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	default:
		panic(fmt.Sprintf("field kind %s cannot be stored", v.Kind()))
	}
}

func (r *clickhouseWriter) CreateTable(tableName string, sampleEntry any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	structType := reflect.TypeOf(sampleEntry)

	columns := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		columns = append(columns,
			field.Name+" "+columnType(field.Type.Kind()))
	}

	createSQL := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n\t%s\n) "+
			"ENGINE = MergeTree()\nORDER BY tuple()",
		tableName, strings.Join(columns, ",\n\t"))

	err := r.conn.Exec(context.Background(), createSQL)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	r.tables[tableName] = &table{
		structType: structType,
		entries:    []any{},
	}
}

func (r *clickhouseWriter) InsertData(tableName string, entry any) {
	r.mu.Lock()

	table, exists := r.tables[tableName]
	if !exists {
		r.mu.Unlock()
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	table.entries = append(table.entries, entry)
	r.entryCount++

	if r.entryCount >= r.batchSize {
		r.mu.Unlock()
		r.Flush()
		return
	}

	r.mu.Unlock()
}

func (r *clickhouseWriter) ListTables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := make([]string, 0, len(r.tables))
	for name := range r.tables {
		tables = append(tables, name)
	}

	sort.Strings(tables)

	return tables
}

func (r *clickhouseWriter) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entryCount == 0 {
		return
	}

	ctx := context.Background()

	for tableName, table := range r.tables {
		if len(table.entries) == 0 {
			continue
		}

		r.flushTable(ctx, tableName, table)
	}

	r.entryCount = 0
}

func (r *clickhouseWriter) flushTable(
	ctx context.Context,
	tableName string,
	table *table,
) {
	batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w",
			tableName, err))
	}

	for _, entry := range table.entries {
		values := reflect.ValueOf(entry)

		row := make([]any, 0, values.NumField())
		for i := 0; i < values.NumField(); i++ {
			row = append(row, columnValue(values.Field(i)))
		}

		err = batch.Append(row...)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	err = batch.Send()
	if err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	table.entries = nil
}

// Close flushes remaining data and closes the connection.
func (r *clickhouseWriter) Close() error {
	r.Flush()

	err := r.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}

	return nil
}
