package connector

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// DatabaseConnector handles the server connection and query execution.
// It connects without a default database so the seed can create one.
type DatabaseConnector struct {
	Host     string
	Port     int
	User     string
	Password string
	DB       *sql.DB
	Logger   *logrus.Logger
}

// NewDatabaseConnector creates a new database connector
func NewDatabaseConnector(host string, port int, user, password string, logger *logrus.Logger) *DatabaseConnector {
	return &DatabaseConnector{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Logger:   logger,
	}
}

// Validate checks the connection parameters before dialing
func (dc *DatabaseConnector) Validate() error {
	if dc.Host == "" {
		return fmt.Errorf("host must be non-empty")
	}
	if dc.Port <= 0 {
		return fmt.Errorf("port must be > 0")
	}
	return nil
}

// DSN returns the driver data source name for the server
func (dc *DatabaseConnector) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = dc.User
	cfg.Passwd = dc.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(dc.Host, strconv.Itoa(dc.Port))
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Collation = "utf8mb4_0900_ai_ci"
	return cfg.FormatDSN()
}

// Connect establishes a connection to the MySQL server
func (dc *DatabaseConnector) Connect(ctx context.Context) error {
	if err := dc.Validate(); err != nil {
		return err
	}

	db, err := sql.Open("mysql", dc.DSN())
	if err != nil {
		dc.Logger.Errorf("Error connecting to MySQL server: %v", err)
		return err
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		dc.Logger.Errorf("Error pinging MySQL server: %v", err)
		db.Close()
		return err
	}

	dc.DB = db
	dc.Logger.Infof("Connected to MySQL server %s:%d as %s", dc.Host, dc.Port, dc.User)
	return nil
}

// Disconnect closes the database connection
func (dc *DatabaseConnector) Disconnect() {
	if dc.DB != nil {
		if err := dc.DB.Close(); err != nil {
			dc.Logger.Errorf("Error closing database connection: %v", err)
		} else {
			dc.Logger.Info("MySQL connection closed")
		}
		dc.DB = nil
	}
}

func (dc *DatabaseConnector) ensureConnected(ctx context.Context) error {
	if dc.DB == nil {
		return dc.Connect(ctx)
	}
	return nil
}

// ExecuteQuery executes a SQL query and returns the results
func (dc *DatabaseConnector) ExecuteQuery(ctx context.Context, query string, params ...interface{}) ([]map[string]interface{}, error) {
	if err := dc.ensureConnected(ctx); err != nil {
		return nil, err
	}

	rows, err := dc.DB.QueryContext(ctx, query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing query: %v", err)
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		dc.Logger.Errorf("Error getting columns: %v", err)
		return nil, err
	}

	var results []map[string]interface{}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			dc.Logger.Errorf("Error scanning row: %v", err)
			return nil, err
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			// text protocol results come back as []byte
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		dc.Logger.Errorf("Error iterating rows: %v", err)
		return nil, err
	}

	return results, nil
}

// ExecuteStatement executes a SQL statement and returns the number of affected rows
func (dc *DatabaseConnector) ExecuteStatement(ctx context.Context, query string, params ...interface{}) (int64, error) {
	if err := dc.ensureConnected(ctx); err != nil {
		return 0, err
	}

	result, err := dc.DB.ExecContext(ctx, query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing statement: %v", err)
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		dc.Logger.Errorf("Error getting affected rows: %v", err)
		return 0, err
	}

	return affected, nil
}

// BeginTx starts a transaction on the current connection
func (dc *DatabaseConnector) BeginTx(ctx context.Context) (*sql.Tx, error) {
	if err := dc.ensureConnected(ctx); err != nil {
		return nil, err
	}

	tx, err := dc.DB.BeginTx(ctx, nil)
	if err != nil {
		dc.Logger.Errorf("Error starting transaction: %v", err)
		return nil, err
	}
	return tx, nil
}
