package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	// StorageBackend selects the ledger store: "postgres" or "memory".
	StorageBackend string

	Port    string
	Workers int

	// MaxTransactionAmount caps a single deposit or withdrawal.
	MaxTransactionAmount decimal.Decimal
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:      "localhost",
		PostgresPort:         "5433",
		PostgresDB:           "postgres",
		PostgresUsername:     "postgres",
		PostgresPassword:     "testpassword",
		StorageBackend:       "postgres",
		Port:                 "9446",
		Workers:              4,
		MaxTransactionAmount: decimal.NewFromInt(10_000_000),
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envStorageBackend := os.Getenv("STORAGE_BACKEND")
	envPort := os.Getenv("LEDGER_PORT")
	envWorkers := os.Getenv("LEDGER_WORKERS")
	envMaxAmount := os.Getenv("LEDGER_MAX_AMOUNT")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envStorageBackend) != 0 {
		if envStorageBackend != "postgres" && envStorageBackend != "memory" {
			return nil, fmt.Errorf("STORAGE_BACKEND must be postgres or memory, got %q", envStorageBackend)
		}
		env.StorageBackend = envStorageBackend
	}

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envWorkers) != 0 {
		workers, err := strconv.Atoi(envWorkers)
		if err != nil || workers < 1 {
			return nil, fmt.Errorf("LEDGER_WORKERS must be a positive integer, got %q", envWorkers)
		}
		env.Workers = workers
	}

	if len(envMaxAmount) != 0 {
		maxAmount, err := decimal.NewFromString(envMaxAmount)
		if err != nil || !maxAmount.IsPositive() {
			return nil, fmt.Errorf("LEDGER_MAX_AMOUNT must be a positive decimal, got %q", envMaxAmount)
		}
		env.MaxTransactionAmount = maxAmount
	}

	return &env, nil
}
