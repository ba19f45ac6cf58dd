package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
	"github.com/carson-networks/ledger-server/internal/storage/postgres"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	var store storage.Storage
	switch envConfig.StorageBackend {
	case "memory":
		store = memory.New()
	default:
		store = postgres.Open(envConfig)
	}
	logrus.WithField("backend", envConfig.StorageBackend).Info("storage ready")

	delegator := operator.NewOperatorDelegator(store, envConfig.Workers)
	delegator.Start()

	svc := service.NewService(store)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:    logger,
			Port:      envConfig.Port,
			Service:   svc,
			Operator:  delegator,
			Owners:    service.StaticOwnerDirectory{},
			MaxAmount: envConfig.MaxTransactionAmount,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
