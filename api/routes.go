package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/movement"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Service   *service.Service
	Operator  *operator.OperatorDelegator
	Owners    service.OwnerDirectory
	MaxAmount decimal.Decimal
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Savings Ledger API", "1.0.0"))
	humaAPI.UseMiddleware(r.logDataMiddleware)

	account.NewOpenAccountHandler(r.Operator, r.Owners).Register(humaAPI)
	account.NewGetAccountHandler(r.Service.Ledger).Register(humaAPI)
	account.NewListMovementsHandler(r.Service.Ledger).Register(humaAPI)
	movement.NewDepositHandler(r.Operator, r.MaxAmount).Register(humaAPI)
	movement.NewWithdrawHandler(r.Operator, r.MaxAmount).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// logDataMiddleware attaches a fresh LogData to every operation so handlers
// can record fields and timings, and emits one completion line per request.
func (r *Rest) logDataMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	endTimer := logData.AddTiming("duration")

	next(huma.WithContext(ctx, logging.ContextWithLogData(ctx.Context(), logData)))

	endTimer()
	logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
}
