// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// ignited serves read-only market data for a local Ignite deployment
// alongside health and Prometheus metrics endpoints.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mertksk/casper-ignite/pkg/amm"
	"github.com/mertksk/casper-ignite/pkg/launchpad"
	"github.com/mertksk/casper-ignite/pkg/ledger"
	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/metric"
	"github.com/mertksk/casper-ignite/pkg/orderbook"
	"github.com/mertksk/casper-ignite/pkg/store"
	"github.com/mertksk/casper-ignite/pkg/types"
	"github.com/mertksk/casper-ignite/pkg/vault"
)

func main() {
	var (
		port     = flag.Int("port", 8080, "HTTP listen port")
		dbKind   = flag.String("db", "memory", "storage backend: memory or badger")
		dbPath   = flag.String("db-path", "ignite-db", "badger database directory")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
		adminHex = flag.String("admin", "", "admin account id (hex), defaults to a fresh key")
	)
	flag.Parse()

	logger := log.NewWithLevel(*logLevel)
	defer logger.Sync()

	st, err := openStore(*dbKind, *dbPath)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	admin, err := resolveAdmin(*adminHex)
	if err != nil {
		logger.Fatal("invalid admin account", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	metrics, err := metric.New(registry)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	bank := ledger.New(logger.With(zap.String("component", "ledger")))
	// Seed the admin's main purse so local trading has value to move.
	if err := bank.Mint(bank.AccountPurse(admin), types.CSPRAmount(1_000_000)); err != nil {
		logger.Fatal("failed to fund admin purse", zap.Error(err))
	}

	market := amm.New(store.Prefixed(st, "amm"), bank, admin,
		logger.With(zap.String("component", "amm")), metrics)
	book := orderbook.New(store.Prefixed(st, "orderbook"), bank,
		logger.With(zap.String("component", "orderbook")), metrics)
	escrow := vault.New(store.Prefixed(st, "vault"), bank, admin,
		logger.With(zap.String("component", "vault")), metrics)
	pad := launchpad.New(store.Prefixed(st, "launchpad"), bank, admin, types.WallClock,
		logger.With(zap.String("component", "launchpad")), metrics)

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)
	router.HandleFunc("/v1/price", priceHandler(market)).Methods(http.MethodGet)
	router.HandleFunc("/v1/supply", supplyHandler(market)).Methods(http.MethodGet)
	router.HandleFunc("/v1/book", bookHandler(book)).Methods(http.MethodGet)
	router.HandleFunc("/v1/book/orders/{id:[0-9]+}", orderHandler(book)).Methods(http.MethodGet)
	router.HandleFunc("/v1/vault/{order}", lockedHandler(escrow)).Methods(http.MethodGet)
	router.HandleFunc("/v1/launchpad/projects/{id:[0-9]+}", projectHandler(pad)).Methods(http.MethodGet)
	router.HandleFunc("/v1/launchpad/fee", feeHandler(pad)).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("ignited listening",
			zap.Int("port", *port),
			zap.String("db", *dbKind),
			zap.String("admin", admin.String()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func openStore(kind, path string) (store.Store, error) {
	switch kind {
	case "memory":
		return store.NewMemory(), nil
	case "badger":
		return store.NewBadger(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// resolveAdmin parses the -admin flag, or derives a throwaway identity
// for local runs where only the read endpoints matter.
func resolveAdmin(hex string) (types.AccountID, error) {
	if hex != "" {
		return types.AccountIDFromHex(hex)
	}
	seed := []byte(fmt.Sprintf("ignited-local-admin-%d", time.Now().UnixNano()))
	return types.AccountIDFromPublicKey(seed), nil
}

func priceHandler(market *amm.AMM) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		price, err := market.CurrentPrice()
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]string{
			"price_motes": price.String(),
			"price_cspr":  price.CSPR().String(),
		})
	}
}

func supplyHandler(market *amm.AMM) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		supply, err := market.TotalSupply()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{
			"supply_motes": supply.String(),
			"supply_cspr":  supply.CSPR().String(),
			"reserve":      market.ReserveBalance().String(),
		})
	}
}

func bookHandler(book *orderbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		bid, err := book.BestBid()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ask, err := book.BestAsk()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{
			"best_bid": bid.String(),
			"best_ask": ask.String(),
		})
	}
}

func orderHandler(book *orderbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		order, err := book.GetOrder(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, order)
	}
}

func lockedHandler(escrow *vault.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locked, err := escrow.LockedAmount(mux.Vars(r)["order"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"locked": locked.String()})
	}
}

func projectHandler(pad *launchpad.Launchpad) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		project, err := pad.GetProject(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, project)
	}
}

func feeHandler(pad *launchpad.Launchpad) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		fee, err := pad.PlatformFee()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{
			"fee_motes":  fee.String(),
			"fee_cspr":   fee.CSPR().String(),
			"total_fees": mustAmount(pad.TotalFees).String(),
		})
	}
}

// mustAmount flattens a query that can only fail on storage errors,
// reporting zero in that case.
func mustAmount(f func() (types.Amount, error)) types.Amount {
	v, err := f()
	if err != nil {
		return types.ZeroAmount()
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
