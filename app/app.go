// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ChainSafe/omniswap-relayer/api"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/config"
	"github.com/ChainSafe/omniswap-relayer/jobs"
	"github.com/ChainSafe/omniswap-relayer/lvldb"
	"github.com/ChainSafe/omniswap-relayer/metrics"
	"github.com/ChainSafe/omniswap-relayer/relayer"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func Run() error {
	configuration, err := config.Load()
	panicOnError(err)

	rc := configuration.RelayerConfig
	err = ConfigureLogger(rc.LogLevel, os.Stdout, rc.LogFile)
	panicOnError(err)

	log.Info().Msg("Successfully loaded configuration")

	// another instance may still hold the database lock while it exits
	var db *lvldb.LVLDB
	for {
		db, err = lvldb.NewLvlDB(rc.DBPath)
		if err != nil {
			log.Error().Err(err).Msg("Unable to connect to database file, retry in 10 seconds")
			time.Sleep(10 * time.Second)
		} else {
			log.Info().Msg("Successfully connected to database file")
			break
		}
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	meterProvider, err := metrics.InitMetricProvider(ctx, rc.OpenTelemetryCollectorURL)
	panicOnError(err)
	defer func() {
		_ = meterProvider.Shutdown(context.Background())
	}()
	settlementMetrics, err := metrics.NewSettlementMetrics(ctx, meterProvider.Meter("omniswap-relayer"), rc.Env, rc.Id)
	panicOnError(err)

	network := bridge.NewNetwork(rc.FeeConfig.BridgeFee)
	node, err := NewNode(configuration, db, network, settlement.Sinks{settlement.LogSink{}, settlementMetrics})
	panicOnError(err)
	redeemerConfig, err := node.Registry.RedeemerConfig()
	panicOnError(err)
	operator, err := node.Registry.Owner()
	panicOnError(err)

	// wait until completions are done and then stop further completions before exiting
	exitLock := &sync.RWMutex{}
	defer exitLock.Lock()

	agent := relayer.NewAgent(node.Endpoint, node.Engine, node.Transfers, settlementMetrics, redeemerConfig.Proxy, exitLock)
	go jobs.StartSweeperJob(ctx, agent, rc.SweepInterval)

	errChn := make(chan error, 1)
	server := api.NewServer(node.Engine, operator, rc.AllowedOrigins, dbCheck(db))
	go func() {
		errChn <- server.Start(ctx, rc.APIPort)
	}()

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	relayerName := viper.GetString("name")
	log.Info().Msgf("Started relayer: %s on chain %d", relayerName, rc.LocalChain)

	select {
	case err := <-errChn:
		log.Error().Err(err).Msg("failed to listen and serve")
		return err
	case sig := <-sysErr:
		log.Info().Msgf("terminating got ` [%v] signal", sig)
		return nil
	}
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
