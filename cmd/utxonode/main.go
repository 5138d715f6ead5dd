// Package main runs the node: it follows an upstream bitcoind over JSON-RPC into the segment
// forest and serves the query API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
	"github.com/goodnatureofminers/utxonode/internal/metrics"
	"github.com/goodnatureofminers/utxonode/internal/model"
	"github.com/goodnatureofminers/utxonode/internal/node/bitcoin"
	"github.com/goodnatureofminers/utxonode/internal/node/service"
	"github.com/goodnatureofminers/utxonode/internal/repository/clickhouse"
	"github.com/goodnatureofminers/utxonode/internal/script"
	"github.com/goodnatureofminers/utxonode/internal/storage"
	"github.com/goodnatureofminers/utxonode/internal/transport"
	"github.com/goodnatureofminers/utxonode/internal/upgrade"
	"github.com/goodnatureofminers/utxonode/internal/validation"
)

type config struct {
	Network         model.Network  `long:"network" env:"UTXONODE_NETWORK" description:"network name" choice:"mainnet" choice:"testnet3" choice:"regtest" required:"true"`
	RPCURL          string         `long:"rpc-url" env:"UTXONODE_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser         string         `long:"rpc-user" env:"UTXONODE_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword     string         `long:"rpc-password" env:"UTXONODE_RPC_PASSWORD" description:"Bitcoin RPC password"`
	StoreEngine     storage.Engine `long:"store-engine" env:"UTXONODE_STORE_ENGINE" description:"key/value engine" choice:"memory" choice:"leveldb" choice:"bolt" choice:"pebble" default:"leveldb"`
	StorePath       string         `long:"store-path" env:"UTXONODE_STORE_PATH" description:"directory (or file for bolt) of the store" default:"data/chain"`
	ClickhouseDSN   string         `long:"clickhouse-dsn" env:"UTXONODE_CLICKHOUSE_DSN" description:"ClickHouse DSN, export is disabled when empty"`
	GRPCAddr        string         `long:"grpc-addr" env:"UTXONODE_GRPC_ADDR" description:"gRPC listen address" default:":8000"`
	HTTPAddr        string         `long:"http-addr" env:"UTXONODE_HTTP_ADDR" description:"REST listen address" default:":8001"`
	MetricsAddr     string         `long:"metrics-addr" env:"UTXONODE_METRICS_ADDR" description:"address for a dedicated metrics server"`
	ZMQAddr         string         `long:"zmq-addr" env:"UTXONODE_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint"`
	ValidateScripts bool           `long:"validate-scripts" env:"UTXONODE_VALIDATE_SCRIPTS" description:"validate input scripts of best-chain blocks"`
	Workers         int            `long:"workers" env:"UTXONODE_WORKERS" description:"header fetch and script validation workers" default:"8"`
	BatchSize       int64          `long:"batch-size" env:"UTXONODE_BATCH_SIZE" description:"headers fetched per iteration" default:"2000"`
	SigCacheBytes   int            `long:"sigcache-bytes" env:"UTXONODE_SIGCACHE_BYTES" description:"signature cache size in bytes" default:"33554432"`
	HeaderCacheSize int            `long:"header-cache-size" env:"UTXONODE_HEADER_CACHE_SIZE" description:"upstream headers kept in memory" default:"10000"`
	OutputCacheSize int            `long:"output-cache-size" env:"UTXONODE_OUTPUT_CACHE_SIZE" description:"transactions kept for previous output lookups" default:"100000"`
	OrphanTTL       time.Duration  `long:"orphan-ttl" env:"UTXONODE_ORPHAN_TTL" description:"how long unconnected headers are kept" default:"10m"`
	MaxReorgDepth   int            `long:"max-reorg-depth" env:"UTXONODE_MAX_REORG_DEPTH" description:"deepest fork the follower resolves" default:"1000"`
	LogJSON         bool           `long:"log-json" env:"UTXONODE_LOG_JSON" description:"production JSON logging"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("utxonode failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	logger = logger.With(zap.String("network", string(cfg.Network)))
	network := string(cfg.Network)

	schedule, err := upgrade.ForNetwork(network)
	if err != nil {
		return err
	}
	params, err := cfg.Network.Params()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.StoreEngine, cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close store", zap.Error(err))
		}
	}()
	observed := storage.NewObserved(store, metrics.NewStore(string(cfg.StoreEngine)))

	chain := blockchain.NewManager(logger, metrics.NewBlockchain(network), blockchain.NewRepository(observed))
	if err := chain.Load(); err != nil {
		return fmt.Errorf("load forest: %w", err)
	}
	logger.Info("forest loaded", zap.Int("segments", chain.SegmentCount()))

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := bitcoin.NewRPCClient(rpcClient, metrics.NewRPCClient(network))

	source, err := bitcoin.NewSource(rpc, cfg.HeaderCacheSize)
	if err != nil {
		return err
	}
	follower, err := service.NewFollower(chain, source, metrics.NewFollower(network), logger, service.Config{
		Network:       cfg.Network,
		WorkerCount:   cfg.Workers,
		BatchSize:     cfg.BatchSize,
		MaxReorgDepth: cfg.MaxReorgDepth,
		OrphanTTL:     cfg.OrphanTTL,
	})
	if err != nil {
		return err
	}

	if cfg.ValidateScripts {
		validator, err := validation.NewValidator(logger, schedule, script.NewSignatureCache(cfg.SigCacheBytes), metrics.NewScriptValidator(network), cfg.Workers)
		if err != nil {
			return err
		}
		defer validator.Close()
		prevOuts, err := bitcoin.NewPrevOutputResolver(rpc, cfg.OutputCacheSize)
		if err != nil {
			return err
		}
		follower.WithValidation(validator, prevOuts).WithSpentOutputs(validation.NewSpentOutputs(chain))
	}

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		exported, err := repo.MaxBlockHeight(ctx, cfg.Network)
		if err != nil {
			return fmt.Errorf("read exported height: %w", err)
		}
		logger.Info("chain index export enabled", zap.Uint64("exported_height", exported))
		follower.WithExport(repo)
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}
	if blockSignal != nil {
		follower.WithBlockSignal(blockSignal)
	}

	health := transport.NewHealth()
	follower.WithHealth(health)
	grpcServer := transport.NewGRPCServer(logger, health)
	handler, err := transport.NewHTTPHandler(transport.NewHandler(chain, schedule, params, logger))
	if err != nil {
		return err
	}
	httpServer := transport.NewHTTPServer(cfg.HTTPAddr, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return follower.Run(gctx)
	})
	g.Go(func() error {
		socket, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		logger.Info("starting gRPC server", zap.String("addr", cfg.GRPCAddr))
		return grpcServer.Serve(socket)
	})
	g.Go(func() error {
		logger.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	if cfg.MetricsAddr != "" {
		startMetricsServer(gctx, cfg.MetricsAddr, logger)
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		health.Shutdown()
		grpcServer.GracefulStop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
		return nil
	})
	return g.Wait()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := transport.NewHTTPServer(addr, mux)

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
