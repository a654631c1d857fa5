package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"assettco/db"
	"assettco/energy"
	ahttp "assettco/http"
	"assettco/logging"
	"assettco/ml"
	"assettco/monitoring"
	"assettco/wizard"
)

type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Http struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`
	Log logging.Config `yaml:"log"`
}

func main() {
	config, err := loadConfig("config.yaml")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logging.New(config.Log)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync()

	if err := db.InitDB(config.Database.Path); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database initialized", zap.String("path", config.Database.Path))

	// Model is optional at startup; predictions return 503 until one
	// is trained or dropped onto the model path.
	predictor := ml.NewPredictor(nil, nil)
	if bundle, err := ml.LoadBundle(config.Model.Path); err == nil {
		predictor.Swap(bundle)
		logger.Info("model loaded",
			zap.String("path", config.Model.Path),
			zap.Float64("test_r2", bundle.Stats.Test.R2))
	} else {
		logger.Warn("no model loaded", zap.String("path", config.Model.Path), zap.Error(err))
	}
	if corpus, err := db.QueryAssets(100000); err == nil {
		predictor.SetCorpus(corpus)
	}

	watcher, err := ml.WatchModel(config.Model.Path, predictor, logger)
	if err != nil {
		logger.Warn("model hot reload disabled", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(registry)

	hub := monitoring.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	agent := energy.NewAgent(logger)

	store := wizard.NewStore()
	manager := wizard.NewManager(store, predictor, logger)

	serverConfig := ahttp.DefaultServerConfig()
	if config.Http.Port > 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds > 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}
	if len(config.Http.AllowedOrigins) > 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := ahttp.NewServer(serverConfig, ahttp.Deps{
		Logger:    logger,
		Predictor: predictor,
		Wizard:    manager,
		Energy:    agent,
		Hub:       hub,
		Metrics:   metrics,
		Registry:  registry,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
