package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"compete-radar/api"
	"compete-radar/cache"
	"compete-radar/competitive"
	"compete-radar/config"
	"compete-radar/database"
	"compete-radar/database/groups"
	"compete-radar/database/products"
	"compete-radar/database/reports"
	"compete-radar/llm"
	"compete-radar/report"
)

// App represents the main application
type App struct {
	config      *config.Config
	db          *database.Database
	redis       *cache.RedisClient
	groupsRepo  *groups.Repository
	productRepo *products.Repository
	reportsRepo *reports.Repository
	analyzer    *competitive.Analyzer
	synthesizer *report.Synthesizer
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
		db:     nil, // Will be initialized in Start()
		redis:  nil, // Will be initialized in Start()
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	fmt.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	if err := a.db.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 2. Redis Connection
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Caching disabled.")
	} else {
		a.redis = redisClient
	}

	// 3. Repositories and analysis engine
	a.groupsRepo = groups.NewRepository(a.db.DB())
	a.productRepo = products.NewRepository(a.db.DB())
	a.reportsRepo = reports.NewRepository(a.db.DB())
	a.analyzer = competitive.NewAnalyzer(a.groupsRepo, a.productRepo)

	// 4. Report synthesizer, with LLM augmentation when configured
	var generator report.TextGenerator
	if a.config.LLM.Enabled {
		generator = llm.NewClient(a.config.LLM.Endpoint, a.config.LLM.APIKey, a.config.LLM.Model)
		log.Printf("✅ LLM report augmentation ENABLED (Model: %s)", a.config.LLM.Model)
	} else {
		log.Println("ℹ️  LLM report augmentation DISABLED")
	}
	llmTimeout := time.Duration(a.config.LLM.TimeoutSeconds) * time.Second
	a.synthesizer = report.NewSynthesizer(generator, llmTimeout)

	analysisCache := cache.NewAnalysisCache(a.redis,
		time.Duration(a.config.Analysis.CacheTTLMinutes)*time.Minute)

	// 5. Start API Server
	apiServer := api.NewServer(a.groupsRepo, a.productRepo, a.reportsRepo, a.analyzer,
		a.synthesizer, analysisCache, a.config.Analysis.TrackedProducts)
	go func() {
		if err := apiServer.Start(a.config.APIPort); err != nil {
			log.Printf("⚠️  API Server failed: %v", err)
		}
	}()

	// 6. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("🔄 Shutting down gracefully...")
	a.Close()
	return nil
}

// Close releases database and cache connections
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis connection: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Failed to close database connection: %v", err)
		}
	}
	log.Println("✅ Shutdown complete")
}
