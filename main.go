package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/gemini"
	"github.com/akashsingh062/Smart-Ai-Todo/handlers"
	"github.com/akashsingh062/Smart-Ai-Todo/logging"
	"github.com/akashsingh062/Smart-Ai-Todo/middleware"
	"github.com/akashsingh062/Smart-Ai-Todo/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Todos Service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "smart_todo"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB.")

	database := client.Database(mongoDBName)
	userService := services.NewUserService(database.Collection("users"))
	todoService := services.NewTodoService(database.Collection("todos"))

	if err := userService.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create user indexes: %v", err)
	}
	if err := todoService.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create todo indexes: %v", err)
	}

	// Revoked tokens go to Redis when configured, otherwise to an
	// in-process map.
	var blacklist services.TokenBlacklist
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			logging.Logger.Fatalf("Event ID: REDIS_CONFIG_ERROR, Description: Invalid REDIS_URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logging.Logger.Fatalf("Event ID: REDIS_CONNECTION_FAILED, Description: Redis connection ping error: %v", err)
		}
		blacklist = services.NewRedisBlacklist(redisClient)
		logging.Logger.Info("Event ID: REDIS_CONNECTED, Description: Token blacklist backed by Redis.")
	} else {
		blacklist = services.NewMemoryBlacklist()
		logging.Logger.Info("Event ID: BLACKLIST_IN_MEMORY, Description: Token blacklist kept in memory.")
	}

	geminiBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	geminiClient := gemini.NewClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	aiService := services.NewAIService(geminiClient, todoService, geminiBreaker)

	authHandler := handlers.NewAuthHandler(userService, blacklist)
	todoHandler := handlers.NewTodoHandler(todoService)
	aiHandler := handlers.NewAIHandler(aiService)

	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware(blacklist))

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	protected.HandleFunc("/todos/completed/clear", todoHandler.ClearCompleted).Methods(http.MethodDelete)
	protected.HandleFunc("/todos", todoHandler.GetTodos).Methods(http.MethodGet)
	protected.HandleFunc("/todos", todoHandler.CreateTodo).Methods(http.MethodPost)
	protected.HandleFunc("/todos/{id}", todoHandler.UpdateTodo).Methods(http.MethodPut)
	protected.HandleFunc("/todos/{id}", todoHandler.DeleteTodo).Methods(http.MethodDelete)

	protected.HandleFunc("/ai/summarize", aiHandler.Summarize).Methods(http.MethodPost)
	protected.HandleFunc("/ai/prioritize", aiHandler.Prioritize).Methods(http.MethodPost)
	protected.HandleFunc("/ai/subtasks", aiHandler.GenerateSubtasks).Methods(http.MethodPost)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "3001"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
