package main

import (
	"encoding/json"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultPort        = "8545"
	defaultAPIKey      = "anchor-registry-secret-key"
	defaultLatencyMs   = "50"
	defaultFailPercent = "0"
)

// Entry mirrors what the on-chain contract stores per hash.
type Entry struct {
	Hash         string          `json:"hash"`
	Metadata     json.RawMessage `json:"metadata"`
	RegisteredAt string          `json:"registered_at"`
	Block        int             `json:"block"`
}

type RegisterRequest struct {
	Hash     string          `json:"hash"`
	Metadata json.RawMessage `json:"metadata"`
}

type StatusResponse struct {
	Hash       string `json:"hash"`
	Registered bool   `json:"registered"`
	Created    bool   `json:"created"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	apiKey      = getEnv("API_KEY", defaultAPIKey)
	latencyMs   = getEnvInt("LATENCY_MS", defaultLatencyMs)
	failPercent = getEnvInt("FAIL_PERCENT", defaultFailPercent)

	hashPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

	mu      sync.Mutex
	entries = map[string]Entry{}
	block   = 1
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/registry", handleRegister)
	http.HandleFunc("/registry/", handleStatus)

	log.Printf("Mock honeytoken registry starting on port %s", port)
	log.Printf("Simulated latency: %dms, failure rate: %d%%", latencyMs, failPercent)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "anchor-registry",
		"version": "1.0.0",
	})
}

// admit applies latency, the API key check and the configured failure rate.
func admit(w http.ResponseWriter, r *http.Request) bool {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)
	log.Printf("Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	key := r.Header.Get("X-API-Key")
	if key == "" {
		sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
		return false
	}
	if key != apiKey {
		sendError(w, "Invalid API key", http.StatusUnauthorized)
		return false
	}
	if failPercent > 0 && rand.IntN(100) < failPercent {
		sendError(w, "Node unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleRegister appends a hash once. Re-registering is not an error.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !admit(w, r) {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !hashPattern.MatchString(req.Hash) {
		sendError(w, "hash must be 0x followed by 64 lowercase hex chars", http.StatusBadRequest)
		return
	}

	mu.Lock()
	_, exists := entries[req.Hash]
	if !exists {
		entries[req.Hash] = Entry{
			Hash:         req.Hash,
			Metadata:     req.Metadata,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
			Block:        block,
		}
		block++
	}
	mu.Unlock()

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
		log.Printf("Registered %s", req.Hash)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(StatusResponse{Hash: req.Hash, Registered: true, Created: !exists})
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !admit(w, r) {
		return
	}

	hash := strings.TrimPrefix(r.URL.Path, "/registry/")
	if !hashPattern.MatchString(hash) {
		sendError(w, "hash must be 0x followed by 64 lowercase hex chars", http.StatusBadRequest)
		return
	}

	mu.Lock()
	_, ok := entries[hash]
	mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(StatusResponse{Hash: hash, Registered: ok})
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
