package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"furniture-search-api/internal/catalog"
	"furniture-search-api/internal/config"
	"furniture-search-api/internal/models"
	"furniture-search-api/internal/scrapers"
	"furniture-search-api/internal/services"
	"furniture-search-api/pkg/cache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	store := buildCacheStore(cfg, logger)
	scraper := scrapers.NewWayfairScraper(cfg.FetchTimeout, logger)
	searchService := services.NewSearchService(scraper, catalog.New(), store, logger)

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	r.Use(requestLogger(logger))
	r.Use(rateLimitMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "furniture-search-api",
			"version": "1.0.0",
			"cache":   store.Stats()["backend"],
		})
	})

	r.POST("/search", func(c *gin.Context) {
		var query models.SearchQuery
		if err := c.ShouldBindJSON(&query); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Code:    http.StatusBadRequest,
				Message: "request body must be valid JSON",
				Details: err.Error(),
			})
			return
		}

		result, err := searchService.Search(query)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	})

	r.POST("/compare", func(c *gin.Context) {
		var req struct {
			ProductIDs []string `json:"product_ids"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Code:    http.StatusBadRequest,
				Message: "request body must be valid JSON",
				Details: err.Error(),
			})
			return
		}

		summary, err := searchService.CompareItems(req.ProductIDs)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"comparison": summary})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		item, err := searchService.GetProductDetails(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": item})
	})

	r.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": searchService.ListCategories()})
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Stats())
	})

	r.DELETE("/cache/flush", func(c *gin.Context) {
		if err := store.Flush(); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "flush_failed",
				Code:    http.StatusInternalServerError,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "cache flushed successfully",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Furniture Search API",
			"version":     "1.0.0",
			"description": "Structured product search over a retail catalog with live extraction and static fallback",
			"features":    []string{"Live page extraction", "Static catalog fallback", "Provenance reporting", "Filtering", "Sorting", "Comparison", "Result caching"},
			"endpoints": map[string]string{
				"POST /search":        "Search products with filtering and sorting",
				"POST /compare":       "Compare products by id",
				"GET /products/:id":   "Fetch a single product by id",
				"GET /categories":     "List catalog categories",
				"GET /health":         "Health check",
				"GET /cache/stats":    "Cache statistics",
				"DELETE /cache/flush": "Flush the result cache",
				"GET /api/info":       "API information",
			},
		})
	})

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// buildCacheStore prefers Redis when configured, degrading to the
// in-process store when Redis is absent or unreachable.
func buildCacheStore(cfg *config.Config, logger *zap.Logger) cache.Store {
	if cfg.RedisURL != "" {
		store, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL, logger)
		if err == nil {
			return store
		}
		logger.Warn("redis unavailable, using in-memory cache", zap.Error(err))
	}
	return cache.NewMemory(cfg.CacheTTL)
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, models.ErrInvalidQuery):
		status, code = http.StatusBadRequest, "invalid_query"
	case errors.Is(err, models.ErrInsufficientInput):
		status, code = http.StatusBadRequest, "insufficient_input"
	case errors.Is(err, models.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, models.ErrDivisionUndefined):
		status, code = http.StatusUnprocessableEntity, "division_undefined"
	}

	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Code:    status,
		Message: err.Error(),
	})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := fmt.Sprintf("%d", time.Now().UnixNano())
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Int("status", c.Writer.Status()))
	}
}

var (
	rateLimiters = make(map[string]*rate.Limiter)
	rateMutex    = &sync.RWMutex{}
)

func getRateLimiter(ip string, cfg *config.Config) *rate.Limiter {
	rateMutex.RLock()
	limiter, exists := rateLimiters[ip]
	rateMutex.RUnlock()

	if !exists {
		rateMutex.Lock()
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
		rateLimiters[ip] = limiter
		rateMutex.Unlock()
	}

	return limiter
}

func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := getRateLimiter(ip, cfg)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests from your IP",
				"retry_after": "1 second",
				"ip":          ip,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
