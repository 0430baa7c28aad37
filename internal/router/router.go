// internal/router/router.go
package router

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/handlers"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, catalog *models.Catalog) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Handlers and routes
	testsHandler := handlers.NewTestsHandler(log, catalog)
	scoreHandler := handlers.NewScoreHandler(log, catalog)
	resultsHandler := handlers.NewResultsHandler(log, catalog)

	// The persisted record is append-only, so the write route gets a
	// rate limit against accidental duplicate submissions.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 30,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/tests", testsHandler.List)
	router.GET("/tests/:code", testsHandler.Get)
	router.POST("/tests/:code/score", scoreHandler.Preview)

	router.POST("/results", limiter, resultsHandler.Save)

	clientRoutes := router.Group("/clients/:id")
	{
		clientRoutes.GET("/results", resultsHandler.History)
		clientRoutes.GET("/results/export", resultsHandler.Export)
		clientRoutes.GET("/results/chart", resultsHandler.Chart)
	}

	return router
}
