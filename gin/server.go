// Package gin serves compare results over HTTP as JSON.
package gin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pricecheck"
	"github.com/gin-gonic/gin"
)

// DefaultShutdownTimeout bounds how long Close waits for in-flight requests.
const DefaultShutdownTimeout = 5 * time.Second

// Server exposes the compare endpoints.
type Server struct {
	// Comparer answers /api/compare. It usually wraps live retrieval with a
	// catalog fallback.
	Comparer pricecheck.Comparer

	// Matcher answers /api/match from the catalog only. Nil disables the route.
	Matcher pricecheck.Comparer

	// Logger receives one line per request. Nil discards.
	Logger *slog.Logger

	server *http.Server
	ln     net.Listener
}

// NewServer returns a Server answering compare queries with comparer.
func NewServer(comparer pricecheck.Comparer, logger *slog.Logger) *Server {
	return &Server{Comparer: comparer, Logger: logger}
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Handler builds the routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(s.logRequests())
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	api := r.Group("/api")
	{
		if s.Comparer != nil {
			api.GET("/compare", s.handleCompare(s.Comparer))
		}
		if s.Matcher != nil {
			api.GET("/match", s.handleCompare(s.Matcher))
		}
	}

	return r
}

// Open starts serving on addr in the background.
func (s *Server) Open(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger().Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Addr returns the address the server listens on, or "" before Open.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Close stops accepting requests and waits for in-flight ones up to
// DefaultShutdownTimeout.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCompare(comparer pricecheck.Comparer) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		result, err := comparer.Compare(c.Request.Context(), query)
		if err != nil {
			s.writeError(c, query, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps application error codes to status codes. Internal details
// never reach the response.
func (s *Server) writeError(c *gin.Context, query string, err error) {
	switch pricecheck.ErrorCode(err) {
	case pricecheck.EINVALID:
		c.JSON(http.StatusBadRequest, gin.H{"error": pricecheck.ErrorMessage(err)})
	case pricecheck.ENOTFOUND:
		c.JSON(http.StatusNotFound, gin.H{"query": query, "message": pricecheck.ErrorMessage(err)})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected server error."})
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
		}
		if q := c.Query("q"); q != "" {
			attrs = append(attrs, "query", q)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "err", c.Errors.Last().Err)
			s.logger().Error("request", attrs...)
			return
		}
		s.logger().Info("request", attrs...)
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
