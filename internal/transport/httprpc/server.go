package httprpc

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/chris-alexander-pop/chord-ring/internal/apperrors"
	"github.com/chris-alexander-pop/chord-ring/internal/chord"
)

// Config is the inbound dispatch surface's listen configuration, adapted
// from the teacher library's pkg/server Config.
type Config struct {
	Port         string        `env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
}

// Server wraps echo to expose a chord.Dispatcher over HTTP: the three wire
// operations from spec §4.6, plus the read-only inspection routes of §6.
type Server struct {
	echo       *echo.Echo
	cfg        Config
	log        *slog.Logger
	dispatcher chord.Dispatcher
}

func NewServer(cfg Config, d chord.Dispatcher, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info("inbound request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latency", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{echo: e, cfg: cfg, log: log, dispatcher: d}
	s.routes()
	return s
}

func (s *Server) routes() {
	g := s.echo.Group("/chord")
	g.POST("/find-successor", s.handleFindSuccessor)
	g.GET("/predecessor", s.handleGetPredecessor)
	g.POST("/notify", s.handleNotify)

	// Read-only inspection surface (spec §6), served directly off the
	// Dispatcher when it also happens to be a *chord.Node.
	if n, ok := s.dispatcher.(*chord.Node); ok {
		g.GET("/self", s.handleSelf(n))
		g.GET("/successor", s.handleSuccessor(n))
		g.GET("/fingers", s.handleFingers(n))
	}
}

func (s *Server) Start() error {
	s.log.Info("starting chord inbound dispatch surface", "port", s.cfg.Port)
	return s.echo.Start(":" + s.cfg.Port)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleFindSuccessor(c echo.Context) error {
	var req findSuccessorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(apperrors.Malformed("bad find-successor body", err)))
	}
	id, err := parseID(req.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}
	succ, err := s.dispatcher.FindSuccessor(c.Request().Context(), id)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), errorBody(err))
	}
	return c.JSON(http.StatusOK, findSuccessorResponse{Peer: toDTO(succ)})
}

func (s *Server) handleGetPredecessor(c echo.Context) error {
	pred, err := s.dispatcher.GetPredecessor(c.Request().Context())
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), errorBody(err))
	}
	return c.JSON(http.StatusOK, getPredecessorResponse{Peer: toDTO(pred)})
}

func (s *Server) handleNotify(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(apperrors.Malformed("bad notify body", err)))
	}
	p, err := fromDTO(req.Peer)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}
	if err := s.dispatcher.Notify(c.Request().Context(), p); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), errorBody(err))
	}
	return c.JSON(http.StatusOK, notifyResponse{OK: true})
}

func (s *Server) handleSelf(n *chord.Node) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, toDTO(n.Self()))
	}
}

func (s *Server) handleSuccessor(n *chord.Node) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, toDTO(n.Successor()))
	}
}

func (s *Server) handleFingers(n *chord.Node) echo.HandlerFunc {
	return func(c echo.Context) error {
		fingers := n.Fingers()
		out := make([]peerDTO, len(fingers))
		for i, f := range fingers {
			out[i] = toDTO(f)
		}
		return c.JSON(http.StatusOK, out)
	}
}

func errorBody(err error) map[string]string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return map[string]string{"code": appErr.Code, "message": appErr.Message}
	}
	return map[string]string{"code": apperrors.CodeInternal, "message": err.Error()}
}
