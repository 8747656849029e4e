package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const pingTimeout = 2 * time.Second

type DBPinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Store    string `json:"store"`
	Postgres string `json:"postgres,omitempty"`
	Redis    string `json:"redis,omitempty"`
}

type Handler struct {
	versionInfo string
	storeName   string
	db          DBPinger
	redisClient *redis.Client
}

// NewHandler creates the health and version handler, db and redisClient are
// optional and only checked when set.
func NewHandler(versionInfo, storeName string, db DBPinger, redisClient *redis.Client) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		storeName:   storeName,
		db:          db,
		redisClient: redisClient,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:  "ok",
		Version: handler.versionInfo,
		Store:   handler.storeName,
	}

	if handler.db != nil {
		resp.Postgres = "ok"
		if err := handler.db.Ping(ctx); err != nil {
			log.Errorf("health: ping postgres: %s", err)
			resp.Postgres = "down"
			resp.Status = "degraded"
		}
	}
	if handler.redisClient != nil {
		resp.Redis = "ok"
		if err := handler.redisClient.Ping(ctx).Err(); err != nil {
			log.Errorf("health: ping redis: %s", err)
			resp.Redis = "down"
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
		span.SetStatus(codes.Error, "degraded")
	}
	pkg.WriteJSON(w, resp, status)
}
