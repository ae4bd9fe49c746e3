package bootstrap

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/kjbranchesi/alf-coach-backend/internal/api/http"
	"github.com/kjbranchesi/alf-coach-backend/internal/api/http/middleware"
	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
	authhttp "github.com/kjbranchesi/alf-coach-backend/internal/auth/http"
	authmw "github.com/kjbranchesi/alf-coach-backend/internal/auth/middleware"
	bphttp "github.com/kjbranchesi/alf-coach-backend/internal/blueprints/http"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/service"
	"github.com/kjbranchesi/alf-coach-backend/internal/coach"
	coachhttp "github.com/kjbranchesi/alf-coach-backend/internal/coach/http"
	exporthttp "github.com/kjbranchesi/alf-coach-backend/internal/export/http"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
	showcasehttp "github.com/kjbranchesi/alf-coach-backend/internal/showcase/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Blueprints     *service.BlueprintService
	Coach          *coach.Service
	// AuthClient may be nil in development; requests then fall through to
	// the X-User-Id OptionalUser middleware.
	AuthClient *fbauth.Client
	Redis      *redis.Client
	Log        *logging.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	// Showcase is public: it is the signed-out landing experience.
	showcasehttp.Register(api.Group("/showcase"))

	authed := api.Group("")
	if dep.AuthClient != nil {
		authed.Use(authmw.TokenMiddleware(dep.AuthClient))
	} else {
		authed.Use(auth.OptionalUser())
	}

	authhttp.Register(authed)

	bpGroup := authed.Group("/blueprints")
	bphttp.Register(bpGroup, dep.Blueprints)
	exporthttp.RegisterBlueprintSubroutes(bpGroup, dep.Blueprints)
	coachhttp.RegisterBlueprintSubroutes(bpGroup, dep.Coach, dep.Blueprints)

	return r
}
