package api

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/dressfy/checkout-server/config"
	"github.com/dressfy/checkout-server/internal/api/handler"
	"github.com/dressfy/checkout-server/internal/api/middleware"
	"github.com/dressfy/checkout-server/web"
)

type Router struct {
	checkoutHandler *handler.CheckoutHandler
	upsellHandler   *handler.UpsellHandler
	pageHandler     *handler.PageHandler
	cfg             *config.Config
	log             hclog.Logger
}

func NewRouter(
	checkoutHandler *handler.CheckoutHandler,
	upsellHandler *handler.UpsellHandler,
	pageHandler *handler.PageHandler,
	cfg *config.Config,
	log hclog.Logger,
) *Router {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Router{
		checkoutHandler: checkoutHandler,
		upsellHandler:   upsellHandler,
		pageHandler:     pageHandler,
		cfg:             cfg,
		log:             log,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog(r.log.Named("http")))
	engine.Use(middleware.CORS(r.cfg.CORS))

	// 结账页（模板 + 静态资源打进二进制）
	engine.SetHTMLTemplate(web.Templates())
	staticFS, _ := fs.Sub(web.FS, "static")
	engine.StaticFS("/static", http.FS(staticFS))
	engine.GET("/", r.pageHandler.Index)

	api := engine.Group("/api")
	{
		api.POST("/checkout", r.checkoutHandler.Checkout)
		api.POST("/upsell", r.upsellHandler.Upsell)
	}

	return engine
}
