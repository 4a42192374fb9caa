package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	assistantHandler "github.com/issac8080/aurashop/internal/handler/assistant"
	catalogHandler "github.com/issac8080/aurashop/internal/handler/catalog"
	couponHandler "github.com/issac8080/aurashop/internal/handler/coupon"
	orderHandler "github.com/issac8080/aurashop/internal/handler/order"
	recommendHandler "github.com/issac8080/aurashop/internal/handler/recommend"
	trackHandler "github.com/issac8080/aurashop/internal/handler/track"
	walletHandler "github.com/issac8080/aurashop/internal/handler/wallet"
	middlewarePkg "github.com/issac8080/aurashop/internal/middleware"
	assistantService "github.com/issac8080/aurashop/internal/service/assistant"
	catalogService "github.com/issac8080/aurashop/internal/service/catalog"
	chatService "github.com/issac8080/aurashop/internal/service/chat"
	couponService "github.com/issac8080/aurashop/internal/service/coupon"
	orderService "github.com/issac8080/aurashop/internal/service/order"
	recommendService "github.com/issac8080/aurashop/internal/service/recommend"
	trackService "github.com/issac8080/aurashop/internal/service/track"
	walletService "github.com/issac8080/aurashop/internal/service/wallet"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Services bundles everything the router mounts.
type Services struct {
	Catalog     catalogService.Store
	Chat        chatService.Store
	Tracker     *trackService.Service
	Coupons     *couponService.Service
	Wallets     *walletService.Service
	Orders      *orderService.Service
	Recommender *recommendService.Service
	Responder   *assistantService.Responder
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svcs Services, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middlewarePkg.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		assistantHandler.New(svcs.Responder, svcs.Chat, log).RegisterRoutes(api)
		catalogHandler.New(svcs.Catalog).RegisterRoutes(api)
		trackHandler.New(svcs.Tracker, log).RegisterRoutes(api)
		recommendHandler.New(svcs.Recommender).RegisterRoutes(api)
		couponHandler.New(svcs.Coupons).RegisterRoutes(api)
		walletHandler.New(svcs.Wallets).RegisterRoutes(api)
		orderHandler.New(svcs.Orders).RegisterRoutes(api)
	})

	return r
}
