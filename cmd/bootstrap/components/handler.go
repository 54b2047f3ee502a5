package components

import (
	"flea-market/internal/handler"
	"flea-market/internal/handler/api"
	"flea-market/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewProductHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewPurchaseHandler,
		api.NewFileHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
