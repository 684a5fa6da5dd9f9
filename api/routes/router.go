package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sneakhead/sneakhead-backend/api/controllers"
	"github.com/sneakhead/sneakhead-backend/api/middleware"
	"github.com/sneakhead/sneakhead-backend/internal/accounts"
	"github.com/sneakhead/sneakhead-backend/internal/activity"
	cartsvc "github.com/sneakhead/sneakhead-backend/internal/cart"
	"github.com/sneakhead/sneakhead-backend/internal/catalog"
	checkoutsvc "github.com/sneakhead/sneakhead-backend/internal/checkout"
	giftcardsvc "github.com/sneakhead/sneakhead-backend/internal/giftcards"
	wishlistsvc "github.com/sneakhead/sneakhead-backend/internal/wishlist"
	"github.com/sneakhead/sneakhead-backend/pkg/config"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/metrics"
	"github.com/sneakhead/sneakhead-backend/pkg/session"
)

type Services struct {
	Accounts  accounts.Service
	Activity  activity.Service
	Catalog   catalog.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Wishlist  wishlistsvc.Service
	GiftCards giftcardsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessions *session.Manager,
	httpMetrics *metrics.HTTPMetrics,
	workflowMetrics *metrics.WorkflowMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	workflow := func(operation string) func(http.Handler) http.Handler {
		return middleware.Workflow(workflowMetrics, operation)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(svcs.Catalog, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(workflow("register")).Post("/register", controllers.AuthRegister(svcs.Accounts, logg))
			r.With(workflow("login")).Post("/login", controllers.AuthLogin(svcs.Accounts, svcs.Activity, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Activity, sessions, logg))
		})

		r.Post("/contact", controllers.ContactSubmit(logg))
		r.With(workflow("issue_gift_card")).Post("/giftcards", controllers.GiftCardIssue(svcs.GiftCards, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(svcs.Cart, logg))
				r.Route("/items", func(r chi.Router) {
					r.With(workflow("add_to_cart")).Post("/", controllers.CartAdd(svcs.Cart, logg))
					r.Put("/increase", controllers.CartIncrease(svcs.Cart, logg))
					r.Put("/decrease", controllers.CartDecrease(svcs.Cart, logg))
					r.Delete("/", controllers.CartRemove(svcs.Cart, logg))
				})
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutPreview(svcs.Checkout, logg))
				r.With(workflow("checkout")).Post("/", controllers.CheckoutComplete(svcs.Checkout, logg))
			})
			r.Get("/purchases", controllers.PurchaseHistory(svcs.Checkout, logg))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistView(svcs.Wishlist, logg))
				r.Route("/items", func(r chi.Router) {
					r.Post("/", controllers.WishlistAdd(svcs.Wishlist, logg))
					r.Delete("/", controllers.WishlistRemove(svcs.Wishlist, logg))
				})
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(sessions, logg))
		r.Use(middleware.RequireAdmin(svcs.Accounts, logg))

		r.Get("/dashboard", controllers.AdminDashboard(svcs.Activity, svcs.Catalog, logg))
		r.Post("/products", controllers.AdminProductCreate(svcs.Catalog, logg))
		r.Delete("/products", controllers.AdminProductDelete(svcs.Catalog, logg))
		r.Post("/clear-logs", controllers.AdminClearLogs(svcs.Activity, logg))
	})

	return r
}
