package routes

import (
	"net/http"

	"beach-review/controllers"
	"beach-review/middleware"
	"beach-review/store"
	"beach-review/utils"

	"github.com/gorilla/mux"
)

// Deps are the collaborators the handlers are built from. Uploader and
// Limiter may be nil.
type Deps struct {
	Store    *store.Store
	Sessions *utils.SessionManager
	Signer   *utils.URLSigner
	Uploader utils.ImageUploader
	Limiter  *middleware.RateLimiter
	Metrics  *middleware.Metrics
	Strict   bool
}

func SetupRoutes(router *mux.Router, d Deps) {
	indexController := controllers.IndexController{}
	placeController := controllers.PlaceController{}
	reviewController := controllers.ReviewController{}
	likeController := controllers.LikeController{}
	controller := controllers.Controller{}

	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware)
		router.Handle("/metrics", d.Metrics.Handler()).Methods("GET")
	}
	router.Use(middleware.LoggerMiddleware, middleware.SecureHeadersMiddleware)
	router.HandleFunc("/healthz", controllers.Health(d.Store)).Methods("GET")

	app := router.NewRoute().Subrouter()
	app.Use(middleware.SessionMiddleware(d.Sessions))
	app.HandleFunc("/", indexController.Index(d.Signer)).Methods("GET")
	app.HandleFunc("/index", indexController.Index(d.Signer)).Methods("GET")

	signed := app.NewRoute().Subrouter()
	signed.Use(middleware.VerifySignature(d.Signer))
	signed.HandleFunc("/load_counties", placeController.LoadCounties(d.Store)).Methods("GET")
	signed.HandleFunc("/load_beaches", placeController.LoadBeaches(d.Store)).Methods("GET")
	signed.HandleFunc("/search", placeController.Search(d.Store)).Methods("GET")
	signed.HandleFunc("/load_reviews", reviewController.LoadReviews(d.Store)).Methods("GET")
	signed.HandleFunc("/get_likes", likeController.GetLikes(d.Store)).Methods("GET")
	signed.HandleFunc("/get_user", controller.GetUser()).Methods("GET")

	limited := signed.NewRoute().Subrouter()
	limited.Use(d.Limiter.Middleware)
	limited.HandleFunc("/auth/register", controller.Signup(d.Store)).Methods("POST")
	limited.HandleFunc("/auth/login", controller.Login(d.Store, d.Sessions)).Methods("POST")
	limited.HandleFunc("/auth/logout", controller.Logout(d.Sessions)).Methods("POST")
	limited.HandleFunc("/delete_review", reviewController.DeleteReview(d.Store, d.Strict)).Methods("GET")

	user := limited.NewRoute().Subrouter()
	user.Use(middleware.RequireUser)
	user.HandleFunc("/add_review", reviewController.AddReview(d.Store, d.Uploader, d.Strict)).Methods("POST")
	user.HandleFunc("/edit_contact", reviewController.EditContact(d.Store, d.Strict)).Methods("POST")
	user.HandleFunc("/set_likes", likeController.SetLikes(d.Store, d.Metrics)).Methods("POST")
}

// NewRouter builds a router with every route registered.
func NewRouter(d Deps) http.Handler {
	router := mux.NewRouter()
	SetupRoutes(router, d)
	return router
}
