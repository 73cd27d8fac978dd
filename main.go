package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/cache"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/payments"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("postgres connected")

	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatal(err)
	}
	log.Println("database migrations completed")

	store := database.NewStore(db)
	productCache := cache.NewProductCache(30 * time.Second)

	stripeClient := payments.NewClient(cfg.StripeSecretKey, cfg.StripeTimeout, payments.DefaultRetryPolicy())

	var sender notify.Sender = notify.LogSender{}
	if cfg.SMTP.Host != "" {
		sender = notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}
	mailer := notify.NewOrderMailer(sender, cfg.AdminEmail)

	shipping := handlers.ShippingFee(cfg.FreeShipping)
	dev := cfg.Development()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(handlers.MethodNotAllowed(map[string][]string{
		"/api/create-payment-intent":   {"POST"},
		"/api/checkout/create-session": {"POST"},
		"/api/stripe/webhook":          {"POST"},
		"/api/order-details":           {"GET"},
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health(store))

		api.GET("/products", handlers.GetProducts(store, productCache))
		api.GET("/products/:slug", handlers.GetProductBySlug(store))

		api.GET("/reviews", handlers.GetReviews(store))
		api.POST("/reviews", handlers.CreateReview(store))

		api.POST("/cart/add", handlers.AddCartItem(store))
		api.PUT("/cart/:id", handlers.UpdateCartItem(store))
		api.DELETE("/cart/:id", handlers.DeleteCartItem(store))
		api.DELETE("/cart", handlers.ClearCart(store))

		api.POST("/create-payment-intent", handlers.CreatePaymentIntent(stripeClient, dev))
		api.POST("/checkout/create-session", handlers.CreateCheckoutSession(stripeClient, cfg.FrontendOrigin, dev))
		api.GET("/order-details", handlers.GetOrderDetails(stripeClient))
		api.GET("/stripe/test", handlers.StripeTest(stripeClient))
		api.POST("/stripe/webhook", handlers.StripeWebhook(cfg.StripeWebhookSecret, store, mailer, shipping))

		api.POST("/admin/login", handlers.AdminLogin(cfg.AdminAccessCode, cfg.JWTSecret, cfg.AccessTokenTTL))

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret))
		{
			admin.PUT("/products/:id/price", handlers.UpdateProductPrice(store, productCache))
		}
	}

	r.Run(":" + cfg.Port)
}
