// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/ledgerrepo"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/internal/notification"
	"github.com/go-petr/pet-wallet/internal/statementdelivery"
	"github.com/go-petr/pet-wallet/internal/statementservice"
	"github.com/go-petr/pet-wallet/internal/transferdelivery"
	"github.com/go-petr/pet-wallet/internal/transferservice"
	"github.com/go-petr/pet-wallet/internal/walletdelivery"
	"github.com/go-petr/pet-wallet/internal/walletrepo"
	"github.com/go-petr/pet-wallet/internal/walletservice"
	"github.com/go-petr/pet-wallet/pkg/configpkg"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	walletRepo := walletrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	dispatcher := notification.NewLogDispatcher()

	walletService := walletservice.New(walletRepo)
	transferService := transferservice.New(ledgerRepo, walletService, dispatcher)
	statementService := statementservice.New(ledgerRepo)

	walletHandler := walletdelivery.NewHandler(walletService)
	transferHandler := transferdelivery.NewHandler(transferService)
	statementHandler := statementdelivery.NewHandler(statementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/wallets", walletHandler.Ensure)
	authRoutes.GET("/wallets", walletHandler.List)
	authRoutes.GET("/wallets/:id", walletHandler.Get)
	authRoutes.GET("/portfolio", walletHandler.Portfolio)
	authRoutes.GET("/portfolio/distribution", walletHandler.Distribution)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.POST("/deposits", transferHandler.Deposit)
	authRoutes.POST("/withdrawals", transferHandler.Withdraw)
	authRoutes.POST("/withdrawals/crypto", transferHandler.WithdrawCrypto)

	authRoutes.GET("/transactions", statementHandler.List)
	authRoutes.GET("/transactions/export", statementHandler.Export)
	authRoutes.GET("/transactions/:id", statementHandler.Get)

	// Settlement provider and admin oversight surface.
	adminRoutes := engine.Group("/admin").Use(
		middleware.AuthMiddleware(tokenMaker),
		middleware.RequireRole(tokenpkg.RoleAdmin),
	)

	adminRoutes.POST("/withdrawals/:id/confirm", transferHandler.Confirm)
	adminRoutes.POST("/withdrawals/:id/fail", transferHandler.Fail)
	adminRoutes.POST("/wallets/:id/deactivate", walletHandler.Deactivate)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
