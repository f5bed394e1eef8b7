package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/database/mongoclient"
	"github.com/openxmarket/goapi/base/database/redisclient"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/base/metrics"
	bValidator "github.com/openxmarket/goapi/base/validator"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/marketplace"
	mmiddleware "github.com/openxmarket/goapi/middleware"
	"github.com/openxmarket/goapi/service/chain"
	"github.com/openxmarket/goapi/service/chain/contract"
	"github.com/openxmarket/goapi/service/query"
	"github.com/openxmarket/goapi/service/redis"

	"github.com/openxmarket/goapi/service/cache/provider"
	"github.com/openxmarket/goapi/service/cache/provider/primitive"
	redisProvider "github.com/openxmarket/goapi/service/cache/provider/redis"

	auth_delivery "github.com/openxmarket/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/openxmarket/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/openxmarket/goapi/stores/auth/usecase"
	event_repository "github.com/openxmarket/goapi/stores/event/repository"
	hc_delivery "github.com/openxmarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/openxmarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/openxmarket/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/openxmarket/goapi/stores/listing/delivery/http"
	listing_repository "github.com/openxmarket/goapi/stores/listing/repository"
	listing_usecase "github.com/openxmarket/goapi/stores/listing/usecase"
	marketplace_repository "github.com/openxmarket/goapi/stores/marketplace/repository"
	payment_delivery "github.com/openxmarket/goapi/stores/payment/delivery/http"
	payment_repository "github.com/openxmarket/goapi/stores/payment/repository"
	payment_usecase "github.com/openxmarket/goapi/stores/payment/usecase"
	token_delivery "github.com/openxmarket/goapi/stores/token/delivery/http"
	token_repository "github.com/openxmarket/goapi/stores/token/repository"
	token_usecase "github.com/openxmarket/goapi/stores/token/usecase"
)

func init() {
	configPath := pflag.String("config", "configs/config.yaml", "path to the yaml config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			OpenX Marketplace API
//	@version		1.0
//	@description	Fixed-price marketplace listing service.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init redis cache, optional; without it the listing cache falls back to
	// the in-process provider
	var redisCache redis.Service
	var cacheProvider provider.Provider
	if viper.GetBool("redis_cache.enabled") {
		context.Info("init redis cache")
		redisCacheName := viper.GetString("redis_cache.name")
		redisCacheURI := viper.GetString("redis_cache.uri")
		redisCachePwd := viper.GetString("redis_cache.password")
		redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
		redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
			PoolMultiplier: redisCachePoolMultiplier,
		})
		redisCache = redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)
		cacheProvider = redisProvider.NewRedis(redisCache)
	} else {
		cacheProvider = primitive.NewPrimitive("listing", viper.GetInt("primitive_cache.sizeMb"))
	}

	// init chain service, read-only cross-check of the holdings ledger
	var erc721Service contract.Erc721Contract
	if networks := viper.Sub("networks"); networks != nil {
		keys := networks.AllSettings()
		rpcs := make(map[int32]string)
		for k := range keys {
			chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
			rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
			rpcs[chainId] = rpcUrl
		}
		chainService, err := chain.NewClient(context, &chain.ClientCfg{
			RpcUrls: rpcs,
		})
		if err != nil {
			context.WithField("err", err).Warn("chainService started with error")
		}
		erc721Service = contract.NewErc721(chainService)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.New(q)
	eventRepo := event_repository.New(q)
	configRepo := marketplace_repository.New(q)
	holdingRepo := token_repository.NewHolding(q)
	balanceRepo := payment_repository.NewBalance(q)

	hc := hc_usecase.New(hcRepo)
	token := token_usecase.New(&token_usecase.TokenUseCaseCfg{
		HoldingRepo: holdingRepo,
		Erc721:      erc721Service,
	})
	payment := payment_usecase.New(&payment_usecase.PaymentUseCaseCfg{
		BalanceRepo: balanceRepo,
	})
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:        listingRepo,
		EventRepo:          eventRepo,
		ConfigRepo:         configRepo,
		Authority:          token,
		Payment:            payment,
		TxRunner:           q,
		MarketplaceAddress: domain.Address(viper.GetString("marketplace.address")),
		CacheProvider:      cacheProvider,
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetString("auth.signatureMsg"))

	// the owner is fixed at first boot, later boots keep the stored doc
	owner := domain.Address(viper.GetString("marketplace.owner"))
	if err := configRepo.Init(context, &marketplace.Config{
		Owner:         owner,
		FeePercentage: viper.GetInt32("marketplace.feePercentage"),
	}); err != nil {
		log.Log().WithField("err", err).Panic("fail to init marketplace config")
	}

	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	listing_delivery.New(e, listing, eventRepo, authMiddleware)
	payment_delivery.New(e, payment, authMiddleware)
	token_delivery.New(e, token, authMiddleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
