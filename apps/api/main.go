package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doonites/schoolhub/apps/api/echo"
	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/dashboard"
	"github.com/doonites/schoolhub/core/notification"
	"github.com/doonites/schoolhub/core/seed"
	"github.com/doonites/schoolhub/services/email"
	"github.com/doonites/schoolhub/services/logger"
	"github.com/doonites/schoolhub/storage/kv"
)

func main() {
	conf := core.Conf
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)

	// set up store
	ctx := context.Background()
	store, err := kv.Open(ctx, conf.Storage)
	if err != nil {
		logger.Fatal("opening store", err)
	}
	defer store.Close()

	if conf.Seed.OnStart {
		randSeed := conf.Seed.RandSeed
		if randSeed == 0 {
			randSeed = time.Now().UnixNano()
		}
		seeder := seed.New(seed.Options{
			Store:  store,
			Logger: logger,
			Rand:   rand.New(rand.NewSource(randSeed)),
			Domain: conf.EmailDomain,
		})
		if _, err := seeder.SeedIfEmpty(ctx); err != nil {
			logger.Fatal("seeding store", err)
		}
	}

	money, err := core.NewMoneyFormatter(conf.Currency, conf.Locale)
	if err != nil {
		logger.Fatal("configuring currency", err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, std)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:        conf.Server.Address,
			DisableReqLogs: conf.Server.DisableReqLogs,
			Debug:          conf.Debug,
			TestMode:       conf.TestMode,
			AppName:        conf.AppName,
			Logger:         logger,
			Store:          store,
			DashboardSvc:   dashboard.NewService(store, money),
			NotifSvc:       notification.NewService(store, mailSvc, logger),
		},
	)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("stopping server", err)
		}
	}()
	app.Start()
}
