package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/seed"
	"github.com/doonites/schoolhub/services/logger"
	"github.com/doonites/schoolhub/storage/kv"
)

func main() {
	conf := core.Conf
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	store, err := kv.Open(context.Background(), conf.Storage)
	if err != nil {
		logger.Fatal("opening store", err)
	}

	randSeed := conf.Seed.RandSeed
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}

	// start CLI
	cli := commandLine{
		store: store,
		seeder: seed.New(seed.Options{
			Store:  store,
			Logger: logger,
			Rand:   rand.New(rand.NewSource(randSeed)),
			Domain: conf.EmailDomain,
		}),
		in:  os.Stdin,
		out: os.Stdout,
	}
	err = cli.run(os.Args)
	_ = store.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
