// Command kvs-server runs the network front-end: bind an address, open an
// engine against a data directory, and serve client connections until
// interrupted.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gokvs/kvs/internal/engine"
	"github.com/gokvs/kvs/internal/kvserver"
	"github.com/gokvs/kvs/internal/threadpool"
	"github.com/gokvs/kvs/pkg/logger"
	"github.com/gokvs/kvs/pkg/options"
)

func main() {
	addr := flag.String("addr", options.DefaultAddr, "HOST:PORT to listen on")
	engineName := flag.String("engine", "", "storage engine to use: kvs or sled")
	dataDir := flag.String("data-dir", options.DefaultDataDir, "directory to store data in")
	poolKind := flag.String("pool", options.DefaultThreadPoolKind, "thread pool kind: naive, shared-queue, work-stealing")
	flag.Parse()

	log := logger.New("kvs-server")

	opts := options.NewDefaultOptions()
	opts.Addr = *addr
	opts.DataDir = *dataDir
	opts.ThreadPoolKind = *poolKind
	if *engineName != "" {
		opts.Engine = *engineName
	}

	eng, err := engine.Open(&opts, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pool, err := threadpool.New(&opts, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	srv, err := kvserver.New(opts.Addr, eng, pool, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Infow("shutting down")
		if err := srv.Close(); err != nil {
			log.Errorw("error closing server", "error", err)
		}
	}()

	if err := srv.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := pool.Close(); err != nil {
		log.Errorw("error closing thread pool", "error", err)
	}
	if err := eng.Close(); err != nil {
		log.Errorw("error closing engine", "error", err)
	}
}
