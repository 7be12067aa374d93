// Command server runs the Nènè assistant HTTP API.
//
// Configuration is read from the YAML file named by CONFIG_PATH (default
// ./config.yaml) with environment overrides; run with -env to list the
// variables.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/nene-backend/internal/app"
	"github.com/heartmarshall/nene-backend/internal/config"
)

func main() {
	listEnv := flag.Bool("env", false, "print the configuration environment variables and exit")
	flag.Parse()

	if *listEnv {
		desc, err := config.Describe()
		if err != nil {
			log.Fatalf("server: %v", err)
		}
		fmt.Println(desc)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
