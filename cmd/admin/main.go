package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/admincli"
	"github.com/dmitrijs2005/jobboard/internal/server"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return admincli.NewApp(app.Services(), os.Stdin, os.Stdout).Run(ctx, os.Args[1:])
}
