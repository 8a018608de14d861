package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/config"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/adminapi"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/storeapi"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/webserver"
)

var (
	cfile   = flag.String("c", "ppstore.yml", "config file path")
	initdb  = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("ppstore", version)
		return
	}

	cfg := config.LoadConfig(*cfile)

	actx := app.NewApplication(cfg)
	actx.Init(cfg)
	defer actx.Release()

	if *initdb {
		actx.InitDb()
		zap.S().Info("database initialized")
		return
	}

	ws := webserver.NewWebServer(cfg, actx.AuthService())
	storeapi.Register(ws.PublicGroup(), ws.CustomerGroup(), actx)
	adminapi.RegisterAuth(ws.PublicGroup(), actx)
	adminapi.Register(ws.AdminGroup(), actx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.S().Errorf("web server stopped: %v", err)
		os.Exit(1)
	case sig := <-sigCh:
		zap.S().Infof("received %s, shutting down", sig)
	}
}
