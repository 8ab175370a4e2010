package main

import (
	"flag"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/esdl/esn_core/internal/pkg/codec"
	"github.com/esdl/esn_core/internal/pkg/config"
	"github.com/esdl/esn_core/internal/pkg/datastreams/natshandler"
	"github.com/esdl/esn_core/internal/pkg/model"
	"github.com/esdl/esn_core/internal/pkg/webservice"
)

func main() {
	log.Println("[Main] Starting ESN_Core v0.1.0")

	configPath := flag.String("config", "./config/settings.yaml", "path to the settings file")
	flag.Parse()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	log.Println("[Main] Loading Settings")
	settings, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Building Webservice")
	app := webservice.NewApp(settings.Style())

	if settings.ModelFile != "" {
		log.Println("[Main] Loading Model", settings.ModelFile)
		m := loadModel(settings)
		data, err := codec.Serialize(m)
		if err != nil {
			panic(err)
		}
		app.Registry().Put(m.Uid(), data)

		if settings.NatsConfig != "" {
			log.Println("[Main] Connecting NATS Service")
			handler := linkNatsService(settings)
			go handler.Process()
			handler.Submit(m)
			defer handler.Stop()
		}
	}

	log.Println("[Main] Starting Server on", settings.Listen)
	go func() {
		if err := http.ListenAndServe(settings.Listen, app.Router()); err != nil {
			log.Println("[Main]", err)
		}
	}()

	<-sigs
	log.Println("[Main] Stopping system")
}

func loadModel(settings config.Settings) *model.SystemModel {
	data, err := ioutil.ReadFile(settings.ModelFile)
	if err != nil {
		panic(err)
	}
	m, err := codec.Deserialize(data, settings.Style())
	if err != nil {
		panic(err)
	}
	if err := m.Validate(); err != nil {
		panic(err)
	}
	return m
}

func linkNatsService(settings config.Settings) natshandler.Handler {
	handler, err := natshandler.New(settings.NatsConfig)
	if err != nil {
		panic(err)
	}
	return handler
}
