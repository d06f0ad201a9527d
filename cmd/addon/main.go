package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"debrid-streamer/internal/config"
	"debrid-streamer/internal/debrid"
	"debrid-streamer/internal/httpapi"
	"debrid-streamer/internal/meta"
	"debrid-streamer/internal/middleware"
	"debrid-streamer/internal/resolver"
	"debrid-streamer/internal/torrentx"
	"debrid-streamer/pkg/types"
)

const version = "0.3.1"

func main() {
	_ = godotenv.Load(".env")

	config.Load()
	config.SetupLogging()

	httpClient := &http.Client{Timeout: config.HTTPTimeout()}

	res := &resolver.Resolver{
		Name:   "Debrid Streamer",
		Meta:   &meta.Client{BaseURL: config.MetaURL(), HTTP: httpClient},
		Index:  &torrentx.IndexClient{BaseURL: config.IndexURL(), HTTP: httpClient},
		Debrid: &debrid.Client{BaseURL: config.DebridURL(), HTTP: httpClient},
	}

	h := &httpapi.Handlers{
		Resolver:     res,
		Manifest:     httpapi.NewManifest(version),
		DefaultToken: config.DebridToken(),
		DefaultPolicy: types.PreferencePolicy{
			Quality: config.QualityFilter(),
			Codec:   config.CodecFilter(),
			Audio:   config.AudioFilter(),
			Exclude: config.ExcludeFilter(),
		},
		AllowDownload: config.AllowDownload(),
	}

	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			middleware.EnableCORS(w)
			return
		}
		http.NotFound(w, r)
	})

	addr := config.ListenAddr()
	log.Info().
		Str("addr", addr).
		Str("index", config.IndexURL()).
		Str("meta", config.MetaURL()).
		Bool("allowDownload", config.AllowDownload()).
		Msg("addon listening")

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:    addr,
		Handler: middleware.Recover(mux),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutdown requested")

	shCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
}
