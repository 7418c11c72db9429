package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/peterbourgon/ff"
	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-calculator/api"
	"github.com/a-bouts/nav-calculator/metrics"
	"github.com/a-bouts/nav-calculator/publish"
	"github.com/a-bouts/nav-calculator/wind"
	"github.com/a-bouts/nav-calculator/xmpp"
)

func main() {

	fs := flag.NewFlagSet("nav-calculator", flag.ExitOnError)
	var (
		listen       = fs.String("listen", ":8888", "address the server listens on")
		debug        = fs.Bool("debug", false, "debug logs")
		cpuprofile   = fs.Bool("cpuprofile", false, "write a cpu profile on exit")
		gribDir      = fs.String("grib-dir", "grib-data", "directory of the GRIB2 wind forecasts")
		gribRefresh  = fs.Uint64("grib-refresh", 15, "seconds between two scans of grib-dir")
		rateLimit    = fs.Float64("rate-limit", 120, "requests per minute and client, 0 disables")
		rateBurst    = fs.Int("rate-burst", 20, "burst of requests allowed per client")
		trustProxy   = fs.Bool("trust-proxy", false, "take the client address from X-Real-Ip / X-Forwarded-For")
		corsOrigins  = fs.String("cors-origins", "*", "comma separated allowed origins")
		mqttBroker   = fs.String("mqtt-broker", "", "publish calculations to this broker, e.g. tcp://localhost:1883")
		mqttClientID = fs.String("mqtt-client-id", "nav-calculator", "")
		mqttTopic    = fs.String("mqtt-topic", "nav/calculations", "")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		log.WithError(err).Fatal("Error parsing configuration")
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *cpuprofile {
		defer profile.Start().Stop()
	}

	winds := wind.NewStore(*gribDir)
	if err := winds.Refresh(); err != nil {
		log.WithError(err).Warn("No wind forecast loaded")
	}
	log.Infof("Loaded %d wind forecasts", winds.Len())
	scheduler := winds.Schedule(*gribRefresh)
	defer scheduler.Clear()

	var publisher api.Publisher
	if *mqttBroker != "" {
		p, err := publish.Connect(*mqttBroker, *mqttClientID, *mqttTopic)
		if err != nil {
			log.WithError(err).Error("Calculations will not be published")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	x := xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}
	if !x.Configured() {
		log.Info("No xmpp account, briefings are disabled")
	}

	var limiter *api.IPRateLimiter
	if *rateLimit > 0 {
		limiter = api.NewIPRateLimiter(*rateLimit, *rateBurst)
		limiter.TrustProxy = *trustProxy
	}

	m := metrics.NewCollector(prometheus.DefaultRegisterer)

	router := api.InitServer(winds, x, publisher, m, limiter)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	h := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(*corsOrigins, ",")),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(*debug))(h)
	h = handlers.CombinedLoggingHandler(log.StandardLogger().WriterLevel(log.DebugLevel), h)

	srv := &http.Server{
		Addr:              *listen,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Start server on %s", *listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.WithError(err).Error("Error shutting down")
	}
	log.Info("Bye")
}
