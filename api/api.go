package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-calculator/api/model"
	"github.com/a-bouts/nav-calculator/gps"
	"github.com/a-bouts/nav-calculator/latlon"
	"github.com/a-bouts/nav-calculator/metrics"
	"github.com/a-bouts/nav-calculator/navigation"
	"github.com/a-bouts/nav-calculator/wind"
)

type WindProvider interface {
	WindAt(lat float64, lon float64, m time.Time) (navigation.WindData, error)
}

type Notifier interface {
	Configured() bool
	Send(message string) error
}

type Publisher interface {
	Publish(c model.Calculation) error
}

type server struct {
	winds     WindProvider
	x         Notifier
	publisher Publisher
	metrics   *metrics.Collector
}

var defaults = model.Defaults{
	Wind:   navigation.WindData{Direction: 270, Speed: 20},
	Flight: navigation.FlightData{Track: 90, TrueAirspeed: 120},
}

// InitServer builds the router. winds, x and p may be nil, the matching
// features are then off.
func InitServer(winds WindProvider, x Notifier, p Publisher, m *metrics.Collector, limiter *IPRateLimiter) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		winds:     winds,
		x:         x,
		publisher: p,
		metrics:   m,
	}

	api := router.PathPrefix("/").Subrouter()
	api.HandleFunc("/calc/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/calc/api/v1").Subrouter()
	if limiter != nil {
		apiV1.Use(limiter.Middleware)
	}
	apiV1.HandleFunc("/defaults", s.getDefaults).Methods(http.MethodGet)
	apiV1.HandleFunc("/navigation", s.navigation).Methods(http.MethodPost)
	apiV1.HandleFunc("/wind/{lat}/{lon}", s.wind).Methods(http.MethodGet)
	apiV1.HandleFunc("/ws", s.ws).Methods(http.MethodGet)

	return router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	writeJSON(w, http.StatusOK, health{Status: "Ok"})
}

func (s *server) getDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, defaults)
}

func (s *server) wind(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(mux.Vars(r)["lat"], 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.Errors{Errors: []string{"Invalid latitude"}})
		return
	}
	lon, err := strconv.ParseFloat(mux.Vars(r)["lon"], 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.Errors{Errors: []string{"Invalid longitude"}})
		return
	}

	at := time.Now()
	if t := r.URL.Query().Get("time"); t != "" {
		at, err = time.Parse(time.RFC3339, t)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.Errors{Errors: []string{"Invalid time"}})
			return
		}
	}

	wd, err := s.windAt(lat, lon, at)
	if err != nil {
		writeJSON(w, http.StatusNotFound, model.Errors{Errors: []string{err.Error()}})
		return
	}

	log.Infof("Wind (%f,%f) : %s %s", lat, lon, navigation.FormatAngle(wd.Direction), navigation.FormatSpeed(wd.Speed))

	writeJSON(w, http.StatusOK, wd)
}

func (s *server) windAt(lat float64, lon float64, at time.Time) (navigation.WindData, error) {
	if s.winds == nil {
		s.metrics.RecordWindLookup(metrics.OutcomeError)
		return navigation.WindData{}, wind.ErrNoForecast
	}
	wd, err := s.winds.WindAt(lat, lon, at)
	if err != nil {
		s.metrics.RecordWindLookup(metrics.OutcomeError)
		return navigation.WindData{}, err
	}
	s.metrics.RecordWindLookup(metrics.OutcomeOk)
	return wd, nil
}

func (s *server) navigation(w http.ResponseWriter, req *http.Request) {
	fields := log.Fields{
		"action": "navigation",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	var n model.Navigation
	if err := json.NewDecoder(req.Body).Decode(&n); err != nil {
		requestLogger.WithError(err).Warn("Bad navigation request")
		writeJSON(w, http.StatusBadRequest, model.Errors{Errors: []string{"Malformed request"}})
		return
	}

	status, body := s.calculate(n, "http", requestLogger)

	writeJSON(w, status, body)
}

type requestError struct {
	status int
	err    error
}

func (e requestError) Error() string {
	return e.err.Error()
}

type inputs struct {
	wind   navigation.WindData
	flight navigation.FlightData
	// distance of the leg in meters, 0 without a leg
	distance float64
}

// resolve fills the wind from the forecast and the track from the gps
// sentence or the leg when the request asks for it
func (s *server) resolve(n model.Navigation) (inputs, error) {
	in := inputs{
		flight: navigation.FlightData{Track: n.Flight.Track, TrueAirspeed: n.Flight.TrueAirspeed},
	}

	if n.Flight.Nmea != "" && n.Flight.Leg != nil {
		return in, requestError{status: http.StatusBadRequest, err: errors.New("Track comes from either nmea or leg, not both")}
	}

	if n.Flight.Nmea != "" {
		fix, err := gps.Parse(n.Flight.Nmea)
		if err != nil {
			return in, requestError{status: http.StatusBadRequest, err: err}
		}
		in.flight.Track = fix.Track
	}

	if leg := n.Flight.Leg; leg != nil {
		if !leg.From.Valid() || !leg.To.Valid() {
			return in, requestError{status: http.StatusBadRequest, err: latlon.ErrInvalidPosition}
		}
		in.distance, in.flight.Track = latlon.LatLonHaversine{}.DistanceAndBearingTo(leg.From, leg.To)
	}

	if n.Wind != nil {
		in.wind = *n.Wind
		return in, nil
	}

	var at time.Time
	var lat, lon float64
	switch {
	case n.Position != nil:
		at, lat, lon = n.Position.Time, n.Position.Lat, n.Position.Lon
	case n.Flight.Leg != nil:
		lat, lon = n.Flight.Leg.From.Lat, n.Flight.Leg.From.Lon
	default:
		return in, requestError{status: http.StatusBadRequest, err: errors.New("Wind or position is required")}
	}

	if at.IsZero() {
		at = time.Now()
	}
	wd, err := s.windAt(lat, lon, at)
	if err != nil {
		return in, requestError{status: http.StatusNotFound, err: err}
	}
	in.wind = wd
	return in, nil
}

// calculate runs a request through validation then the solver and returns
// the status and body to answer with
func (s *server) calculate(n model.Navigation, transport string, logger *log.Entry) (int, interface{}) {
	start := time.Now()

	in, err := s.resolve(n)
	if err != nil {
		status := http.StatusBadRequest
		var re requestError
		if errors.As(err, &re) {
			status = re.status
		}
		logger.WithError(err).Warn("Unable to resolve navigation inputs")
		s.metrics.RecordCalculation(transport, metrics.OutcomeError, time.Since(start))
		return status, model.Errors{Errors: []string{err.Error()}}
	}

	wd, flight := in.wind, in.flight

	if errs := navigation.ValidateInputs(wd, flight); len(errs) > 0 {
		logger.Debugf("Invalid inputs %v", errs)
		s.metrics.RecordValidation(errs)
		s.metrics.RecordCalculation(transport, metrics.OutcomeInvalid, time.Since(start))
		return http.StatusUnprocessableEntity, model.Errors{Errors: errs}
	}

	r := navigation.Calculate(wd, flight)
	c := model.Calculation{
		Wind:   wd,
		Flight: flight,
		Result: r,
		Display: model.Display{
			Heading:     navigation.FormatAngle(r.Heading),
			Drift:       navigation.DescribeDrift(r.DriftAngle),
			GroundSpeed: navigation.FormatSpeed(r.GroundSpeed),
		},
	}

	if in.distance > 0 {
		c.Leg = legSummary(in.distance, r.GroundSpeed)
	}

	s.metrics.RecordCalculation(transport, metrics.OutcomeOk, time.Since(start))
	logger.Infof("Track %s TAS %s wind %s/%s : heading %s drift %s ground speed %s",
		navigation.FormatAngle(flight.Track), navigation.FormatSpeed(flight.TrueAirspeed),
		navigation.FormatAngle(wd.Direction), navigation.FormatSpeed(wd.Speed),
		c.Display.Heading, c.Display.Drift, c.Display.GroundSpeed)

	if s.publisher != nil {
		if err := s.publisher.Publish(c); err != nil {
			logger.WithError(err).Error("Error publishing calculation")
		}
	}

	// a socket recalculates on every keystroke, briefings only go out on
	// explicit requests
	if n.Notify && transport != "ws" && s.x != nil && s.x.Configured() {
		go func(message string) {
			if err := s.x.Send(message); err != nil {
				logger.WithError(err).Error("Error sending briefing")
			}
		}(briefing(c))
	}

	return http.StatusOK, c
}

func legSummary(meters float64, groundSpeed float64) *model.LegSummary {
	nm := latlon.MetersToNm(meters)
	l := &model.LegSummary{Distance: math.Round(nm*10) / 10}
	if groundSpeed > 0 {
		ete := math.Round(nm/groundSpeed*60*10) / 10
		l.Ete = &ete
	}
	return l
}

func briefing(c model.Calculation) string {
	return fmt.Sprintf("Track %s at %s, wind %s at %s\nHeading %s\nGround speed %s\nDrift %s",
		navigation.FormatAngle(c.Flight.Track), navigation.FormatSpeed(c.Flight.TrueAirspeed),
		navigation.FormatAngle(c.Wind.Direction), navigation.FormatSpeed(c.Wind.Speed),
		c.Display.Heading, c.Display.GroundSpeed, c.Display.Drift)
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
