package wind

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-calculator/navigation"
)

const stampLayout = "2006010215"

var ErrNoForecast = errors.New("no wind forecast loaded")

// Store keeps the forecasts found in a directory of GRIB files named like
// 2020070112.f003 (run date then forecast hour), keyed by their valid time.
type Store struct {
	dir    string
	fields map[string]*Field
	lock   sync.RWMutex
}

func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		fields: make(map[string]*Field),
	}
}

// Schedule refreshes the store every interval seconds in the background
func (s *Store) Schedule(interval uint64) *gocron.Scheduler {
	c := gocron.NewScheduler()
	c.Every(interval).Seconds().Do(s.logRefresh)

	go c.Start()

	return c
}

func (s *Store) logRefresh() {
	if err := s.Refresh(); err != nil {
		log.WithError(err).Error("Error refreshing winds")
	}
}

// ParseFileName returns the valid time of a forecast file
func ParseFileName(name string) (time.Time, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 2 || len(parts[1]) < 2 {
		return time.Time{}, fmt.Errorf("unexpected grib file name '%s'", name)
	}

	run, err := time.Parse(stampLayout, parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date of '%s': %w", name, err)
	}
	h, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return time.Time{}, fmt.Errorf("getting hour from '%s': %w", name, err)
	}

	return run.Add(time.Hour * time.Duration(h)), nil
}

// Refresh drops the forecasts whose file is gone and loads the new ones.
// For a given valid time the most recent run wins.
func (s *Store) Refresh() error {
	var files []string
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
		} else if info.IsDir() && path != s.dir {
			return filepath.SkipDir
		} else if info.Mode().IsRegular() && !strings.HasSuffix(info.Name(), ".tmp") {
			files = append(files, info.Name())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking grib files: %w", err)
	}

	sort.Strings(files)

	s.lock.Lock()
	defer s.lock.Unlock()

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	for k, w := range s.fields {
		if !present[w.File] {
			log.Debugf("Remove from winds %s", k)
			delete(s.fields, k)
		}
	}

	for _, f := range files {
		date, err := ParseFileName(f)
		if err != nil {
			log.WithError(err).Warnf("Skipping '%s'", f)
			continue
		}
		stamp := date.Format(stampLayout)

		// files are sorted by run so a later run replaces an older one
		if w, found := s.fields[stamp]; found && w.File >= f {
			continue
		}

		w, err := Load(s.dir, date, f)
		if err != nil {
			log.WithError(err).Errorf("Error loading grib file '%s'", f)
			continue
		}
		log.Debugf("Init %s %s", stamp, w.File)
		s.fields[stamp] = w
	}

	return nil
}

// Add puts an already decoded forecast in the store
func (s *Store) Add(w *Field) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.fields[w.Date.Format(stampLayout)] = w
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.fields)
}

// find returns the forecasts around m and how far m is from the first one,
// between 0 and 1
func (s *Store) find(m time.Time) (*Field, *Field, float64) {
	stamp := m.Format(stampLayout)

	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if keys[0] > stamp {
		return s.fields[keys[0]], nil, 0
	}
	for i := range keys {
		if keys[i] > stamp {
			w1 := s.fields[keys[i-1]]
			w2 := s.fields[keys[i]]
			h := m.Sub(w1.Date).Minutes()
			delta := w2.Date.Sub(w1.Date).Minutes()
			return w1, w2, h / delta
		}
	}
	return s.fields[keys[len(keys)-1]], nil, 0
}

// WindAt interpolates the wind at a position, in space then in time
func (s *Store) WindAt(lat float64, lon float64, m time.Time) (navigation.WindData, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if len(s.fields) == 0 {
		return navigation.WindData{}, ErrNoForecast
	}

	// forecasts are keyed on UTC stamps
	w1, w2, h := s.find(m.UTC())

	u, v, err := w1.interpolate(lat, lon)
	if err != nil {
		return navigation.WindData{}, err
	}

	if w2 != nil {
		u2, v2, err := w2.interpolate(lat, lon)
		if err != nil {
			return navigation.WindData{}, err
		}
		u = u2*h + u*(1-h)
		v = v2*h + v*(1-h)
	}

	return toWindData(u, v), nil
}
