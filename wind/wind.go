package wind

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/nilsmagnus/grib/griblib"
)

var ErrOutOfGrid = errors.New("position outside of the forecast grid")

// Field is the 10m wind of one forecast file, U and V in m/s
type Field struct {
	Date time.Time
	File string
	Lat0 float64
	Lon0 float64
	ΔLat float64
	ΔLon float64
	NLat uint32
	NLon uint32
	U    [][]float64
	V    [][]float64
}

func (w Field) buildGrid(data []float64) [][]float64 {

	isContinuous := math.Floor(float64(w.NLon)*w.ΔLon) >= 360

	nLon := w.NLon
	if isContinuous {
		nLon++
	}

	grid := make([][]float64, w.NLat)

	p := 0
	for j := uint32(0); j < w.NLat; j++ {
		grid[j] = make([]float64, nLon)
		for i := uint32(0); i < w.NLon; i++ {
			grid[j][i] = data[p]
			p++
		}
		if isContinuous {
			grid[j][w.NLon] = grid[j][0]
		}
	}
	return grid
}

// Load reads the u/v components at 10m above ground from a GRIB2 file
func Load(dir string, date time.Time, file string) (*Field, error) {
	w := &Field{Date: date, File: file}

	gribfile, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	defer gribfile.Close()

	messages, err := griblib.ReadMessages(gribfile)
	if err != nil {
		return nil, fmt.Errorf("reading grib messages from '%s': %w", file, err)
	}
	for _, message := range messages {
		product := message.Section4.ProductDefinitionTemplate
		if message.Section0.Discipline != uint8(0) || product.ParameterCategory != uint8(2) || product.FirstSurface.Type != 103 || product.FirstSurface.Value != 10 {
			continue
		}
		grid0, ok := message.Section3.Definition.(*griblib.Grid0)
		if !ok {
			continue
		}
		w.Lat0 = float64(grid0.La1) / 1e6
		w.Lon0 = float64(grid0.Lo1) / 1e6
		w.ΔLat = float64(grid0.Dj) / 1e6
		w.ΔLon = float64(grid0.Di) / 1e6
		w.NLat = grid0.Nj
		w.NLon = grid0.Ni
		if product.ParameterNumber == 2 {
			w.U = w.buildGrid(message.Section7.Data)
		} else if product.ParameterNumber == 3 {
			w.V = w.buildGrid(message.Section7.Data)
		}
	}
	if w.U == nil || w.V == nil {
		return nil, fmt.Errorf("no 10m wind in '%s'", file)
	}
	return w, nil
}

func bilinearInterpolate(x float64, y float64, g00 []float64, g10 []float64, g01 []float64, g11 []float64) (float64, float64) {

	rx := (1 - x)
	ry := (1 - y)

	a := rx * ry
	b := x * ry
	c := rx * y
	d := x * y

	u := g00[0]*a + g10[0]*b + g01[0]*c + g11[0]*d
	v := g00[1]*a + g10[1]*b + g01[1]*c + g11[1]*d

	return u, v
}

func (w *Field) interpolate(lat float64, lon float64) (float64, float64, error) {

	// rows run from north to south
	i := (w.Lat0 - lat) / w.ΔLat
	j := floorMod(lon-w.Lon0, 360.0) / w.ΔLon

	if i < 0 || i > float64(w.NLat-1) || j > float64(len(w.U[0])-1) {
		return 0, 0, ErrOutOfGrid
	}

	fi := uint32(i)
	fj := uint32(j)

	// last row or column
	ni := fi + 1
	if ni >= w.NLat {
		ni = fi
	}
	nj := fj + 1
	if int(nj) >= len(w.U[0]) {
		nj = fj
	}

	u00 := w.U[fi][fj]
	v00 := w.V[fi][fj]

	u01 := w.U[ni][fj]
	v01 := w.V[ni][fj]

	u10 := w.U[fi][nj]
	v10 := w.V[fi][nj]

	u11 := w.U[ni][nj]
	v11 := w.V[ni][nj]

	u, v := bilinearInterpolate(j-float64(fj), i-float64(fi), []float64{u00, v00}, []float64{u10, v10}, []float64{u01, v01}, []float64{u11, v11})

	return u, v, nil
}
