package rainbow

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/afeinstein20/chromatic/filter/median"
	"github.com/afeinstein20/chromatic/filter/savgol"
)

// TrendMethod names a smooth-signal removal strategy. The set is closed;
// unrecognized methods are rejected with [ErrUnsupportedMethod].
type TrendMethod string

const (
	// TrendDifferences replaces each light curve with its scaled first
	// differences: flux' = sqrt(2) * gradient(flux, along time) + 1.
	// Smooth trends vanish; sharp features survive.
	TrendDifferences TrendMethod = "differences"
	// TrendMedianFilter divides the flux by its 2-D running median over a
	// (wavelength-window, time-window) neighborhood. Default size (1, 11).
	TrendMedianFilter TrendMethod = "median_filter"
	// TrendSavGolFilter divides each wavelength's light curve by its
	// Savitzky-Golay smoothed version. Default window 11, order 1.
	TrendSavGolFilter TrendMethod = "savgol_filter"
	// TrendCustom divides the flux by a caller-supplied model grid.
	TrendCustom TrendMethod = "custom"
)

const (
	defaultMedianSizeW   = 1
	defaultMedianSizeT   = 11
	defaultSavGolWindow  = 11
	defaultSavGolPolyOrd = 1
)

type trendConfig struct {
	sizeW, sizeT int
	sizeSet      bool
	windowLength int
	windowSet    bool
	polyOrder    int
	polyOrderSet bool
	model        [][]float64
}

// TrendOption supplies a tuning parameter to RemoveTrends.
type TrendOption func(*trendConfig)

// WithFilterSize sets the (wavelength-window, time-window) neighborhood for
// the median_filter method.
func WithFilterSize(sizeW, sizeT int) TrendOption {
	return func(cfg *trendConfig) {
		if sizeW > 0 && sizeT > 0 {
			cfg.sizeW, cfg.sizeT = sizeW, sizeT
			cfg.sizeSet = true
		}
	}
}

// WithWindowLength sets the savgol_filter window length (must be odd).
func WithWindowLength(n int) TrendOption {
	return func(cfg *trendConfig) {
		if n > 0 {
			cfg.windowLength = n
			cfg.windowSet = true
		}
	}
}

// WithPolyOrder sets the savgol_filter polynomial order.
func WithPolyOrder(order int) TrendOption {
	return func(cfg *trendConfig) {
		if order >= 0 {
			cfg.polyOrder = order
			cfg.polyOrderSet = true
		}
	}
}

// WithTrendModel supplies the precomputed model grid for the custom method.
func WithTrendModel(model [][]float64) TrendOption {
	return func(cfg *trendConfig) {
		cfg.model = model
	}
}

// RemoveTrends approximately removes smooth astrophysical signals from the
// flux and returns a new container. Missing optional tuning parameters
// degrade to documented defaults with a logged advisory; a missing custom
// model is an error. Uncertainty is deliberately left untouched by every
// method.
func (r *Rainbow) RemoveTrends(method TrendMethod, opts ...TrendOption) (*Rainbow, error) {
	cfg := trendConfig{
		sizeW:        defaultMedianSizeW,
		sizeT:        defaultMedianSizeT,
		windowLength: defaultSavGolWindow,
		polyOrder:    defaultSavGolPolyOrd,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	entry := newHistoryEntry("remove_trends", trendParams(method, cfg))
	result := r.Copy()

	switch method {
	case TrendDifferences:
		for i := range result.flux {
			gradientInPlace(result.flux[i])
		}

	case TrendMedianFilter:
		if !cfg.sizeSet {
			slog.Warn("rainbow: remove_trends relying on default filter size",
				"method", method, "size_w", cfg.sizeW, "size_t", cfg.sizeT)
		}
		smoothed, err := median.Filter2D(r.flux, cfg.sizeW, cfg.sizeT)
		if err != nil {
			return nil, fmt.Errorf("rainbow: remove_trends: %w", err)
		}
		divideGrid(result.flux, smoothed)

	case TrendSavGolFilter:
		if !cfg.windowSet || !cfg.polyOrderSet {
			slog.Warn("rainbow: remove_trends relying on default filter options",
				"method", method, "window_length", cfg.windowLength, "polyorder", cfg.polyOrder)
		}
		for i, row := range r.flux {
			smoothed, err := savgol.Smooth(row, cfg.windowLength, cfg.polyOrder)
			if err != nil {
				return nil, fmt.Errorf("rainbow: remove_trends wavelength %d: %w", i, err)
			}
			for j := range result.flux[i] {
				result.flux[i][j] = r.flux[i][j] / smoothed[j]
			}
		}

	case TrendCustom:
		if cfg.model == nil {
			return nil, fmt.Errorf("%w: custom method needs a flux-shaped model", ErrMissingArgument)
		}
		nw, nt := r.Shape()
		if err := checkGrid("model", cfg.model, nw, nt); err != nil {
			return nil, err
		}
		divideGrid(result.flux, cfg.model)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	result.recordHistory(entry)
	return result, nil
}

// trendParams records only the parameters relevant to the chosen method.
func trendParams(method TrendMethod, cfg trendConfig) map[string]any {
	params := map[string]any{"method": string(method)}
	switch method {
	case TrendMedianFilter:
		params["size"] = shapeString(cfg.sizeW, cfg.sizeT)
	case TrendSavGolFilter:
		params["window_length"] = cfg.windowLength
		params["polyorder"] = cfg.polyOrder
	case TrendCustom:
		params["model"] = gridShape(cfg.model)
	}
	return params
}

// gradientInPlace replaces row with sqrt(2)*gradient(row)+1, using central
// differences in the interior and one-sided differences at the edges.
func gradientInPlace(row []float64) {
	n := len(row)
	if n < 2 {
		for j := range row {
			row[j] = 1
		}
		return
	}
	prev := row[0]
	for j := range row {
		var g float64
		switch j {
		case 0:
			g = row[1] - row[0]
		case n - 1:
			g = row[n-1] - prev
		default:
			g = (row[j+1] - prev) / 2
		}
		prev = row[j]
		row[j] = math.Sqrt2*g + 1
	}
}

// divideGrid computes dst[i][j] /= by[i][j] in place.
func divideGrid(dst, by [][]float64) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] /= by[i][j]
		}
	}
}
