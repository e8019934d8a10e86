package scoring

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed calibration.yaml
var defaultCalibrationYAML []byte

// weightSumTolerance absorbs float decoding noise when validating that the
// component weights sum to 1.0.
const weightSumTolerance = 1e-9

// Weights holds the contribution of each penalty component to the final
// score. The four weights must sum to exactly 1.0.
type Weights struct {
	Grammar float64 `yaml:"grammar"`
	Fillers float64 `yaml:"fillers"`
	WER     float64 `yaml:"wer"`
	Fluency float64 `yaml:"fluency"`
}

// Calibration carries the penalty curve thresholds and component weights.
//
// Grammar and filler thresholds are rates per 100 words at which the
// penalty saturates at 1.0. The WPM band [IdealWPMMin, IdealWPMMax] carries
// zero fluency penalty; VerySlowWPM and VeryFastWPM are the rates at which
// the slow/fast ramps reach 1.0.
type Calibration struct {
	MaxGrammarErrorsPer100 float64 `yaml:"max_grammar_errors_per_100"`
	MaxFillersPer100       float64 `yaml:"max_fillers_per_100"`
	MaxWER                 float64 `yaml:"max_wer"`
	IdealWPMMin            float64 `yaml:"ideal_wpm_min"`
	IdealWPMMax            float64 `yaml:"ideal_wpm_max"`
	VerySlowWPM            float64 `yaml:"very_slow_wpm"`
	VeryFastWPM            float64 `yaml:"very_fast_wpm"`
	Weights                Weights `yaml:"weights"`
}

// DefaultCalibration returns the embedded calibration. The embedded file is
// validated by tests, so decoding cannot fail at runtime.
func DefaultCalibration() Calibration {
	var c Calibration
	if err := yaml.Unmarshal(defaultCalibrationYAML, &c); err != nil {
		panic(fmt.Sprintf("embedded calibration is invalid: %v", err))
	}
	return c
}

// LoadCalibration reads a calibration override from a YAML file.
func LoadCalibration(path string) (Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Calibration{}, fmt.Errorf("read calibration: %w", err)
	}
	var c Calibration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Calibration{}, fmt.Errorf("decode calibration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Calibration{}, err
	}
	return c, nil
}

// Validate checks threshold ordering and the weight-sum invariant.
func (c Calibration) Validate() error {
	switch {
	case c.MaxGrammarErrorsPer100 <= 0:
		return fmt.Errorf("%w: max_grammar_errors_per_100 must be positive", ErrInvalidCalibration)
	case c.MaxFillersPer100 <= 0:
		return fmt.Errorf("%w: max_fillers_per_100 must be positive", ErrInvalidCalibration)
	case c.MaxWER <= 0:
		return fmt.Errorf("%w: max_wer must be positive", ErrInvalidCalibration)
	case c.VerySlowWPM <= 0 || c.IdealWPMMin <= c.VerySlowWPM:
		return fmt.Errorf("%w: require 0 < very_slow_wpm < ideal_wpm_min", ErrInvalidCalibration)
	case c.IdealWPMMax <= c.IdealWPMMin:
		return fmt.Errorf("%w: require ideal_wpm_min < ideal_wpm_max", ErrInvalidCalibration)
	case c.VeryFastWPM <= c.IdealWPMMax:
		return fmt.Errorf("%w: require ideal_wpm_max < very_fast_wpm", ErrInvalidCalibration)
	}

	sum := c.Weights.Grammar + c.Weights.Fillers + c.Weights.WER + c.Weights.Fluency
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidCalibration, sum)
	}
	return nil
}
