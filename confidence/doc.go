// Package confidence maps raw retrieval scores to qualitative
// confidence labels through validated, named profiles.
//
// A [Profile] defines two thresholds (high, medium) and a piecewise
// calibration curve for each band. [Calibrate] applies the curve:
// scores at or above the high threshold calibrate into
// [high_base, high_cap], the medium band into [medium_base, medium_cap],
// and everything below the medium threshold is labeled low and floored
// at low_floor.
//
// [Presets] provides the "balanced", "precision", and "recall" defaults.
// Profiles are validated once at configuration load and never mutated.
package confidence
