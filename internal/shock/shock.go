// Package shock parses caller-supplied rate shocks: per-bucket yield-curve
// shifts for the custom IRRBB path and lists of parallel shocks for the
// risk summary.
package shock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/model"
)

// termRegex matches one curve term: {bucket}={bps}
// Example: 3-5y=-25.5
var termRegex = regexp.MustCompile(`^\s*([0-9]+-[0-9]+y|[0-9]+y\+)\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)\s*$`)

// MaxAbsBps bounds any single shock. Anything beyond ±10000bp is a unit
// error rather than a scenario.
var MaxAbsBps = decimal.NewFromInt(10_000)

var (
	ErrInvalidCurve  = errors.New("shock: invalid curve")
	ErrUnknownBucket = errors.New("shock: unknown tenor bucket")
	ErrOutOfRange    = errors.New("shock: shock out of range")
)

// ParseCurve parses a comma-separated curve such as "0-1y=200,1-3y=150".
// Buckets left out are not shocked. A bucket may appear once.
func ParseCurve(s string) (irrbb.Curve, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty curve (expected {bucket}={bps},...)", ErrInvalidCurve)
	}

	curve := make(irrbb.Curve)
	for _, term := range strings.Split(s, ",") {
		m := termRegex.FindStringSubmatch(term)
		if m == nil {
			return nil, fmt.Errorf("%w: %q (expected {bucket}={bps})", ErrInvalidCurve, term)
		}
		bucket, ok := model.ParseTenorBucket(m[1])
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, m[1])
		}
		if _, dup := curve[bucket]; dup {
			return nil, fmt.Errorf("%w: %s given twice", ErrInvalidCurve, bucket)
		}
		bps, err := parseBps(m[2])
		if err != nil {
			return nil, err
		}
		curve[bucket] = bps
	}
	return curve, nil
}

// CurveFromMap validates a curve keyed by bucket label, as decoded from a
// JSON request body.
func CurveFromMap(m map[string]decimal.Decimal) (irrbb.Curve, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: no buckets given", ErrInvalidCurve)
	}
	curve := make(irrbb.Curve, len(m))
	for label, bps := range m {
		bucket, ok := model.ParseTenorBucket(label)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, label)
		}
		if err := checkRange(bps); err != nil {
			return nil, err
		}
		curve[bucket] = bps
	}
	return curve, nil
}

// ParseList parses comma-separated parallel shocks such as "200,-200".
func ParseList(s string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		bps, err := parseBps(f)
		if err != nil {
			return nil, err
		}
		out = append(out, bps)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty shock list", ErrInvalidCurve)
	}
	return out, nil
}

// ParseBps parses a single shock in basis points.
func ParseBps(s string) (decimal.Decimal, error) {
	return parseBps(strings.TrimSpace(s))
}

func parseBps(s string) (decimal.Decimal, error) {
	bps, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidCurve, s)
	}
	if err := checkRange(bps); err != nil {
		return decimal.Zero, err
	}
	return bps, nil
}

func checkRange(bps decimal.Decimal) error {
	if bps.Abs().GreaterThan(MaxAbsBps) {
		return fmt.Errorf("%w: %sbp exceeds ±%sbp", ErrOutOfRange, bps, MaxAbsBps)
	}
	return nil
}
