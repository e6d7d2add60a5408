// Package irrbb computes interest rate risk in the banking book: the PV01
// profile, ΔEVE under parallel, EBA and custom curve shocks, ΔNII from the
// repricing gap, and the IRRBB risk summary.
//
// All sensitivities are linear PV01 approximations: a shock of s basis
// points moves value by pv01 × s / 10000. Nothing is repriced.
package irrbb

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

var bpsPerUnit = decimal.NewFromInt(10_000)

// BucketPV01 is the summed PV01 of one tenor bucket.
type BucketPV01 struct {
	Bucket model.TenorBucket `json:"tenor_bucket"`
	PV01   decimal.Decimal   `json:"pv01"`
}

// EVEResult is ΔEVE under a parallel shock.
type EVEResult struct {
	TotalPV01 decimal.Decimal `json:"total_pv01"`
	ShockBps  decimal.Decimal `json:"shock_bps"`
	DeltaEVE  decimal.Decimal `json:"delta_eve"`
}

// Scaled returns v × bps / 10000.
func Scaled(v, bps decimal.Decimal) decimal.Decimal {
	return v.Mul(bps).Div(bpsPerUnit)
}

// TotalPV01 sums PV01 over all instruments.
func TotalPV01(instruments []model.IRRBBInstrument) decimal.Decimal {
	total := decimal.Zero
	for _, in := range instruments {
		total = total.Add(in.PV01)
	}
	return total
}

// PV01Profile sums PV01 per tenor bucket. The five standard buckets are
// always present, in tenor order, zero when they hold no instrument.
// Records with a non-standard label follow in lexical order.
func PV01Profile(instruments []model.IRRBBInstrument) []BucketPV01 {
	sums := pv01ByBucket(instruments)

	profile := make([]BucketPV01, 0, len(sums))
	for _, b := range model.TenorBuckets {
		profile = append(profile, BucketPV01{Bucket: b, PV01: sums[b]})
		delete(sums, b)
	}

	extra := make([]BucketPV01, 0, len(sums))
	for b, v := range sums {
		extra = append(extra, BucketPV01{Bucket: b, PV01: v})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Bucket < extra[j].Bucket })
	return append(profile, extra...)
}

func pv01ByBucket(instruments []model.IRRBBInstrument) map[model.TenorBucket]decimal.Decimal {
	sums := make(map[model.TenorBucket]decimal.Decimal, len(model.TenorBuckets))
	for _, b := range model.TenorBuckets {
		sums[b] = decimal.Zero
	}
	for _, in := range instruments {
		sums[in.TenorBucket] = sums[in.TenorBucket].Add(in.PV01)
	}
	return sums
}

// EVESensitivity applies a parallel shock to total PV01.
func EVESensitivity(instruments []model.IRRBBInstrument, shockBps decimal.Decimal) EVEResult {
	total := TotalPV01(instruments)
	return EVEResult{
		TotalPV01: total,
		ShockBps:  shockBps,
		DeltaEVE:  Scaled(total, shockBps),
	}
}
