package irrbb

import (
	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// BucketGap is the signed repricing gap of one repricing bucket.
type BucketGap struct {
	Bucket model.RepricingBucket `json:"bucket"`
	Gap    decimal.Decimal       `json:"gap"`
}

// NIIResult is ΔNII under a parallel shock, from the repricing gap.
type NIIResult struct {
	TotalGap    decimal.Decimal `json:"total_repricing_gap"`
	GapByBucket []BucketGap     `json:"gap_by_bucket"`
	ShockBps    decimal.Decimal `json:"shock_bps"`
	DeltaNII    decimal.Decimal `json:"delta_nii"`
}

// RepricingGap nets inflows against outflows per repricing bucket. All five
// buckets are returned in order.
func RepricingGap(cashflows []model.Cashflow) []BucketGap {
	sums := make(map[model.RepricingBucket]decimal.Decimal, len(model.RepricingBuckets))
	for _, cf := range cashflows {
		b := cf.RepricingBucket()
		sums[b] = sums[b].Add(cf.Signed())
	}
	gaps := make([]BucketGap, len(model.RepricingBuckets))
	for i, b := range model.RepricingBuckets {
		gaps[i] = BucketGap{Bucket: b, Gap: sums[b]}
	}
	return gaps
}

// DeltaNII sums gap × shock / 10000 over the buckets.
func DeltaNII(gaps []BucketGap, shockBps decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, g := range gaps {
		total = total.Add(Scaled(g.Gap, shockBps))
	}
	return total
}

// NIISensitivity computes ΔNII for a parallel shock from the repricing gap
// of the cashflows.
func NIISensitivity(cashflows []model.Cashflow, shockBps decimal.Decimal) NIIResult {
	gaps := RepricingGap(cashflows)
	total := decimal.Zero
	for _, g := range gaps {
		total = total.Add(g.Gap)
	}
	return NIIResult{
		TotalGap:    total,
		GapByBucket: gaps,
		ShockBps:    shockBps,
		DeltaNII:    DeltaNII(gaps, shockBps),
	}
}
