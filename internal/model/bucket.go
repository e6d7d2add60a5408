package model

// The repository uses two bucketing schemes that must not be conflated:
//
//   - MaturityBucket: six liquidity buckets by days to maturity, used by
//     the cashflow-gap heatmap.
//   - RepricingBucket: five buckets used by the repricing-gap ΔNII. They
//     borrow the IRRBB tenor labels but split at 7/30/90/180 days, not at
//     the years the labels suggest.
//
// TenorBucket is the label carried on IRRBB instrument records.

// MaturityBucket is a liquidity time band.
type MaturityBucket string

const (
	Maturity0to7d     MaturityBucket = "0-7d"
	Maturity8to30d    MaturityBucket = "8-30d"
	Maturity31to90d   MaturityBucket = "31-90d"
	Maturity91to180d  MaturityBucket = "91-180d"
	Maturity181to365d MaturityBucket = "181-365d"
	MaturityOver1y    MaturityBucket = ">1y"
)

// MaturityBuckets lists the liquidity buckets in ascending order.
var MaturityBuckets = []MaturityBucket{
	Maturity0to7d, Maturity8to30d, Maturity31to90d,
	Maturity91to180d, Maturity181to365d, MaturityOver1y,
}

var maturityBounds = []struct {
	low, high int
	bucket    MaturityBucket
}{
	{0, 7, Maturity0to7d},
	{8, 30, Maturity8to30d},
	{31, 90, Maturity31to90d},
	{91, 180, Maturity91to180d},
	{181, 365, Maturity181to365d},
}

// MaturityBucketFor maps a day count to its liquidity bucket. Bounds are
// inclusive; anything that matches no band (including negative counts)
// falls into >1y.
func MaturityBucketFor(days int) MaturityBucket {
	for _, b := range maturityBounds {
		if days >= b.low && days <= b.high {
			return b.bucket
		}
	}
	return MaturityOver1y
}

// TenorBucket is the IRRBB tenor label on instrument records.
type TenorBucket string

const (
	Tenor0to1y  TenorBucket = "0-1y"
	Tenor1to3y  TenorBucket = "1-3y"
	Tenor3to5y  TenorBucket = "3-5y"
	Tenor5to10y TenorBucket = "5-10y"
	Tenor10yUp  TenorBucket = "10y+"
)

// TenorBuckets lists tenor labels in ascending order. Shock vectors are
// indexed in this order.
var TenorBuckets = []TenorBucket{Tenor0to1y, Tenor1to3y, Tenor3to5y, Tenor5to10y, Tenor10yUp}

// ParseTenorBucket reports whether s is a known tenor label.
func ParseTenorBucket(s string) (TenorBucket, bool) {
	for _, b := range TenorBuckets {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

// RepricingBucket is a repricing-gap band for ΔNII.
type RepricingBucket string

const (
	Repricing0to1y  RepricingBucket = "0-1y"
	Repricing1to3y  RepricingBucket = "1-3y"
	Repricing3to5y  RepricingBucket = "3-5y"
	Repricing5to10y RepricingBucket = "5-10y"
	Repricing10yUp  RepricingBucket = "10y+"
)

// RepricingBuckets lists repricing bands in ascending order.
var RepricingBuckets = []RepricingBucket{
	Repricing0to1y, Repricing1to3y, Repricing3to5y, Repricing5to10y, Repricing10yUp,
}

// RepricingBucketFor maps a day count using ≤7, ≤30, ≤90, ≤180 thresholds.
func RepricingBucketFor(days int) RepricingBucket {
	switch {
	case days <= 7:
		return Repricing0to1y
	case days <= 30:
		return Repricing1to3y
	case days <= 90:
		return Repricing3to5y
	case days <= 180:
		return Repricing5to10y
	}
	return Repricing10yUp
}

// MaturityBucket places a cashflow in the liquidity scheme. Unknown
// maturities go to >1y.
func (c Cashflow) MaturityBucket() MaturityBucket {
	days, ok := c.DaysToMaturity()
	if !ok {
		return MaturityOver1y
	}
	return MaturityBucketFor(days)
}

// RepricingBucket places a cashflow in the repricing scheme. Unknown
// maturities go to the last band.
func (c Cashflow) RepricingBucket() RepricingBucket {
	days, ok := c.DaysToMaturity()
	if !ok {
		return Repricing10yUp
	}
	return RepricingBucketFor(days)
}
