// file: internals/features/finance/tuition/service/policy.go
package service

import (
	"strconv"

	"github.com/shopspring/decimal"
)

/* ======================================================
   BillingPolicy — knob kebijakan yang BUKAN hard-code:
   - default VAT rate untuk line manual tanpa rate eksplisit
   - formula tarif per sesi untuk refund rekonsiliasi
   Di-load dari env di main (configs.GetEnv), di-inject ke
   service lewat struct ini.
====================================================== */

type SessionRateFn func(info ClassInfo) int64

type BillingPolicy struct {
	DefaultVATRatePercent float64
	SessionRate           SessionRateFn
}

// DefaultSessionRate: base fee / expected sessions, half-up ke rupiah.
// 2.000.000 / 8 sesi = 250.000 per sesi.
func DefaultSessionRate(info ClassInfo) int64 {
	if info.SessionsPerPeriod <= 0 {
		return 0
	}
	return decimal.NewFromInt(info.TuitionFeeIDR).
		Div(decimal.NewFromInt(int64(info.SessionsPerPeriod))).
		Round(0).
		IntPart()
}

// NewBillingPolicy membangun policy dari nilai env mentah; string kosong
// atau tidak valid jatuh ke default.
func NewBillingPolicy(defaultVATRaw string) BillingPolicy {
	p := BillingPolicy{SessionRate: DefaultSessionRate}
	if v, err := strconv.ParseFloat(defaultVATRaw, 64); err == nil && v >= 0 {
		p.DefaultVATRatePercent = v
	}
	return p
}
