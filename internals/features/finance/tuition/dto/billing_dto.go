// file: internals/features/finance/tuition/dto/billing_dto.go
package dto

import (
	"lesgo_backend/internals/features/finance/tuition/service"
)

////////////////////////////////////////////////////////////////////////////////
// BILLING & RECONCILE — request DTO
//
// Hasil run (BillingRunResult / ReconcileResult) dikirim apa adanya —
// struct service sudah bertag json dan memang bentuk kontrak API-nya.
////////////////////////////////////////////////////////////////////////////////

type BillingGenerateDTO struct {
	Mode service.Mode `json:"mode" validate:"required,oneof=preview commit"`
}

type ReconcileRunDTO struct {
	Mode service.Mode `json:"mode" validate:"required,oneof=preview execute"`
}
