// file: internals/features/finance/tuition/dto/wallet_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/finance/tuition/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT WALLETS — DTO (read-only + reset)
////////////////////////////////////////////////////////////////////////////////

type StudentWalletResponse struct {
	StudentWalletID        uuid.UUID `json:"student_wallet_id"`
	StudentWalletStudentID uuid.UUID `json:"student_wallet_student_id"`

	StudentWalletBalanceIDR int64 `json:"student_wallet_balance_idr"`
	StudentWalletHasCredit  bool  `json:"student_wallet_has_credit"`

	StudentWalletCreatedAt time.Time `json:"student_wallet_created_at"`
	StudentWalletUpdatedAt time.Time `json:"student_wallet_updated_at"`
}

func ToStudentWalletResponse(m model.StudentWalletModel) StudentWalletResponse {
	return StudentWalletResponse{
		StudentWalletID:        m.StudentWalletID,
		StudentWalletStudentID: m.StudentWalletStudentID,

		StudentWalletBalanceIDR: m.StudentWalletBalanceIDR,
		StudentWalletHasCredit:  m.HasCredit(),

		StudentWalletCreatedAt: m.StudentWalletCreatedAt,
		StudentWalletUpdatedAt: m.StudentWalletUpdatedAt,
	}
}

func ToStudentWalletResponses(ms []model.StudentWalletModel) []StudentWalletResponse {
	out := make([]StudentWalletResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStudentWalletResponse(m))
	}
	return out
}
