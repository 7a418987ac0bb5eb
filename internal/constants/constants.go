package constants

// Persisted status values. The strings are the values stored by the legacy
// system, so existing data stays readable.

type PickingStatus string

const (
	PickingInProgress     PickingStatus = "Em Separação"
	PickingInVerification PickingStatus = "Em Conferência"
	PickingDone           PickingStatus = "Finalizado"
)

type VerificationStatus string

const (
	VerificationAwaiting         VerificationStatus = "Aguardando Conferência"
	VerificationInProgress       VerificationStatus = "Em Conferência"
	VerificationPendingSupplier  VerificationStatus = "Pendente (Fornecedor)"
	VerificationPendingAmendment VerificationStatus = "Pendente (Alteração)"
	VerificationPendingBoth      VerificationStatus = "Pendente (Ambos)"
	VerificationFinalized        VerificationStatus = "Finalizado"
)

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleStock      Role = "Estoque"
	RoleAccounting Role = "Contabilidade"
	RoleSeller     Role = "Vendedor"
	RolePicker     Role = "Separador"
	RoleShipping   Role = "Expedição"
)

// Trash item types, matching the legacy trash table.
const (
	ItemTypePicking      = "Separacao"
	ItemTypeVerification = "Conferencia"
)

// Audit log streams.
const (
	LogTypePicking      = "separacoes"
	LogTypeVerification = "conferencias"
)

// Carrier name recorded for street receipts.
const StreetCarrierName = "NOTA DA RUA"
