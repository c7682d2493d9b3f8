package models

// ParticipantShare is one member's signed contribution to a settlement.
// Positive values are winnings the member is owed collection for, negative
// values are losses the member owes.
type ParticipantShare struct {
	// MemberID is the external ledger identity of the participant.
	MemberID string `json:"member_id"`

	// Amount is the member's signed share of the game result.
	Amount float64 `json:"amount"`
}

// SettlementEntry is one balanced expense ready for submission to the
// external ledger. The payer fronts the full creditor total (summed over
// seats) and every involved member appears once in Shares. Members
// sharing a seat each carry the full, unsplit seat score.
type SettlementEntry struct {
	// PayerMemberID is the member credited with paying the whole expense.
	PayerMemberID string `json:"payer_member_id"`

	// Amount is the total positive amount the payer fronts.
	Amount float64 `json:"amount"`

	// Shares lists every involved member's signed share, in seat order.
	Shares []ParticipantShare `json:"shares"`
}

// Debt is a display-ready directional balance pulled from the external
// ledger, with member ids resolved to human-readable names.
type Debt struct {
	// FromMemberID owes the money.
	FromMemberID string `json:"from_member_id"`

	// FromName is the resolved display name of the debtor.
	FromName string `json:"from_name"`

	// ToMemberID is owed the money.
	ToMemberID string `json:"to_member_id"`

	// ToName is the resolved display name of the creditor.
	ToName string `json:"to_name"`

	// Amount is the positive balance, rounded to 2 decimal places.
	Amount float64 `json:"amount"`

	// Currency is the ledger currency code, "N/A" when the ledger
	// reported none.
	Currency string `json:"currency"`
}
