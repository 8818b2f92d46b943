// Package mmconst contains constants of the Middleman contract shared
// between the contract itself, the RPC wrapper and tests.
package mmconst

const (
	// PayoutNumerator and PayoutDenominator define the holder's share of
	// the payment. The remaining 2% stays with the contract as a fee.
	// Division truncates, rounding the fee up in the contract's favor.
	PayoutNumerator   = 98
	PayoutDenominator = 100

	// NotificationValue is the amount of GAS attached to notification
	// transfers produced by createOffer and acceptOffer.
	NotificationValue = 1

	// OfferedNotice is carried by the notification transfer sent to the
	// spender of a newly created offer.
	OfferedNotice = "Someone sent you an offer on https://www.middleman-nft.com"
	// AcceptedNotice is carried by the payout transfer sent to the holder
	// of an accepted offer.
	AcceptedNotice = "Someone just accepted your offer on https://www.middleman-nft.com"
)

// Fault messages. Each of them aborts the invocation as a whole, no state
// changes survive.
const (
	// ErrAmountBelowZero is thrown by createOffer on a negative amount.
	ErrAmountBelowZero = "the amount specified is below zero"
	// ErrNotFound is thrown on a lookup of a missing offer identifier.
	ErrNotFound = "offer not found"
	// ErrNotHolder is thrown by deleteOffer when the caller did not
	// create the offer.
	ErrNotHolder = "you are not the creator of this offer"
	// ErrNotSpender is thrown by acceptOffer when the caller is not the
	// designated spender.
	ErrNotSpender = "you are not the spender designated for this offer"
	// ErrTerminalStatus is thrown when the offer is not in the Submitted
	// state anymore.
	ErrTerminalStatus = "offer deleted or completed"
	// ErrPaymentAmount is thrown by acceptOffer when the payment does not
	// match the offer amount exactly.
	ErrPaymentAmount = "incorrect payment amount"
	// ErrGASOnly is thrown when a token other than native GAS is attached.
	ErrGASOnly = "only GAS is accepted for payment"
	// ErrItemTransfer is thrown when the escrowed item cannot be moved.
	ErrItemTransfer = "failed to transfer the escrowed item"
	// ErrGASTransfer is thrown when a GAS transfer fails.
	ErrGASTransfer = "failed to transfer funds, aborting"
)
