package offerstatus

// Type is an enumeration for offer states.
type Type int

// Various offer states. An offer starts in Submitted and moves to exactly
// one of the terminal states, never back.
const (
	_ Type = iota

	// Submitted stands for offers that await the decision of the
	// designated spender and can still be revoked by the holder.
	Submitted

	// Completed stands for offers paid by the spender. The escrowed
	// item and the payment have been handed over.
	Completed

	// Deleted stands for offers revoked by the holder. The escrowed
	// item has been returned.
	Deleted
)
