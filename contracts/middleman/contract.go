package middleman

import (
	"github.com/dorucioclea/middleman-nft/common"
	"github.com/dorucioclea/middleman-nft/contracts/middleman/mmconst"
	"github.com/dorucioclea/middleman-nft/contracts/middleman/offerstatus"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Offer is a proposed exchange of one escrowed NEP-11 item for a fixed
	// amount of GAS. All fields except Status are written once at creation.
	Offer struct {
		// Sequential identifier of the offer, starts from 1.
		ID int
		// Account that escrowed the item and created the offer.
		Holder interop.Hash160
		// Account designated to pay and receive the item.
		Spender interop.Hash160
		// GAS amount the spender must pay.
		Amount int
		// NEP-11 contract of the escrowed item.
		Asset interop.Hash160
		// Token ID of the escrowed item inside the Asset contract.
		AssetItem []byte
		// Current state of the offer.
		Status offerstatus.Type
	}
)

const (
	counterKey = "offersCount"
	ownerKey   = "owner"

	// offerKeyPrefix must not share its byte with the first byte of any
	// scalar key above, listOffers scans by this prefix.
	offerKeyPrefix   = 'x'
	holderKeyPrefix  = 'f'
	spenderKeyPrefix = 't'
)

// OnNEP11Payment is needed for the contract to receive items taken into
// escrow by createOffer.
func OnNEP11Payment(a interop.Hash160, b int, c []byte, d any) {
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Payments in any other token are aborted.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage(mmconst.ErrGASOnly)
	}
}

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	storage.Put(ctx, ownerKey, args.owner)

	// set the counter only if it is not set yet, re-deploy must not
	// reissue identifiers
	if storage.Get(ctx, counterKey) == nil {
		storage.Put(ctx, counterKey, 1)
	}

	runtime.Log("middleman contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("middleman contract updated")
}

// WithdrawBalance transfers the whole GAS balance of the contract to its
// owner. Fees retained by acceptOffer accumulate on the contract account and
// this is the only way to recover them. It can be invoked only by the owner.
func WithdrawBalance() {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	self := runtime.GetExecutingScriptHash()
	balance := gas.BalanceOf(self)
	if balance == 0 {
		return
	}

	if !gas.Transfer(self, owner, balance, nil) {
		panic(mmconst.ErrGASTransfer)
	}

	runtime.Log("contract balance withdrawn")
}

// CreateOffer takes the item identified by assetItem within the NEP-11 asset
// contract into escrow and records an offer to sell it to spender for the
// given amount of GAS. The holder must witness the invocation and own the
// item; a notification transfer is sent to the spender. Returns the
// identifier of the new offer.
//
// Produces OfferCreated notification.
func CreateOffer(holder interop.Hash160, asset interop.Hash160, assetItem []byte, spender interop.Hash160, amount int) int {
	if len(holder) != interop.Hash160Len || len(spender) != interop.Hash160Len || len(asset) != interop.Hash160Len {
		panic("incorrect length of script hash")
	}
	if amount < 0 {
		panic(mmconst.ErrAmountBelowZero)
	}

	common.CheckWitness(holder)

	ctx := storage.GetContext()
	self := runtime.GetExecutingScriptHash()

	// escrow the item, the NEP-11 contract checks the holder witness
	ok := contract.Call(asset, "transfer", contract.All, self, assetItem, nil).(bool)
	if !ok {
		panic(mmconst.ErrItemTransfer)
	}

	id := storage.Get(ctx, counterKey).(int)
	common.AppendID(ctx, holderKey(holder), id)
	common.AppendID(ctx, spenderKey(spender), id)
	storage.Put(ctx, counterKey, id+1)

	offer := Offer{
		ID:        id,
		Holder:    holder,
		Spender:   spender,
		Amount:    amount,
		Asset:     asset,
		AssetItem: assetItem,
		Status:    offerstatus.Submitted,
	}
	common.SetSerialized(ctx, offerKey(id), offer)

	if !gas.Transfer(self, spender, mmconst.NotificationValue, []byte(mmconst.OfferedNotice)) {
		panic(mmconst.ErrGASTransfer)
	}

	runtime.Notify("OfferCreated", id, holder, spender, amount)

	return id
}

// DeleteOffer revokes a submitted offer and returns the escrowed item to the
// holder. It can be invoked only by the offer's holder. The offer record and
// its index entries are kept with the Deleted status.
//
// Produces OfferDeleted notification.
func DeleteOffer(id int) int {
	ctx := storage.GetContext()
	offer := getOffer(ctx, id)

	if !runtime.CheckWitness(offer.Holder) {
		panic(mmconst.ErrNotHolder)
	}
	if offer.Status != offerstatus.Submitted {
		panic(mmconst.ErrTerminalStatus)
	}

	ok := contract.Call(offer.Asset, "transfer", contract.All, offer.Holder, offer.AssetItem, nil).(bool)
	if !ok {
		panic(mmconst.ErrItemTransfer)
	}

	offer.Status = offerstatus.Deleted
	common.SetSerialized(ctx, offerKey(id), offer)

	runtime.Notify("OfferDeleted", id, offer.Holder)

	return id
}

// AcceptOffer pays for a submitted offer and hands the escrowed item over to
// the spender. It can be invoked only by the offer's spender, amount must
// equal the offer amount exactly and is pulled from the spender in GAS. The
// holder receives 98% of the payment (truncated), the rest stays with the
// contract.
//
// Produces OfferCompleted notification.
func AcceptOffer(id int, amount int) int {
	ctx := storage.GetContext()
	offer := getOffer(ctx, id)

	if !runtime.CheckWitness(offer.Spender) {
		panic(mmconst.ErrNotSpender)
	}
	if offer.Status != offerstatus.Submitted {
		panic(mmconst.ErrTerminalStatus)
	}
	if amount != offer.Amount {
		panic(mmconst.ErrPaymentAmount)
	}

	self := runtime.GetExecutingScriptHash()

	// pull the payment, the native GAS contract checks the spender witness
	if !gas.Transfer(offer.Spender, self, amount, nil) {
		panic(mmconst.ErrGASTransfer)
	}

	payout := amount * mmconst.PayoutNumerator / mmconst.PayoutDenominator

	if !gas.Transfer(self, offer.Holder, payout, []byte(mmconst.AcceptedNotice)) {
		panic(mmconst.ErrGASTransfer)
	}

	ok := contract.Call(offer.Asset, "transfer", contract.All, offer.Spender, offer.AssetItem, nil).(bool)
	if !ok {
		panic(mmconst.ErrItemTransfer)
	}

	offer.Status = offerstatus.Completed
	common.SetSerialized(ctx, offerKey(id), offer)

	runtime.Notify("OfferCompleted", id, offer.Holder, offer.Spender, amount)

	return id
}

// GetOffersCount returns the identifier that will be assigned to the next
// created offer. Identifiers start from 1, so the number of offers ever
// created is the returned value minus one.
func GetOffersCount() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, counterKey).(int)
}

// GetOffer returns the offer stored by the given identifier or panics if
// there is no such offer.
func GetOffer(id int) Offer {
	ctx := storage.GetReadOnlyContext()
	return getOffer(ctx, id)
}

// GetNbSubmittedFor returns the number of submitted offers the given account
// participates in, in either role.
func GetNbSubmittedFor(addr interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	counter := 0
	for _, id := range common.GetIDList(ctx, spenderKey(addr)) {
		if getOffer(ctx, id).Status == offerstatus.Submitted {
			counter++
		}
	}
	for _, id := range common.GetIDList(ctx, holderKey(addr)) {
		if getOffer(ctx, id).Status == offerstatus.Submitted {
			counter++
		}
	}

	return counter
}

// GetOffersSubmittedTo returns identifiers of submitted offers designating
// the given account as the spender, in creation order.
func GetOffersSubmittedTo(addr interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	return filterSubmitted(ctx, common.GetIDList(ctx, spenderKey(addr)))
}

// GetOffersSubmittedFrom returns identifiers of submitted offers created by
// the given account, in creation order.
func GetOffersSubmittedFrom(addr interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	return filterSubmitted(ctx, common.GetIDList(ctx, holderKey(addr)))
}

// GetLastCompletedOffers returns identifiers of the most recently created
// completed offers, newest first, at most limit of them. The scan walks
// identifiers backwards from the newest one, so its cost grows with the
// total number of offers.
func GetLastCompletedOffers(limit int) []int {
	ctx := storage.GetReadOnlyContext()

	completed := []int{}
	next := storage.Get(ctx, counterKey).(int)
	for id := next - 1; id >= 1; id-- {
		if len(completed) >= limit {
			break
		}
		if getOffer(ctx, id).Status == offerstatus.Completed {
			completed = append(completed, id)
		}
	}

	return completed
}

// ListOffers returns an iterator over all offers ever stored, regardless of
// their status.
func ListOffers() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{offerKeyPrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func offerKey(id int) []byte {
	return append([]byte{offerKeyPrefix}, convert.ToBytes(id)...)
}

func holderKey(addr interop.Hash160) []byte {
	return append([]byte{holderKeyPrefix}, addr...)
}

func spenderKey(addr interop.Hash160) []byte {
	return append([]byte{spenderKeyPrefix}, addr...)
}

func getOffer(ctx storage.Context, id int) Offer {
	data := storage.Get(ctx, offerKey(id))
	if data == nil {
		panic(mmconst.ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Offer)
}

func filterSubmitted(ctx storage.Context, ids []int) []int {
	submitted := []int{}
	for _, id := range ids {
		if getOffer(ctx, id).Status == offerstatus.Submitted {
			submitted = append(submitted, id)
		}
	}

	return submitted
}
