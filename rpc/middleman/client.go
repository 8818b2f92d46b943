// Package middleman contains RPC wrappers for Middleman contract.
package middleman

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to create and send transactions.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader

	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker: invoker, hash: hash}
}

// New creates an instance of Contract using provided contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{invoker: actor, hash: hash}, actor, hash}
}

// GetOffersCount invokes `getOffersCount` method of contract.
func (c *ContractReader) GetOffersCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getOffersCount"))
}

// GetOffer invokes `getOffer` method of contract.
func (c *ContractReader) GetOffer(id *big.Int) (*Offer, error) {
	itm, err := unwrap.Item(c.invoker.Call(c.hash, "getOffer", id))
	if err != nil {
		return nil, err
	}

	return itemToOffer(itm)
}

// GetNbSubmittedFor invokes `getNbSubmittedFor` method of contract.
func (c *ContractReader) GetNbSubmittedFor(addr util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getNbSubmittedFor", addr))
}

// GetOffersSubmittedTo invokes `getOffersSubmittedTo` method of contract.
func (c *ContractReader) GetOffersSubmittedTo(addr util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "getOffersSubmittedTo", addr))
}

// GetOffersSubmittedFrom invokes `getOffersSubmittedFrom` method of contract.
func (c *ContractReader) GetOffersSubmittedFrom(addr util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "getOffersSubmittedFrom", addr))
}

// GetLastCompletedOffers invokes `getLastCompletedOffers` method of contract.
func (c *ContractReader) GetLastCompletedOffers(limit *big.Int) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "getLastCompletedOffers", limit))
}

// ListOffers invokes `listOffers` method of contract and returns an iterator
// session. Use [ContractReader.ListOffersExpanded] against servers not
// supporting sessions.
func (c *ContractReader) ListOffers() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listOffers"))
}

// ListOffersExpanded is similar to ListOffers (uses the same contract method),
// but can be useful if the server used doesn't support sessions and doesn't
// return more than maxItems values.
func (c *ContractReader) ListOffersExpanded(maxItems int) ([]*Offer, error) {
	items, err := unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listOffers", maxItems))
	if err != nil {
		return nil, err
	}

	offers := make([]*Offer, 0, len(items))
	for i := range items {
		o, err := itemToOffer(items[i])
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return offers, nil
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateOffer creates a transaction invoking `createOffer` method of the
// contract and sends it to the network. The holder's signature must cover
// calls into the NEP-11 asset contract, CalledByEntry scope is not enough.
func (c *Contract) CreateOffer(holder util.Uint160, asset util.Uint160, assetItem []byte, spender util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createOffer", holder, asset, assetItem, spender, amount)
}

// DeleteOffer creates a transaction invoking `deleteOffer` method of the
// contract and sends it to the network.
func (c *Contract) DeleteOffer(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deleteOffer", id)
}

// AcceptOffer creates a transaction invoking `acceptOffer` method of the
// contract and sends it to the network.
func (c *Contract) AcceptOffer(id *big.Int, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "acceptOffer", id, amount)
}

// WithdrawBalance creates a transaction invoking `withdrawBalance` method of
// the contract and sends it to the network.
func (c *Contract) WithdrawBalance() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawBalance")
}
