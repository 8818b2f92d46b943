/*
Package nft implements a bare non-divisible NEP-11 token used to exercise the
escrow flow of the Middleman contract in tests. Anyone can mint, ownership is
tracked per token ID, transfers require the owner's witness.
*/
package nft

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	totalSupplyKey = "totalSupply"

	tokenKeyPrefix   = 't'
	balanceKeyPrefix = 'b'
)

// Symbol returns token symbol.
func Symbol() string {
	return "ITEM"
}

// Decimals returns token decimals, always zero for non-divisible tokens.
func Decimals() int {
	return 0
}

// TotalSupply returns the number of minted tokens.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	supply := storage.Get(ctx, totalSupplyKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

// BalanceOf returns the number of tokens owned by the given account.
func BalanceOf(owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, balanceKey(owner))
	if balance != nil {
		return balance.(int)
	}

	return 0
}

// OwnerOf returns the owner of the given token or panics if the token was
// never minted.
func OwnerOf(token []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return ownerOf(ctx, token)
}

// Mint creates a new token owned by the given account. Token IDs must be
// unique. The method is deliberately unrestricted, the token exists for
// tests only.
func Mint(to interop.Hash160, token []byte) {
	if len(to) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	ctx := storage.GetContext()
	if storage.Get(ctx, tokenKey(token)) != nil {
		panic("token already exists")
	}

	storage.Put(ctx, tokenKey(token), to)
	addToBalance(ctx, to, 1)

	supply := TotalSupply()
	storage.Put(ctx, totalSupplyKey, supply+1)

	var from interop.Hash160
	runtime.Notify("Transfer", from, to, 1, token)
}

// Transfer moves the token to the given account. It returns false if the
// current owner's witness is missing. If the receiver is a contract, its
// onNEP11Payment method is called.
func Transfer(to interop.Hash160, token []byte, data any) bool {
	if len(to) != interop.Hash160Len {
		panic("incorrect length of receiver script hash")
	}

	ctx := storage.GetContext()
	from := ownerOf(ctx, token)
	if !runtime.CheckWitness(from) {
		return false
	}

	if !from.Equals(to) {
		storage.Put(ctx, tokenKey(token), to)
		addToBalance(ctx, from, -1)
		addToBalance(ctx, to, 1)
	}

	runtime.Notify("Transfer", from, to, 1, token)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, token, data)
	}

	return true
}

func tokenKey(token []byte) []byte {
	return append([]byte{tokenKeyPrefix}, token...)
}

func balanceKey(owner interop.Hash160) []byte {
	return append([]byte{balanceKeyPrefix}, owner...)
}

func ownerOf(ctx storage.Context, token []byte) interop.Hash160 {
	owner := storage.Get(ctx, tokenKey(token))
	if owner == nil {
		panic("unknown token")
	}

	return owner.(interop.Hash160)
}

func addToBalance(ctx storage.Context, owner interop.Hash160, delta int) {
	key := balanceKey(owner)
	balance := 0
	if data := storage.Get(ctx, key); data != nil {
		balance = data.(int)
	}

	balance += delta
	if balance == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}
}
