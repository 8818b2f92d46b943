/*
Package middleman implements Middleman contract, an escrow registry of NFT
sale offers.

A holder deposits a NEP-11 item with the contract and names a spender who may
buy it out for a fixed amount of GAS. Until the spender pays, the holder can
revoke the offer and get the item back. On acceptance the contract pays 98%
of the amount to the holder, keeps the rest as a fee and hands the item over
to the spender. Offers never leave storage: terminated ones are kept with
their final status so that per-account history stays queryable.

The contract owner is set at deploy time and is the only account allowed to
withdraw the accumulated fees with withdrawBalance.

# Contract notifications

OfferCreated notification. This notification is produced when a holder
escrows an item and creates an offer. Carries the identifier of the offer,
the holder, the designated spender and the GAS amount asked.

OfferCreated
  - name: id
    type: Integer
  - name: holder
    type: Hash160
  - name: spender
    type: Hash160
  - name: amount
    type: Integer

OfferDeleted notification. This notification is produced when a holder
revokes an offer and the item is returned.

OfferDeleted
  - name: id
    type: Integer
  - name: holder
    type: Hash160

OfferCompleted notification. This notification is produced when a spender
pays for an offer and receives the item.

OfferCompleted
  - name: id
    type: Integer
  - name: holder
    type: Hash160
  - name: spender
    type: Hash160
  - name: amount
    type: Integer
*/
package middleman

/*
Contract storage model.

# Summary
Key-value storage format:
 - "offersCount" -> int
   identifier that will be assigned to the next offer, starts from 1
 - "owner" -> interop.Hash160
   account allowed to withdraw the contract's GAS balance
 - 'x' + id -> std.Serialize(Offer)
   offers ever created, identified by their sequential number; records are
   written once and only the Status field is updated afterwards
 - 'f' + interop.Hash160 -> std.Serialize([]int)
   identifiers of offers created by (from) the account, append-only
 - 't' + interop.Hash160 -> std.Serialize([]int)
   identifiers of offers designated to the account, append-only

# Offer history
Offers and index entries are never removed. Terminal statuses (Completed,
Deleted) mark logical termination, queries filter by status at read time.
*/
