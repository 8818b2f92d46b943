package middleman

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dorucioclea/middleman-nft/contracts/middleman/offerstatus"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Offer is a contract-specific middleman.Offer type used by its methods.
type Offer struct {
	ID        *big.Int
	Holder    util.Uint160
	Spender   util.Uint160
	Amount    *big.Int
	Asset     util.Uint160
	AssetItem []byte
	Status    offerstatus.Type
}

// DisplayItem returns the escrowed token ID in base58 form suitable for
// output.
func (o Offer) DisplayItem() string {
	return base58.Encode(o.AssetItem)
}

func itemToOffer(itm stackitem.Item) (*Offer, error) {
	fields, ok := itm.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array or struct")
	}
	if len(fields) != 7 {
		return nil, fmt.Errorf("unexpected number of fields: %d", len(fields))
	}

	var (
		o   Offer
		err error
	)

	o.ID, err = fields[0].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field ID: %w", err)
	}
	o.Holder, err = itemToUint160(fields[1])
	if err != nil {
		return nil, fmt.Errorf("field Holder: %w", err)
	}
	o.Spender, err = itemToUint160(fields[2])
	if err != nil {
		return nil, fmt.Errorf("field Spender: %w", err)
	}
	o.Amount, err = fields[3].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Amount: %w", err)
	}
	o.Asset, err = itemToUint160(fields[4])
	if err != nil {
		return nil, fmt.Errorf("field Asset: %w", err)
	}
	o.AssetItem, err = fields[5].TryBytes()
	if err != nil {
		return nil, fmt.Errorf("field AssetItem: %w", err)
	}

	status, err := fields[6].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Status: %w", err)
	}
	o.Status = offerstatus.Type(status.Int64())
	switch o.Status {
	case offerstatus.Submitted, offerstatus.Completed, offerstatus.Deleted:
	default:
		return nil, fmt.Errorf("field Status: unknown value %s", status)
	}

	return &o, nil
}

func itemToUint160(itm stackitem.Item) (util.Uint160, error) {
	b, err := itm.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}

	return util.Uint160DecodeBytesBE(b)
}
