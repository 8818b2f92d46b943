package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/spf13/viper"
)

func newRPCClient(ctx context.Context) (*rpcclient.Client, error) {
	endpoint := viper.GetString("endpoint")

	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{})
	if err != nil {
		return nil, fmt.Errorf("RPC client: %w", err)
	}
	if err := c.Init(); err != nil {
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return c, nil
}

func newInvoker(ctx context.Context) (*invoker.Invoker, error) {
	c, err := newRPCClient(ctx)
	if err != nil {
		return nil, err
	}

	return invoker.New(c, nil), nil
}

func newActor(ctx context.Context) (*actor.Actor, *wallet.Account, error) {
	walletPath := viper.GetString("wallet")
	if walletPath == "" {
		return nil, nil, errors.New("missing wallet path (--wallet)")
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open wallet: %w", err)
	}
	if len(w.Accounts) == 0 {
		return nil, nil, errors.New("wallet has no accounts")
	}

	acc := w.Accounts[0]
	if err := acc.Decrypt(viper.GetString("password"), w.Scrypt); err != nil {
		return nil, nil, fmt.Errorf("decrypt account: %w", err)
	}

	c, err := newRPCClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return nil, nil, fmt.Errorf("actor: %w", err)
	}

	return act, acc, nil
}

func contractHash() (util.Uint160, error) {
	s := viper.GetString("contract")
	if s == "" {
		return util.Uint160{}, errors.New("missing contract hash (--contract)")
	}

	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}

// parseAccount accepts both Neo addresses and little-endian script hashes.
func parseAccount(s string) (util.Uint160, error) {
	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}

	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}
