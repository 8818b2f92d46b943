package cli

import (
	"fmt"

	"github.com/dorucioclea/middleman-nft/rpc/middleman"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Sweep accumulated fees to the contract owner",
	Long: `withdraw sends a transaction moving the whole GAS balance of the contract
to its owner. The transaction must be signed by the owner account.`,
	RunE: runWithdraw,
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	h, err := contractHash()
	if err != nil {
		return err
	}

	act, _, err := newActor(cmd.Context())
	if err != nil {
		return err
	}

	txHash, vub, err := middleman.New(act, h).WithdrawBalance()
	if err != nil {
		return fmt.Errorf("withdraw transaction: %w", err)
	}
	log.Info("withdraw transaction sent", zap.Stringer("tx", txHash))

	res, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("await withdraw: %w", err)
	}
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("withdraw failed: %s", res.FaultException)
	}
	log.Info("balance withdrawn")

	return nil
}
