package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Compile and deploy the Middleman contract",
	RunE:  runDeploy,
}

func init() {
	deployCmd.Flags().String("source", "contracts/middleman", "contract source directory")
	deployCmd.Flags().String("owner", "", "contract owner address (defaults to the deployer)")
	rootCmd.AddCommand(deployCmd)
}

func compileContract(srcPath string) (*nef.File, *manifest.Manifest, error) {
	// nef.NewFile() cares about version a lot.
	config.Version = rootCmd.Version

	ne, di, err := compiler.CompileWithOptions(srcPath, nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("compile %s: %w", srcPath, err)
	}

	confPath := filepath.Join(srcPath, "config.yml")
	conf, err := smartcontract.ParseContractConfig(confPath)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", confPath, err)
	}

	o := &compiler.Options{
		Name:                       conf.Name,
		ContractEvents:             conf.Events,
		ContractSupportedStandards: conf.SupportedStandards,
		Permissions:                make([]manifest.Permission, len(conf.Permissions)),
		SafeMethods:                conf.SafeMethods,
	}
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return nil, nil, fmt.Errorf("create manifest: %w", err)
	}

	return ne, m, nil
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	srcPath, _ := cmd.Flags().GetString("source")

	ne, m, err := compileContract(srcPath)
	if err != nil {
		return err
	}
	log.Info("contract compiled",
		zap.String("name", m.Name),
		zap.Int("script size", len(ne.Script)))

	act, acc, err := newActor(cmd.Context())
	if err != nil {
		return err
	}

	ownerStr, _ := cmd.Flags().GetString("owner")
	owner := acc.ScriptHash()
	if ownerStr != "" {
		owner, err = parseAccount(ownerStr)
		if err != nil {
			return fmt.Errorf("invalid owner: %w", err)
		}
	}

	txHash, vub, err := management.New(act).Deploy(ne, m, []any{owner})
	if err != nil {
		return fmt.Errorf("deploy transaction: %w", err)
	}
	log.Info("deploy transaction sent", zap.Stringer("tx", txHash))

	res, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("await deploy: %w", err)
	}
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("deploy failed: %s", res.FaultException)
	}

	h := state.CreateContractHash(acc.ScriptHash(), ne.Checksum, m.Name)
	log.Info("contract deployed",
		zap.Stringer("hash", h),
		zap.Stringer("owner", owner))

	fmt.Fprintf(os.Stdout, "contract hash: 0x%s\n", h.StringLE())

	return nil
}
