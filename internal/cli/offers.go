package cli

import (
	"fmt"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/dorucioclea/middleman-nft/contracts/middleman/offerstatus"
	"github.com/dorucioclea/middleman-nft/rpc/middleman"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/spf13/cobra"
)

var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "Query offers stored in the contract",
	RunE:  runOffers,
}

func init() {
	offersCmd.Flags().String("to", "", "list submitted offers addressed to this spender")
	offersCmd.Flags().String("from", "", "list submitted offers escrowed by this holder")
	offersCmd.Flags().Int64("last", 0, "list up to N most recently completed offers")
	offersCmd.Flags().Int64("id", 0, "show a single offer by id")
	rootCmd.AddCommand(offersCmd)
}

func statusString(s offerstatus.Type) string {
	switch s {
	case offerstatus.Submitted:
		return "submitted"
	case offerstatus.Completed:
		return "completed"
	case offerstatus.Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("unknown (%d)", int(s))
	}
}

func printOffers(offers []*middleman.Offer) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHOLDER\tSPENDER\tAMOUNT\tASSET\tITEM\tSTATUS")
	for _, o := range offers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t0x%s\t%s\t%s\n",
			o.ID, address.Uint160ToString(o.Holder), address.Uint160ToString(o.Spender),
			o.Amount, o.Asset.StringLE(), o.DisplayItem(), statusString(o.Status))
	}
	_ = w.Flush()
}

func runOffers(cmd *cobra.Command, _ []string) error {
	h, err := contractHash()
	if err != nil {
		return err
	}

	inv, err := newInvoker(cmd.Context())
	if err != nil {
		return err
	}
	reader := middleman.NewReader(inv, h)

	if id, _ := cmd.Flags().GetInt64("id"); id != 0 {
		o, err := reader.GetOffer(big.NewInt(id))
		if err != nil {
			return fmt.Errorf("get offer %d: %w", id, err)
		}
		printOffers([]*middleman.Offer{o})
		return nil
	}

	if to, _ := cmd.Flags().GetString("to"); to != "" {
		spender, err := parseAccount(to)
		if err != nil {
			return fmt.Errorf("invalid spender: %w", err)
		}
		ids, err := reader.GetOffersSubmittedTo(spender)
		if err != nil {
			return fmt.Errorf("offers submitted to %s: %w", to, err)
		}
		return printByIDs(reader, ids)
	}

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		holder, err := parseAccount(from)
		if err != nil {
			return fmt.Errorf("invalid holder: %w", err)
		}
		ids, err := reader.GetOffersSubmittedFrom(holder)
		if err != nil {
			return fmt.Errorf("offers submitted from %s: %w", from, err)
		}
		return printByIDs(reader, ids)
	}

	if last, _ := cmd.Flags().GetInt64("last"); last != 0 {
		ids, err := reader.GetLastCompletedOffers(big.NewInt(last))
		if err != nil {
			return fmt.Errorf("last completed offers: %w", err)
		}
		return printByIDs(reader, ids)
	}

	n, err := reader.GetOffersCount()
	if err != nil {
		return fmt.Errorf("offers count: %w", err)
	}
	fmt.Printf("offers created so far: %s\n", new(big.Int).Sub(n, big.NewInt(1)))

	return nil
}

func printByIDs(reader *middleman.ContractReader, ids []*big.Int) error {
	offers := make([]*middleman.Offer, 0, len(ids))
	for _, id := range ids {
		o, err := reader.GetOffer(id)
		if err != nil {
			return fmt.Errorf("get offer %s: %w", id, err)
		}
		offers = append(offers, o)
	}
	printOffers(offers)
	return nil
}
