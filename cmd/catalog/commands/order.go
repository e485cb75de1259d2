package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fakenft/internal/network"
)

func orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := appEnv.orders.FetchOrder(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(o.NFTs) == 0 {
				fmt.Fprintln(out, "cart is empty")
				return nil
			}
			nfts, err := appEnv.profile.FetchNFTs(cmd.Context(), o.NFTs)
			if err != nil {
				return errors.New(network.UserMessage(err))
			}
			var total float64
			for _, n := range nfts {
				total += n.Price
			}
			printNFTs(out, nfts, nil)
			fmt.Fprintf(out, "%d items, %.2f ETH\n", len(nfts), total)
			return nil
		},
	}
}

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List payment currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			currencies, err := appEnv.orders.FetchCurrencies(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range currencies {
				fmt.Fprintf(out, "%s\t%s\t%s\n", c.ID, c.Name, c.Title)
			}
			return nil
		},
	}
}

func payCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <currency-id>",
		Short: "Pay for the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payment, err := appEnv.orders.Pay(cmd.Context(), args[0])
			if err != nil {
				return errors.New(network.UserMessage(err))
			}
			if !payment.Success {
				return fmt.Errorf("payment %s declined", payment.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "paid order %s (payment %s)\n", payment.OrderID, payment.ID)
			return nil
		},
	}
}
