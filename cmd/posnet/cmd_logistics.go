package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/posnet/app/controllers"
)

var logisticsCmd = &cobra.Command{
	Use:   "logistics",
	Short: "Logistics operations (store registry, warehouse pool, restock approvals)",
}

func init() {
	logisticsCmd.AddCommand(logisticsRegisterStoreCmd)
	logisticsCmd.AddCommand(logisticsStockCmd)
	logisticsCmd.AddCommand(logisticsRequestsCmd)
	logisticsCmd.AddCommand(logisticsApproveCmd)
}

// posnet logistics register-store <name> <db-url>
var logisticsRegisterStoreCmd = &cobra.Command{
	Use:   "register-store <name> <db-url>",
	Short: "Register a store and the connection string of its database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		store, err := controllers.NewLogisticsController(a.db).RegisterStore(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("registered store #%d %q\n", store.ID, store.Name)
		return nil
	},
}

// posnet logistics stock
var logisticsStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "List the warehouse pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		stock, err := controllers.NewLogisticsController(a.db).ListStock()
		if err != nil {
			return err
		}
		renderLogisticsStock(stock)
		return nil
	},
}

// posnet logistics requests
var logisticsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List pending restock requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		requests, err := controllers.NewLogisticsController(a.db).PendingRequests()
		if err != nil {
			return err
		}
		renderRequests(requests)
		return nil
	},
}

// posnet logistics approve <request-id>
var logisticsApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a pending restock request and move the stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		rid, err := parseUint(args[0], "request id")
		if err != nil {
			return err
		}

		req, err := controllers.NewLogisticsController(a.db).ApproveRequestByID(rid)
		if err != nil {
			return err
		}
		if req == nil {
			fmt.Println("not found, not pending, or insufficient pool stock")
			return nil
		}
		fmt.Printf("request #%d approved (%d units of product #%d to store #%d)\n",
			req.ID, req.Quantity, req.ProductID, req.StoreID)
		return nil
	},
}
