package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/posnet/app/controllers"
	"github.com/shashiranjanraj/posnet/app/models"
	"gorm.io/gorm"
)

var hqCmd = &cobra.Command{
	Use:   "hq",
	Short: "Headquarters operations (catalogue fan-out, network reports)",
}

var (
	flagHQProductID       uint
	flagHQProductCategory string
	flagHQProductStock    int
)

func init() {
	hqAddProductCmd.Flags().UintVar(&flagHQProductID, "id", 0, "product id (0 assigns a new one)")
	hqAddProductCmd.Flags().StringVar(&flagHQProductCategory, "category", "", "product category")
	hqAddProductCmd.Flags().IntVar(&flagHQProductStock, "stock", 0, "initial stock for stores that do not have the product yet")

	hqCmd.AddCommand(hqAddProductCmd)
	hqCmd.AddCommand(hqSyncCmd)
	hqCmd.AddCommand(hqReportCmd)
	hqCmd.AddCommand(hqSalesReportCmd)
	hqCmd.AddCommand(hqDashboardCmd)
	hqCmd.AddCommand(hqStockCmd)
}

// posnet hq add-product <name> <price>
var hqAddProductCmd = &cobra.Command{
	Use:   "add-product <name> <price>",
	Short: "Create or update a product and push it to every registered store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", args[1])
		}

		prod := &models.Product{
			ID:       flagHQProductID,
			Name:     args[0],
			Price:    price,
			Category: flagHQProductCategory,
			Stock:    flagHQProductStock,
		}
		if _, err := a.sync.AddOrUpdateProduct(prod); err != nil {
			return err
		}
		fmt.Printf("product #%d %q synced to all stores\n", prod.ID, prod.Name)
		return nil
	},
}

// posnet hq sync <to|from>
var hqSyncCmd = &cobra.Command{
	Use:   "sync <to|from>",
	Short: "Run a whole-table sync pass between the local and HQ databases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		var ran bool
		switch args[0] {
		case "to":
			ran, err = a.sync.SyncToHQ()
		case "from":
			ran, err = a.sync.SyncFromHQ()
		default:
			return fmt.Errorf("unknown direction %q (want to or from)", args[0])
		}
		if err != nil {
			return err
		}
		if !ran {
			fmt.Println("single-tier topology, nothing to sync")
			return nil
		}
		fmt.Println("sync complete")
		return nil
	},
}

// posnet hq report
var hqReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Consolidated revenue across every registered store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		totals, err := a.sync.ConsolidatedReport()
		if err != nil {
			return err
		}
		renderRevenue(totals)
		return nil
	},
}

// posnet hq sales-report
var hqSalesReportCmd = &cobra.Command{
	Use:   "sales-report",
	Short: "Revenue per store, best sellers and stock levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		report, err := controllers.NewReportController(reportDB(a)).Sales()
		if err != nil {
			return err
		}
		renderSalesReport(report)
		return nil
	},
}

// posnet hq dashboard
var hqDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "High-level indicators: revenue, stock alerts, weekly trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		m, err := controllers.NewReportController(reportDB(a)).Dashboard()
		if err != nil {
			return err
		}
		renderDashboard(m)
		return nil
	},
}

// posnet hq stock
var hqStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Central warehouse pool by product",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		entries, err := controllers.NewReportController(reportDB(a)).HQStock()
		if err != nil {
			return err
		}
		renderPool(entries)
		return nil
	},
}

// reportDB picks the HQ connection when one exists, the local one
// otherwise, so HQ reports work in single-tier deployments too.
func reportDB(a *app) *gorm.DB {
	if a.hq != nil {
		return a.hq
	}
	return a.db
}
