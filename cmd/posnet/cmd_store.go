package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/posnet/app/controllers"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Store-level operations (inventory, sales, restock requests)",
}

var (
	flagProductCategory string
	flagProductStore    uint
	flagFilterStore     uint
)

func init() {
	storeAddProductCmd.Flags().StringVar(&flagProductCategory, "category", "", "product category")
	storeAddProductCmd.Flags().UintVar(&flagProductStore, "store", 0, "owning store id")
	storeSearchCmd.Flags().UintVar(&flagFilterStore, "store", 0, "restrict to one store")
	storeStockCmd.Flags().UintVar(&flagFilterStore, "store", 0, "restrict to one store")

	storeCmd.AddCommand(storeAddProductCmd)
	storeCmd.AddCommand(storeSetStockCmd)
	storeCmd.AddCommand(storeSearchCmd)
	storeCmd.AddCommand(storeSellCmd)
	storeCmd.AddCommand(storeReturnCmd)
	storeCmd.AddCommand(storeStockCmd)
	storeCmd.AddCommand(storeRequestRestockCmd)
	storeCmd.AddCommand(storeReplenishCmd)
}

func storeController(a *app) *controllers.StoreController {
	return controllers.NewStoreController(a.db, a.sync, a.cfg)
}

func optionalStore(flag uint) *uint {
	if flag == 0 {
		return nil
	}
	return &flag
}

// posnet store add-product <name> <price>
var storeAddProductCmd = &cobra.Command{
	Use:   "add-product <name> <price>",
	Short: "Create a product",
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

		prod, err := storeController(a).AddProduct(args[0], price, flagProductCategory, optionalStore(flagProductStore))
		if err != nil {
			return err
		}
		fmt.Printf("created product #%d %q\n", prod.ID, prod.Name)
		return nil
	},
}

// posnet store set-stock <product-id> <quantity>
var storeSetStockCmd = &cobra.Command{
	Use:   "set-stock <product-id> <quantity>",
	Short: "Set a product's stock to an absolute quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		id, qty, err := parseIDQuantity(args)
		if err != nil {
			return err
		}

		prod, err := storeController(a).UpdateStock(id, qty)
		if err != nil {
			return err
		}
		if prod == nil {
			fmt.Println("not found")
			return nil
		}
		fmt.Printf("product #%d stock is now %d\n", prod.ID, prod.Stock)
		return nil
	},
}

// posnet store search <term>
var storeSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search products by name or category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		products, err := storeController(a).SearchProducts(args[0], optionalStore(flagFilterStore))
		if err != nil {
			return err
		}
		renderProducts(products)
		return nil
	},
}

// posnet store sell <product-id> <quantity>
var storeSellCmd = &cobra.Command{
	Use:   "sell <product-id> <quantity>",
	Short: "Record a sale",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		id, qty, err := parseIDQuantity(args)
		if err != nil {
			return err
		}

		sale, err := storeController(a).RecordSale(id, qty)
		if err != nil {
			return err
		}
		if sale == nil {
			fmt.Println("not found or insufficient stock")
			return nil
		}
		fmt.Printf("recorded sale #%d\n", sale.ID)
		return nil
	},
}

// posnet store return <sale-id>
var storeReturnCmd = &cobra.Command{
	Use:   "return <sale-id>",
	Short: "Cancel a sale and restock its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		id, err := parseUint(args[0], "sale id")
		if err != nil {
			return err
		}

		ok, err := storeController(a).ReturnSale(id)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("not found")
			return nil
		}
		fmt.Printf("sale #%d returned\n", id)
		return nil
	},
}

// posnet store stock
var storeStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "List products and stock levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		products, err := storeController(a).StockReport(optionalStore(flagFilterStore))
		if err != nil {
			return err
		}
		renderProducts(products)
		return nil
	},
}

// posnet store request-restock <product-id> <quantity>
var storeRequestRestockCmd = &cobra.Command{
	Use:   "request-restock <product-id> <quantity>",
	Short: "File a restock request with the logistics tier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		id, qty, err := parseIDQuantity(args)
		if err != nil {
			return err
		}

		req, err := storeController(a).RequestRestock(id, qty)
		if err != nil {
			return err
		}
		if req == nil {
			fmt.Println("no logistics database configured")
			return nil
		}
		fmt.Printf("filed restock request #%d\n", req.ID)
		return nil
	},
}

// posnet store replenish <store-id> <product-id> <quantity>
var storeReplenishCmd = &cobra.Command{
	Use:   "replenish <store-id> <product-id> <quantity>",
	Short: "Move stock from the central pool to a store (single-tier)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		storeID, err := parseUint(args[0], "store id")
		if err != nil {
			return err
		}
		productID, err := parseUint(args[1], "product id")
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}

		ok, err := storeController(a).RequestReplenishment(storeID, productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("not found or insufficient central stock")
			return nil
		}
		fmt.Println("replenished")
		return nil
	},
}

func parseUint(s, what string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return uint(n), nil
}

func parseIDQuantity(args []string) (uint, int, error) {
	id, err := parseUint(args[0], "product id")
	if err != nil {
		return 0, 0, err
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity %q", args[1])
	}
	return id, qty, nil
}
