package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/ui"
	"github.com/muurk/catalog-admin/internal/view"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatText  = "text"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatText:
		return nil
	}
	return fmt.Errorf("unknown --format %q (use table, json or text)", format)
}

// minPriceAPI passes a fixed min_price to every list request
type minPriceAPI struct {
	admin.ProductAPI
	minPrice float64
}

func (m minPriceAPI) List(ctx context.Context, skip, limit int, _ float64) (*catalog.ProductPage, error) {
	return m.ProductAPI.List(ctx, skip, limit, m.minPrice)
}

func newListCmd(a *app) *cobra.Command {
	var (
		name     string
		id       string
		page     int
		minPrice float64
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long: `List one page of the catalog, ten products per page.

Filters behave like the console's search boxes: --name matches any part of
the name ignoring case, --id matches one product exactly.`,
		Example: `  catalog-admin list
  catalog-admin list --name mouse --page 2
  catalog-admin list --min-price 100 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			p := a.printer(cmd.OutOrStdout())

			var api admin.ProductAPI = a.client(cmd.Context())
			if minPrice > 0 {
				api = minPriceAPI{ProductAPI: api, minPrice: minPrice}
			}
			ctrl := admin.NewController(api, view.NewDocument(a.settings.Display.CurrencySymbol))
			ctrl.SetFetchLimit(a.settings.API.FetchLimit)

			if err := ctrl.Load(cmd.Context()); err != nil {
				return fail(p, "Failed to load products", err)
			}
			ctrl.SetFilterName(name)
			ctrl.SetFilterID(id)

			state := ctrl.Snapshot().State
			if page != 1 && !ctrl.GoToPage(page) {
				return fmt.Errorf("page %d out of range (1-%d)", page, state.TotalPages())
			}
			state = ctrl.Snapshot().State
			products := state.PageProducts()

			switch format {
			case formatJSON:
				return p.PrintJSON(products)
			case formatText:
				for _, product := range products {
					p.Println(product.Summary())
				}
				return nil
			}

			p.PrintProducts(products)
			if len(state.FilteredProducts) > 0 {
				p.PrintPageInfo(state.CurrentPage, state.TotalPages(), len(state.FilteredProducts))
				p.PrintPagination(admin.BuildPagination(state.CurrentPage, state.TotalPages()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by name (substring, case-insensitive)")
	cmd.Flags().StringVar(&id, "id", "", "Filter by product id")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Only products at or above this price (server side)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format (table, json, text)")
	return cmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func newShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := a.printer(cmd.OutOrStdout())

			product, err := a.client(cmd.Context()).Get(cmd.Context(), id)
			if err != nil {
				return fail(p, "Failed to load product", err)
			}
			switch format {
			case formatJSON:
				return p.PrintJSON(product)
			case formatText:
				p.Println(strings.TrimSuffix(catalog.FormatProductDetailed(*product, a.settings.Display.CurrencySymbol), "\n"))
				return nil
			}
			p.PrintProduct(*product)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format (table, json, text)")
	return cmd
}

// productFlags are the form fields of create and update
type productFlags struct {
	name   string
	sku    string
	price  string
	active bool
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().StringVar(&f.sku, "sku", "", "Stock keeping unit")
	cmd.Flags().StringVar(&f.price, "price", "", `Price, e.g. 10.50, "10,50" or "R$ 1.234,56"`)
	cmd.Flags().BoolVar(&f.active, "active", true, "Whether the product is active")
}

// input overrides the fields of base whose flags were given and validates
// the result the same way the console form does. An unreadable price
// becomes 0 and fails validation.
func (f *productFlags) input(cmd *cobra.Command, base catalog.ProductInput) (catalog.ProductInput, []error) {
	in := base
	if cmd.Flags().Changed("name") {
		in.Name = f.name
	}
	if cmd.Flags().Changed("sku") {
		in.SKU = f.sku
	}
	if cmd.Flags().Changed("price") {
		price, err := catalog.ParsePrice(f.price)
		if err != nil {
			price = 0
		}
		in.Price = price
	}
	if cmd.Flags().Changed("active") {
		in.Active = f.active
	}
	return in, catalog.ValidateProductInput(in)
}

// invalid lists every validation problem
func invalid(p *ui.Printer, errs []error) error {
	p.Println(ui.ErrorTitleStyle.Render(ui.FailureMarker + "  Invalid product"))
	p.Println(ui.ErrorMessageStyle.Render(strings.TrimSuffix(catalog.FormatValidationErrors(errs), "\n")))
	return &reportedError{cause: catalog.NewValidationError(catalog.JoinValidationErrors(errs))}
}

func productDetails(symbol string, product *catalog.Product) []ui.Detail {
	return []ui.Detail{
		{Key: "ID", Value: strconv.Itoa(product.ID)},
		{Key: "Name", Value: product.Name},
		{Key: "SKU", Value: product.SKU},
		{Key: "Price", Value: catalog.FormatMoney(symbol, product.Price)},
		{Key: "Status", Value: catalog.StatusLabel(product.Active)},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a product",
		Example: `  catalog-admin create --name "USB Cable" --sku CAB-01 --price 19,90`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd.OutOrStdout())

			input, errs := flags.input(cmd, admin.NewForm().Data().Input())
			if len(errs) > 0 {
				return invalid(p, errs)
			}

			product, err := a.client(cmd.Context()).Create(cmd.Context(), input)
			if err != nil {
				return fail(p, "Failed to create product", err)
			}
			p.PrintSuccess(admin.MsgCreated, productDetails(a.settings.Display.CurrencySymbol, product)...)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Long: `Update a product. Fields without a flag keep their current value;
the whole product is sent back to the API.`,
		Example: `  catalog-admin update 7 --price 24,90
  catalog-admin update 7 --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := a.printer(cmd.OutOrStdout())
			client := a.client(cmd.Context())

			current, err := client.Get(cmd.Context(), id)
			if err != nil {
				return fail(p, "Failed to load product", err)
			}

			input, errs := flags.input(cmd, current.Input())
			if len(errs) > 0 {
				return invalid(p, errs)
			}

			product, err := client.Update(cmd.Context(), id, input)
			if err != nil {
				return fail(p, "Failed to update product", err)
			}
			p.PrintSuccess(admin.MsgUpdated, productDetails(a.settings.Display.CurrencySymbol, product)...)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := a.printer(cmd.OutOrStdout())
			client := a.client(cmd.Context())

			product, err := client.Get(cmd.Context(), id)
			if err != nil {
				return fail(p, "Failed to load product", err)
			}

			target := admin.DeleteTarget{ID: product.ID, Name: product.Name}
			if !yes && !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), target.ConfirmMessage()) {
				return nil
			}

			result, err := client.Delete(cmd.Context(), id)
			if err != nil {
				return fail(p, "Failed to delete product", err)
			}

			details := []ui.Detail{{Key: "ID", Value: strconv.Itoa(id)}, {Key: "Name", Value: product.Name}}
			if result.Detail != "" {
				details = append(details, ui.Detail{Key: "API", Value: result.Detail})
			}
			p.PrintSuccess(admin.MsgDeleted, details...)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
