package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/grensregio/directory-ui/internal/directory"
)

type listFlags struct {
	Category    string
	City        string
	SubCategory string
	JSON        bool
}

func runBusinesses(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("businesses", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listFlags
	fs.StringVar(&opts.Category, "category", "", "Filter by exact category")
	fs.StringVar(&opts.City, "city", "", "Filter by exact city")
	fs.StringVar(&opts.SubCategory, "subcategory", "", "Filter by exact subcategory")
	fs.BoolVar(&opts.JSON, "json", false, "Print raw JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	businesses, err := ctx.Client.ListBusinesses(ctx.Ctx, listFilters(opts))
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(businesses)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tNAME\tCATEGORY\tCITY\tACTIVE\n"); err != nil {
		return err
	}
	for _, b := range businesses {
		if err := writef(w, "%d\t%s\t%s\t%s\t%t\n", b.ID, b.Name, b.Category, b.City, b.IsActive); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "\n%d businesses\n", len(businesses))
}

// listFilters maps non-empty flags to filters. Empty flags stay out of
// the request entirely.
func listFilters(opts listFlags) directory.Filters {
	var f directory.Filters
	if opts.Category != "" {
		f.Category = &opts.Category
	}
	if opts.City != "" {
		f.City = &opts.City
	}
	if opts.SubCategory != "" {
		f.SubCategory = &opts.SubCategory
	}
	return f
}

func runCreate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var nb directory.NewBusiness
	fs.StringVar(&nb.Name, "name", "", "Business name (required)")
	fs.StringVar(&nb.Category, "category", "", "Category (required)")
	fs.StringVar(&nb.SubCategory, "subcategory", "", "Subcategory")
	fs.StringVar(&nb.Address, "address", "", "Street address")
	fs.StringVar(&nb.City, "city", "", "City (required)")
	fs.StringVar(&nb.PostalCode, "postal-code", "", "Postal code")
	fs.Float64Var(&nb.Latitude, "lat", 0, "Latitude")
	fs.Float64Var(&nb.Longitude, "lng", 0, "Longitude")
	fs.StringVar(&nb.Phone, "phone", "", "Phone number")
	fs.StringVar(&nb.Website, "website", "", "Website URL")
	fs.StringVar(&nb.Email, "email", "", "Contact email")
	fs.StringVar(&nb.Description, "description", "", "Short description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if nb.Name == "" || nb.Category == "" || nb.City == "" {
		return fmt.Errorf("name, category and city are required")
	}

	created, err := ctx.Client.CreateBusiness(ctx.Ctx, nb)
	if err != nil {
		return err
	}

	return writef(os.Stdout, "Created business %d: %s (%s, %s)\n",
		created.ID, created.Name, created.Category, created.City)
}
