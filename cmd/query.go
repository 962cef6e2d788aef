package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/djraval/redwireless-scraper/internal/corpus"
	"github.com/djraval/redwireless-scraper/internal/query"
)

var (
	queryList        bool
	queryListPlans   bool
	queryPhoneSlug   string
	queryStorage     int
	queryPlanID      string
	querySort        string
	queryUpfrontName string
	queryDataFile    string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Compare phone prices across groups in the harvested corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := queryDataFile
		if path == "" {
			path = filepath.Join(cfg.Harvest.DataDir, corpus.FileName)
		}

		data, err := corpus.Load(path)
		if err != nil {
			return err
		}

		if queryListPlans {
			printAvailablePlans(query.AvailablePlans(data))
			return nil
		}

		available := query.AvailablePhones(data)
		if queryList {
			printAvailablePhones(available)
			return nil
		}

		if queryPhoneSlug == "" || queryStorage == 0 {
			fmt.Println("Please provide both --phone-slug and --storage-size")
			fmt.Println("\nExample usage:")
			fmt.Println("  redwireless-scraper query --phone-slug apple-iphone-16-pro --storage-size 128")
			fmt.Println("\nOr list available options:")
			fmt.Println("  redwireless-scraper query --list")
			fmt.Println("  redwireless-scraper query --list-plans")
			return nil
		}

		sortBy := query.SortBy(querySort)
		if sortBy != query.SortUpfront && sortBy != query.SortFinancing {
			return eris.Errorf("invalid --sort value %q (want upfront or financing)", querySort)
		}

		results := query.FilterByPhoneAndStorage(data, queryPhoneSlug, queryStorage)
		if len(results) == 0 {
			fmt.Printf("No groups found with phone: %s and storage: %dGB\n", queryPhoneSlug, queryStorage)
			if similar := query.SuggestPhones(available, queryPhoneSlug); len(similar) > 0 {
				fmt.Println("\nDid you mean one of these?")
				printAvailablePhones(similar)
			}
			return nil
		}

		phoneName := fmt.Sprintf("%s (%dGB)", results[0].Phones[0].DisplayName(), queryStorage)
		fmt.Printf("Found %s in %d groups\n", phoneName, len(results))
		if queryPlanID != "" {
			fmt.Printf("Filtering for plan ID: %s\n", queryPlanID)
		}
		fmt.Printf("Sorting by %s price\n", querySort)

		comparison := query.ComparePlanPrices(results, sortBy, queryPlanID)
		if len(comparison) == 0 {
			if queryPlanID != "" {
				fmt.Printf("No matching plans found for plan ID: %s\n", queryPlanID)
			} else {
				fmt.Println("No matching plans found")
			}
			return nil
		}

		printPriceComparison(comparison, phoneName, queryUpfrontName)

		if err := os.MkdirAll(cfg.Harvest.DataDir, 0o755); err != nil {
			return eris.Wrap(err, "create data directory")
		}
		sidecar := filepath.Join(cfg.Harvest.DataDir, fmt.Sprintf("%s_%dgb_filtered.json", queryPhoneSlug, queryStorage))
		if err := corpus.WriteJSON(sidecar, results); err != nil {
			return err
		}
		fmt.Printf("\nFull results saved to: %s\n", sidecar)
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryList, "list", false, "list all available phones and storage options")
	queryCmd.Flags().BoolVar(&queryListPlans, "list-plans", false, "list all available plans")
	queryCmd.Flags().StringVar(&queryPhoneSlug, "phone-slug", "", `phone slug (e.g. "apple-iphone-16-pro")`)
	queryCmd.Flags().IntVar(&queryStorage, "storage-size", 0, "storage size in GB (e.g. 128)")
	queryCmd.Flags().StringVar(&queryPlanID, "plan-id", "", "filter by specific plan ID")
	queryCmd.Flags().StringVar(&querySort, "sort", "upfront", "sort results by price type (upfront|financing)")
	queryCmd.Flags().StringVar(&queryUpfrontName, "upfront-name", "Bring-It-Back", "display name for upfront pricing")
	queryCmd.Flags().StringVar(&queryDataFile, "data-file", "", "corpus file path (default <data_dir>/final_data.json)")
	rootCmd.AddCommand(queryCmd)
}

func printAvailablePhones(phones []query.PhoneOption) {
	fmt.Println("\nAvailable Phones:")
	fmt.Println(strings.Repeat("=", 80))
	for _, p := range phones {
		sizes := make([]string, len(p.Storage))
		for i, s := range p.Storage {
			sizes[i] = fmt.Sprintf("%dGB", s)
		}
		fmt.Println(p.Name)
		fmt.Printf("  Slug: %s\n", p.Slug)
		fmt.Printf("  Storage Options: %s\n", strings.Join(sizes, ", "))
		fmt.Println(strings.Repeat("-", 80))
	}
}

func printAvailablePlans(plans []query.PlanOption) {
	fmt.Println("\nAvailable Plans:")
	fmt.Println(strings.Repeat("=", 80))
	for _, p := range plans {
		fmt.Printf("Plan ID: %s\n", p.ID)
		for _, t := range p.Titles {
			fmt.Printf("  %s\n", t)
		}
		fmt.Println(strings.Repeat("-", 80))
	}
}

func printPriceComparison(comparison map[string][]query.PriceRow, phoneName, upfrontName string) {
	const width = 110

	fmt.Printf("\nPrice Comparison for %s:\n", phoneName)
	fmt.Println(strings.Repeat("=", width))

	planIDs := make([]string, 0, len(comparison))
	for id := range comparison {
		planIDs = append(planIDs, id)
	}
	sort.Strings(planIDs)

	for i, planID := range planIDs {
		rows := comparison[planID]
		if i > 0 {
			fmt.Println("\n" + strings.Repeat("=", width) + "\n")
		}

		first := rows[0]
		fmt.Printf("Plan: %s (%sGB) - %s/mo (ID: %s)\n",
			first.PlanTitle, first.PlanData, fmtPrice(first.MonthlyPrice), planID)
		fmt.Printf("Note: All prices below include the %s/mo plan cost\n", fmtPrice(first.MonthlyPrice))
		fmt.Println(strings.Repeat("-", width))
		fmt.Printf("%-35s %-30s %-30s\n", "Group Name", upfrontName, "Financing")
		fmt.Println(strings.Repeat("-", width))

		for _, row := range rows {
			upfront := "N/A"
			upfrontTotal := ""
			if row.UpfrontPrice != nil {
				upfront = fmt.Sprintf("%s/mo (buyout: %s)", fmtPrice(row.UpfrontPrice), fmtPrice(row.BuyoutPrice))
				upfrontTotal = fmt.Sprintf("24 Payments: $%.2f", *row.UpfrontPrice*24)
			}
			financing := "N/A"
			financingTotal := ""
			if row.FinancingPrice != nil {
				financing = fmt.Sprintf("%s/mo", fmtPrice(row.FinancingPrice))
				financingTotal = fmt.Sprintf("24 Payments: $%.2f", *row.FinancingPrice*24)
			}

			fmt.Printf("%-35s %-30s %-30s\n", row.GroupName, upfront, financing)
			fmt.Printf("%-35s %-30s %-30s\n", "", upfrontTotal, financingTotal)
		}
		fmt.Println(strings.Repeat("-", width))

		if len(first.Addons) > 0 {
			fmt.Println("\nAvailable Add-ons:")
			fmt.Println(strings.Repeat("-", 50))
			for _, a := range first.Addons {
				name := strings.TrimSuffix(a.Name, " -")
				if a.IsFree {
					fmt.Printf("* %s - FREE!\n", name)
				} else {
					fmt.Printf("* %s - $%.2f/mo\n", name, a.Price)
				}
			}
			fmt.Println(strings.Repeat("-", 50))
		}
	}
}

func fmtPrice(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *p)
}
